package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/easyrice/inspection-module/internal/domain/model"
)

// inspectionColumns — список столбцов таблицы inspections для SELECT-запросов.
// DRY: одно место для всех SELECT'ов.
const inspectionColumns = `inspection_id, name, create_date, standard_id, note,
	standard_name, sampling_date, sampling_point, price, image_link`

// criterionColumns — список столбцов таблицы inspection_standard_data.
const criterionColumns = `inspection_id, key_name, name, min_length, max_length,
	shape, condition_min, condition_max, value`

// Границы диапазона дат листинга: отсутствующая граница заменяется
// абсолютным минимумом/максимумом, одно заданное поле даёт корректный
// односторонний диапазон.
const (
	minFilterDate = "1900-01-01"
	maxFilterDate = "9999-12-31"
)

// ListFilter — необязательные поля фильтра листинга инспекций.
// Пустая строка = фильтр не применяется.
type ListFilter struct {
	// InspectionID — точное совпадение идентификатора.
	InspectionID string
	// FromDate, ToDate — границы диапазона по календарной дате
	// create_date, формат "YYYY-MM-DD", включительно с обеих сторон.
	FromDate string
	ToDate   string
}

// InspectionRepository — доступ к инспекциям и их критериям.
// Create и DeleteByIDs — атомарные мультитабличные операции.
type InspectionRepository interface {
	// GetByID возвращает инспекцию с критериями (в порядке создания)
	// или ErrNotFound.
	GetByID(ctx context.Context, inspectionID string) (*model.Inspection, error)
	// List возвращает заголовки инспекций по фильтру, без критериев.
	// Пустой результат ошибкой не является.
	List(ctx context.Context, filter ListFilter) ([]*model.Inspection, error)
	// Create сохраняет заголовок и все критерии в одной транзакции.
	// Дубликат inspection_id — ErrConflict; при любой ошибке не остаётся
	// ни заголовка, ни части критериев.
	Create(ctx context.Context, insp *model.Inspection, criteria []*model.StandardCriterion) error
	// DeleteByIDs удаляет в одной транзакции сперва критерии, затем
	// заголовки. Возвращает число удалённых заголовков; 0 — ErrNotFound.
	DeleteByIDs(ctx context.Context, inspectionIDs []string) (int64, error)
}

// inspectionRepo — реализация InspectionRepository через pgx.
type inspectionRepo struct {
	db DBTX
	tx *TxRunner
}

// NewInspectionRepository создаёт репозиторий инспекций.
// Пул внедряется при конструировании — репозиторий не обращается
// к глобальному состоянию.
func NewInspectionRepository(pool *pgxpool.Pool) InspectionRepository {
	return &inspectionRepo{db: pool, tx: NewTxRunner(pool)}
}

// GetByID возвращает инспекцию с критериями или ErrNotFound.
func (r *inspectionRepo) GetByID(ctx context.Context, inspectionID string) (*model.Inspection, error) {
	query := fmt.Sprintf(`SELECT %s FROM inspections WHERE inspection_id = $1`, inspectionColumns)

	insp, err := scanInspection(r.db.QueryRow(ctx, query, inspectionID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения инспекции: %w", err)
	}

	criteria, err := r.listCriteria(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	insp.Criteria = criteria

	return insp, nil
}

// List возвращает заголовки инспекций по фильтру.
func (r *inspectionRepo) List(ctx context.Context, filter ListFilter) ([]*model.Inspection, error) {
	where, args := buildHistoryWhere(filter, 1)

	query := fmt.Sprintf(`SELECT %s FROM inspections %s`, inspectionColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга инспекций: %w", err)
	}
	defer rows.Close()

	var result []*model.Inspection
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования инспекции: %w", err)
		}
		result = append(result, insp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации результатов: %w", err)
	}

	return result, nil
}

// Create сохраняет заголовок и критерии в одной транзакции.
func (r *inspectionRepo) Create(ctx context.Context, insp *model.Inspection, criteria []*model.StandardCriterion) error {
	samplingPoint, err := model.EncodeStringList(insp.SamplingPoint)
	if err != nil {
		return err
	}

	return r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		insertHeader := `
			INSERT INTO inspections (inspection_id, name, create_date, standard_id,
				note, standard_name, sampling_date, sampling_point, price, image_link)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

		_, err := tx.Exec(ctx, insertHeader,
			insp.InspectionID, insp.Name, insp.CreateDate, insp.StandardID,
			insp.Note, insp.StandardName, insp.SamplingDate, samplingPoint,
			insp.Price, insp.ImageLink,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: inspection_id %q уже зарегистрирован", ErrConflict, insp.InspectionID)
			}
			return fmt.Errorf("ошибка создания инспекции: %w", err)
		}

		// Критерии вставляются в порядке списка; порядок чтения
		// фиксируется BIGSERIAL id.
		insertCriterion := fmt.Sprintf(`
			INSERT INTO inspection_standard_data (%s)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, criterionColumns)

		for _, c := range criteria {
			shape, encErr := model.EncodeStringList(c.Shape)
			if encErr != nil {
				return encErr
			}
			if _, err := tx.Exec(ctx, insertCriterion,
				insp.InspectionID, c.Key, c.Name, c.MinLength, c.MaxLength,
				shape, c.ConditionMin, c.ConditionMax, c.Value,
			); err != nil {
				return fmt.Errorf("ошибка создания критерия %q: %w", c.Key, err)
			}
		}

		return nil
	})
}

// DeleteByIDs удаляет критерии, затем заголовки, в одной транзакции.
// Порядок удаления гарантирует, что критерий никогда не ссылается
// на отсутствующий заголовок.
func (r *inspectionRepo) DeleteByIDs(ctx context.Context, inspectionIDs []string) (int64, error) {
	var removed int64

	err := r.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM inspection_standard_data WHERE inspection_id = ANY($1)`,
			inspectionIDs,
		); err != nil {
			return fmt.Errorf("ошибка удаления критериев: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM inspections WHERE inspection_id = ANY($1)`,
			inspectionIDs,
		)
		if err != nil {
			return fmt.Errorf("ошибка удаления инспекций: %w", err)
		}
		removed = tag.RowsAffected()

		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed == 0 {
		return 0, ErrNotFound
	}
	return removed, nil
}

// listCriteria возвращает критерии инспекции в порядке создания.
func (r *inspectionRepo) listCriteria(ctx context.Context, inspectionID string) ([]*model.StandardCriterion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inspection_standard_data
		WHERE inspection_id = $1
		ORDER BY id`, criterionColumns)

	rows, err := r.db.Query(ctx, query, inspectionID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения критериев: %w", err)
	}
	defer rows.Close()

	var result []*model.StandardCriterion
	for rows.Next() {
		c := &model.StandardCriterion{}
		var shape string
		if err := rows.Scan(
			&c.InspectionID, &c.Key, &c.Name, &c.MinLength, &c.MaxLength,
			&shape, &c.ConditionMin, &c.ConditionMax, &c.Value,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования критерия: %w", err)
		}
		if c.Shape, err = model.DecodeStringList(shape); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка итерации критериев: %w", err)
	}

	return result, nil
}

// scanInspection сканирует одну строку inspections.
func scanInspection(row pgx.Row) (*model.Inspection, error) {
	insp := &model.Inspection{}
	var samplingPoint string

	if err := row.Scan(
		&insp.InspectionID, &insp.Name, &insp.CreateDate, &insp.StandardID,
		&insp.Note, &insp.StandardName, &insp.SamplingDate, &samplingPoint,
		&insp.Price, &insp.ImageLink,
	); err != nil {
		return nil, err
	}

	var err error
	if insp.SamplingPoint, err = model.DecodeStringList(samplingPoint); err != nil {
		return nil, err
	}
	return insp, nil
}

// buildHistoryWhere строит WHERE-условие листинга и его аргументы.
// startArg — номер первого $-параметра.
// Аргументы добавляются строго в порядке упоминания $n в условии —
// на этой дисциплине держится корректность параметризованного запроса.
func buildHistoryWhere(filter ListFilter, startArg int) (whereClause string, args []any) {
	var conditions []string
	argNum := startArg

	// Точное совпадение идентификатора
	if filter.InspectionID != "" {
		conditions = append(conditions, fmt.Sprintf("inspection_id = $%d", argNum))
		args = append(args, filter.InspectionID)
		argNum++
	}

	// Диапазон по календарной дате create_date, включительно с обеих
	// сторон. Лексикографическое сравнение ISO-дат эквивалентно
	// хронологическому.
	if filter.FromDate != "" || filter.ToDate != "" {
		from := filter.FromDate
		if from == "" {
			from = minFilterDate
		}
		to := filter.ToDate
		if to == "" {
			to = maxFilterDate
		}

		conditions = append(conditions,
			fmt.Sprintf("left(create_date, 10) BETWEEN $%d AND $%d", argNum, argNum+1))
		args = append(args, from, to)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
