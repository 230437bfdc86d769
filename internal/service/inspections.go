// inspections.go — сервис истории инспекций качества риса.
// Валидация входных данных, нормализация дат, делегирование репозиторию.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/easyrice/inspection-module/internal/domain/datefmt"
	"github.com/easyrice/inspection-module/internal/domain/model"
	"github.com/easyrice/inspection-module/internal/repository"
)

// HistoryFilter — параметры листинга истории инспекций.
// Пустая строка = фильтр не применяется.
type HistoryFilter struct {
	InspectionID string
	// FromDate, ToDate — календарные даты "YYYY-MM-DD", включительно.
	FromDate string
	ToDate   string
}

// InspectionService — сервис инспекций.
type InspectionService struct {
	repo   repository.InspectionRepository
	logger *slog.Logger
}

// NewInspectionService создаёт сервис инспекций.
func NewInspectionService(repo repository.InspectionRepository, logger *slog.Logger) *InspectionService {
	return &InspectionService{
		repo:   repo,
		logger: logger.With(slog.String("component", "inspection_service")),
	}
}

// Create валидирует и сохраняет инспекцию вместе с критериями.
// Даты нормализуются к каноническому виду "YYYY-MM-DD HH:MM:SS" (UTC)
// до обращения к хранилищу; некорректная дата — ErrValidation, запись
// не создаётся. Дубликат inspection_id — ErrConflict.
func (s *InspectionService) Create(ctx context.Context, insp *model.Inspection, criteria []*model.StandardCriterion) (*model.Inspection, error) {
	if insp.InspectionID == "" {
		return nil, fmt.Errorf("%w: поле inspectionID обязательно", ErrValidation)
	}
	if insp.Name == "" {
		return nil, fmt.Errorf("%w: поле name обязательно", ErrValidation)
	}

	createDate, err := datefmt.Normalize(insp.CreateDate)
	if err != nil {
		return nil, fmt.Errorf("%w: createDate: %w", ErrValidation, err) //nolint:errorlint // намеренный двойной wrap
	}
	insp.CreateDate = createDate

	samplingDate, err := datefmt.Normalize(insp.SamplingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: samplingDate: %w", ErrValidation, err) //nolint:errorlint // намеренный двойной wrap
	}
	insp.SamplingDate = samplingDate

	// Критерии наследуют идентификатор инспекции
	for _, c := range criteria {
		c.InspectionID = insp.InspectionID
	}

	if err := s.repo.Create(ctx, insp, criteria); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: инспекция '%s' уже существует", ErrConflict, insp.InspectionID)
		}
		return nil, fmt.Errorf("сохранение инспекции: %w", err)
	}

	s.logger.Info("Инспекция создана",
		slog.String("inspection_id", insp.InspectionID),
		slog.Int("criteria_count", len(criteria)),
	)

	insp.Criteria = criteria
	return insp, nil
}

// List возвращает заголовки инспекций по фильтру, без критериев.
// Пустой результат трактуется как ErrNotFound: контракт эндпоинта
// истории, на который завязаны клиенты.
func (s *InspectionService) List(ctx context.Context, filter HistoryFilter) ([]*model.Inspection, error) {
	repoFilter := repository.ListFilter{InspectionID: filter.InspectionID}

	if filter.FromDate != "" {
		from, err := datefmt.NormalizeDay(filter.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fromDate: %w", ErrValidation, err) //nolint:errorlint // намеренный двойной wrap
		}
		repoFilter.FromDate = from
	}
	if filter.ToDate != "" {
		to, err := datefmt.NormalizeDay(filter.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: toDate: %w", ErrValidation, err) //nolint:errorlint // намеренный двойной wrap
		}
		repoFilter.ToDate = to
	}

	list, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("получение истории инспекций: %w", err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}

	return list, nil
}

// Get возвращает инспекцию с критериями по идентификатору.
func (s *InspectionService) Get(ctx context.Context, inspectionID string) (*model.Inspection, error) {
	insp, err := s.repo.GetByID(ctx, inspectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение инспекции: %w", err)
	}
	return insp, nil
}

// Delete удаляет набор инспекций вместе с критериями.
// Пустой набор — ErrValidation. Если ни одна запись не удалена — ErrNotFound.
// Возвращает число удалённых инспекций.
func (s *InspectionService) Delete(ctx context.Context, inspectionIDs []string) (int64, error) {
	if len(inspectionIDs) == 0 {
		return 0, fmt.Errorf("%w: список inspectionID пуст", ErrValidation)
	}
	for _, id := range inspectionIDs {
		if id == "" {
			return 0, fmt.Errorf("%w: пустой inspectionID в списке", ErrValidation)
		}
	}

	removed, err := s.repo.DeleteByIDs(ctx, inspectionIDs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("удаление инспекций: %w", err)
	}

	s.logger.Info("Инспекции удалены",
		slog.Int64("removed", removed),
		slog.Int("requested", len(inspectionIDs)),
	)

	return removed, nil
}
