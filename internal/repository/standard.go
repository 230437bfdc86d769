package repository

import (
	"context"
	"fmt"

	"github.com/easyrice/inspection-module/internal/domain/model"
)

// StandardRepository — чтение справочника стандартов качества.
type StandardRepository interface {
	// List возвращает все стандарты.
	List(ctx context.Context) ([]*model.Standard, error)
}

// standardRepo — реализация StandardRepository.
type standardRepo struct {
	db DBTX
}

// NewStandardRepository создаёт репозиторий стандартов.
func NewStandardRepository(db DBTX) StandardRepository {
	return &standardRepo{db: db}
}

func (r *standardRepo) List(ctx context.Context) ([]*model.Standard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT standard_id, name, create_date FROM standards ORDER BY standard_id`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения стандартов: %w", err)
	}
	defer rows.Close()

	var result []*model.Standard
	for rows.Next() {
		s := &model.Standard{}
		if err := rows.Scan(&s.StandardID, &s.Name, &s.CreateDate); err != nil {
			return nil, fmt.Errorf("ошибка сканирования стандарта: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
