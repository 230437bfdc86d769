// standards.go — сервис справочника стандартов качества.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/easyrice/inspection-module/internal/domain/model"
	"github.com/easyrice/inspection-module/internal/repository"
)

// StandardService — чтение справочника стандартов.
type StandardService struct {
	repo   repository.StandardRepository
	logger *slog.Logger
}

// NewStandardService создаёт сервис стандартов.
func NewStandardService(repo repository.StandardRepository, logger *slog.Logger) *StandardService {
	return &StandardService{
		repo:   repo,
		logger: logger.With(slog.String("component", "standard_service")),
	}
}

// List возвращает все стандарты качества.
func (s *StandardService) List(ctx context.Context) ([]*model.Standard, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение стандартов: %w", err)
	}
	return list, nil
}
