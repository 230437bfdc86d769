package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/easyrice/inspection-module/internal/domain/model"
	"github.com/easyrice/inspection-module/internal/repository"
)

// --- Mock repository ---

// mockInspectionRepo — мок InspectionRepository для unit-тестов.
type mockInspectionRepo struct {
	getByIDFn     func(ctx context.Context, inspectionID string) (*model.Inspection, error)
	listFn        func(ctx context.Context, filter repository.ListFilter) ([]*model.Inspection, error)
	createFn      func(ctx context.Context, insp *model.Inspection, criteria []*model.StandardCriterion) error
	deleteByIDsFn func(ctx context.Context, inspectionIDs []string) (int64, error)
}

func (m *mockInspectionRepo) GetByID(ctx context.Context, inspectionID string) (*model.Inspection, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, inspectionID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockInspectionRepo) List(ctx context.Context, filter repository.ListFilter) ([]*model.Inspection, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockInspectionRepo) Create(ctx context.Context, insp *model.Inspection, criteria []*model.StandardCriterion) error {
	if m.createFn != nil {
		return m.createFn(ctx, insp, criteria)
	}
	return nil
}

func (m *mockInspectionRepo) DeleteByIDs(ctx context.Context, inspectionIDs []string) (int64, error) {
	if m.deleteByIDsFn != nil {
		return m.deleteByIDsFn(ctx, inspectionIDs)
	}
	return 0, repository.ErrNotFound
}

func validInspection() *model.Inspection {
	return &model.Inspection{
		InspectionID: "INS-1",
		Name:         "Jasmine batch",
		CreateDate:   "2024-01-05T10:00:00Z",
		SamplingDate: "2024-01-06T12:30:00+07:00",
	}
}

// --- Тесты InspectionService.Create ---

// TestInspectionCreate_NormalizesDates проверяет, что даты приводятся
// к каноническому виду до записи в репозиторий.
func TestInspectionCreate_NormalizesDates(t *testing.T) {
	var saved *model.Inspection
	repo := &mockInspectionRepo{
		createFn: func(_ context.Context, insp *model.Inspection, _ []*model.StandardCriterion) error {
			saved = insp
			return nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	got, err := svc.Create(context.Background(), validInspection(), nil)
	if err != nil {
		t.Fatalf("Create ошибка: %v", err)
	}

	if saved.CreateDate != "2024-01-05 10:00:00" {
		t.Errorf("CreateDate = %q, ожидался канонический вид", saved.CreateDate)
	}
	// +07:00 конвертируется в UTC
	if saved.SamplingDate != "2024-01-06 05:30:00" {
		t.Errorf("SamplingDate = %q, ожидалась конвертация в UTC", saved.SamplingDate)
	}
	if got.CreateDate != saved.CreateDate {
		t.Errorf("возвращённая инспекция не нормализована: %q", got.CreateDate)
	}
}

// TestInspectionCreate_InvalidDate: некорректная дата — ErrValidation,
// репозиторий не вызывается.
func TestInspectionCreate_InvalidDate(t *testing.T) {
	repoCalled := false
	repo := &mockInspectionRepo{
		createFn: func(_ context.Context, _ *model.Inspection, _ []*model.StandardCriterion) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	insp := validInspection()
	insp.CreateDate = "не дата"

	_, err := svc.Create(context.Background(), insp, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидался ErrValidation, получили: %v", err)
	}
	if repoCalled {
		t.Error("репозиторий вызван при невалидной дате")
	}
}

// TestInspectionCreate_RequiredFields проверяет обязательность
// inspectionID и name.
func TestInspectionCreate_RequiredFields(t *testing.T) {
	svc := NewInspectionService(&mockInspectionRepo{}, slog.Default())

	insp := validInspection()
	insp.InspectionID = ""
	if _, err := svc.Create(context.Background(), insp, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("пустой inspectionID: ожидался ErrValidation, получили: %v", err)
	}

	insp = validInspection()
	insp.Name = ""
	if _, err := svc.Create(context.Background(), insp, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("пустой name: ожидался ErrValidation, получили: %v", err)
	}
}

// TestInspectionCreate_Conflict проверяет маппинг repository.ErrConflict.
func TestInspectionCreate_Conflict(t *testing.T) {
	repo := &mockInspectionRepo{
		createFn: func(_ context.Context, _ *model.Inspection, _ []*model.StandardCriterion) error {
			return repository.ErrConflict
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	_, err := svc.Create(context.Background(), validInspection(), nil)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("ожидался ErrConflict, получили: %v", err)
	}
}

// TestInspectionCreate_CriteriaInheritID: критерии получают идентификатор
// инспекции перед сохранением.
func TestInspectionCreate_CriteriaInheritID(t *testing.T) {
	var savedCriteria []*model.StandardCriterion
	repo := &mockInspectionRepo{
		createFn: func(_ context.Context, _ *model.Inspection, criteria []*model.StandardCriterion) error {
			savedCriteria = criteria
			return nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	criteria := []*model.StandardCriterion{{Key: "k1"}, {Key: "k2"}}
	if _, err := svc.Create(context.Background(), validInspection(), criteria); err != nil {
		t.Fatalf("Create ошибка: %v", err)
	}

	for i, c := range savedCriteria {
		if c.InspectionID != "INS-1" {
			t.Errorf("criteria[%d].InspectionID = %q, ожидался 'INS-1'", i, c.InspectionID)
		}
	}
}

// --- Тесты InspectionService.List ---

// TestInspectionList_EmptyIsNotFound: пустой результат — ErrNotFound,
// контракт эндпоинта истории.
func TestInspectionList_EmptyIsNotFound(t *testing.T) {
	repo := &mockInspectionRepo{
		listFn: func(_ context.Context, _ repository.ListFilter) ([]*model.Inspection, error) {
			return nil, nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	_, err := svc.List(context.Background(), HistoryFilter{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получили: %v", err)
	}
}

// TestInspectionList_InvalidFilterDate: невалидная граница диапазона —
// ErrValidation, не тихий полный выбор.
func TestInspectionList_InvalidFilterDate(t *testing.T) {
	repoCalled := false
	repo := &mockInspectionRepo{
		listFn: func(_ context.Context, _ repository.ListFilter) ([]*model.Inspection, error) {
			repoCalled = true
			return nil, nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	_, err := svc.List(context.Background(), HistoryFilter{FromDate: "01/10/2024"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидался ErrValidation, получили: %v", err)
	}

	_, err = svc.List(context.Background(), HistoryFilter{ToDate: "завтра"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидался ErrValidation, получили: %v", err)
	}
	if repoCalled {
		t.Error("репозиторий вызван при невалидном фильтре")
	}
}

// TestInspectionList_PassesFilter проверяет передачу нормализованного
// фильтра в репозиторий.
func TestInspectionList_PassesFilter(t *testing.T) {
	var gotFilter repository.ListFilter
	repo := &mockInspectionRepo{
		listFn: func(_ context.Context, filter repository.ListFilter) ([]*model.Inspection, error) {
			gotFilter = filter
			return []*model.Inspection{{InspectionID: "INS-1"}}, nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	list, err := svc.List(context.Background(), HistoryFilter{
		InspectionID: "INS-1",
		FromDate:     "2024-01-10",
		ToDate:       "2024-01-20",
	})
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, ожидался 1", len(list))
	}
	if gotFilter.InspectionID != "INS-1" || gotFilter.FromDate != "2024-01-10" || gotFilter.ToDate != "2024-01-20" {
		t.Errorf("фильтр передан неверно: %+v", gotFilter)
	}
}

// --- Тесты InspectionService.Get ---

// TestInspectionGet_NotFound проверяет маппинг repository.ErrNotFound.
func TestInspectionGet_NotFound(t *testing.T) {
	svc := NewInspectionService(&mockInspectionRepo{}, slog.Default())

	_, err := svc.Get(context.Background(), "INS-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получили: %v", err)
	}
}

// --- Тесты InspectionService.Delete ---

// TestInspectionDelete_EmptySet: пустой набор — ErrValidation,
// репозиторий не вызывается.
func TestInspectionDelete_EmptySet(t *testing.T) {
	repoCalled := false
	repo := &mockInspectionRepo{
		deleteByIDsFn: func(_ context.Context, _ []string) (int64, error) {
			repoCalled = true
			return 0, nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	if _, err := svc.Delete(context.Background(), nil); !errors.Is(err, ErrValidation) {
		t.Errorf("nil набор: ожидался ErrValidation, получили: %v", err)
	}
	if _, err := svc.Delete(context.Background(), []string{}); !errors.Is(err, ErrValidation) {
		t.Errorf("пустой набор: ожидался ErrValidation, получили: %v", err)
	}
	if _, err := svc.Delete(context.Background(), []string{"INS-1", ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("пустой id в наборе: ожидался ErrValidation, получили: %v", err)
	}
	if repoCalled {
		t.Error("репозиторий вызван при невалидном наборе")
	}
}

// TestInspectionDelete_ReturnsCount проверяет возврат счётчика удалённых.
func TestInspectionDelete_ReturnsCount(t *testing.T) {
	repo := &mockInspectionRepo{
		deleteByIDsFn: func(_ context.Context, ids []string) (int64, error) {
			if len(ids) != 2 {
				t.Errorf("len(ids) = %d, ожидался 2", len(ids))
			}
			return 2, nil
		},
	}
	svc := NewInspectionService(repo, slog.Default())

	removed, err := svc.Delete(context.Background(), []string{"INS-1", "INS-2"})
	if err != nil {
		t.Fatalf("Delete ошибка: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, ожидался 2", removed)
	}
}

// TestInspectionDelete_NotFound: ни одна запись не удалена — ErrNotFound.
func TestInspectionDelete_NotFound(t *testing.T) {
	svc := NewInspectionService(&mockInspectionRepo{}, slog.Default())

	_, err := svc.Delete(context.Background(), []string{"INS-missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидался ErrNotFound, получили: %v", err)
	}
}
