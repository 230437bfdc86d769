// inspections.go — обработчики /standard и /history endpoints.
// Справочник стандартов, листинг/чтение/создание/удаление инспекций.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/easyrice/inspection-module/internal/api/errors"
	"github.com/easyrice/inspection-module/internal/domain/model"
	"github.com/easyrice/inspection-module/internal/service"
)

// --- DTO внешнего контракта ---

// criterionDTO — критерий стандарта во внешнем представлении.
type criterionDTO struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	MinLength    float64  `json:"minLength"`
	MaxLength    float64  `json:"maxLength"`
	Shape        []string `json:"shape"`
	ConditionMin string   `json:"conditionMin"`
	ConditionMax string   `json:"conditionMax"`
	Value        float64  `json:"value"`
}

// inspectionDTO — инспекция во внешнем представлении.
// Поле standardData присутствует только там, где критерии загружены.
type inspectionDTO struct {
	InspectionID  string         `json:"inspectionID"`
	Name          string         `json:"name"`
	CreateDate    string         `json:"createDate"`
	StandardID    string         `json:"standardID"`
	Note          string         `json:"note"`
	StandardName  string         `json:"standardName"`
	SamplingDate  string         `json:"samplingDate"`
	SamplingPoint []string       `json:"samplingPoint"`
	Price         float64        `json:"price"`
	ImageLink     string         `json:"imageLink"`
	StandardData  []criterionDTO `json:"standardData,omitempty"`
}

// standardDTO — стандарт качества во внешнем представлении.
type standardDTO struct {
	StandardID string `json:"standardID"`
	Name       string `json:"name"`
	CreateDate string `json:"createDate"`
}

// createInspectionRequest — тело POST /history.
type createInspectionRequest struct {
	InspectionID  string         `json:"inspectionID"`
	Name          string         `json:"name"`
	CreateDate    string         `json:"createDate"`
	StandardID    string         `json:"standardID"`
	Note          string         `json:"note"`
	StandardName  string         `json:"standardName"`
	SamplingDate  string         `json:"samplingDate"`
	SamplingPoint []string       `json:"samplingPoint"`
	Price         float64        `json:"price"`
	ImageLink     string         `json:"imageLink"`
	StandardData  []criterionDTO `json:"standardData"`
}

// deleteInspectionsRequest — тело DELETE /history.
type deleteInspectionsRequest struct {
	InspectionID []string `json:"inspectionID"`
}

// deleteInspectionsResponse — результат массового удаления.
type deleteInspectionsResponse struct {
	Message      string   `json:"message"`
	DeletedCount int64    `json:"deletedCount"`
	DeletedIDs   []string `json:"deletedIDs"`
}

// --- Маппинг model <-> DTO ---

func mapInspection(insp *model.Inspection) inspectionDTO {
	dto := inspectionDTO{
		InspectionID:  insp.InspectionID,
		Name:          insp.Name,
		CreateDate:    insp.CreateDate,
		StandardID:    insp.StandardID,
		Note:          insp.Note,
		StandardName:  insp.StandardName,
		SamplingDate:  insp.SamplingDate,
		SamplingPoint: insp.SamplingPoint,
		Price:         insp.Price,
		ImageLink:     insp.ImageLink,
	}
	for _, c := range insp.Criteria {
		dto.StandardData = append(dto.StandardData, criterionDTO{
			Key:          c.Key,
			Name:         c.Name,
			MinLength:    c.MinLength,
			MaxLength:    c.MaxLength,
			Shape:        c.Shape,
			ConditionMin: c.ConditionMin,
			ConditionMax: c.ConditionMax,
			Value:        c.Value,
		})
	}
	return dto
}

func mapInspections(list []*model.Inspection) []inspectionDTO {
	result := make([]inspectionDTO, 0, len(list))
	for _, insp := range list {
		result = append(result, mapInspection(insp))
	}
	return result
}

// --- Обработчики ---

// ListStandards — GET /standard.
// Возвращает справочник стандартов качества.
func (h *APIHandler) ListStandards(w http.ResponseWriter, r *http.Request) {
	list, err := h.standards.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения стандартов", "error", err)
		apierrors.InternalError(w, "Ошибка получения стандартов")
		return
	}

	result := make([]standardDTO, 0, len(list))
	for _, s := range list {
		result = append(result, standardDTO{
			StandardID: s.StandardID,
			Name:       s.Name,
			CreateDate: s.CreateDate,
		})
	}

	writeData(w, http.StatusOK, result)
}

// ListHistory — GET /history?fromDate&toDate&inspectionID.
// Возвращает заголовки инспекций без критериев.
// Пустой результат — 404: контракт, на который завязаны клиенты.
func (h *APIHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	filter := service.HistoryFilter{
		InspectionID: r.URL.Query().Get("inspectionID"),
		FromDate:     r.URL.Query().Get("fromDate"),
		ToDate:       r.URL.Query().Get("toDate"),
	}

	list, err := h.inspections.List(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Инспекции не найдены")
		default:
			h.logger.Error("Ошибка получения истории", "error", err)
			apierrors.InternalError(w, "Ошибка получения истории инспекций")
		}
		return
	}

	writeData(w, http.StatusOK, mapInspections(list))
}

// GetHistoryByID — GET /history/{inspectionID}.
// Возвращает инспекцию с критериями.
func (h *APIHandler) GetHistoryByID(w http.ResponseWriter, r *http.Request) {
	inspectionID := chi.URLParam(r, "inspectionID")

	insp, err := h.inspections.Get(r.Context(), inspectionID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, fmt.Sprintf("Инспекция '%s' не найдена", inspectionID))
			return
		}
		h.logger.Error("Ошибка получения инспекции", "inspection_id", inspectionID, "error", err)
		apierrors.InternalError(w, "Ошибка получения инспекции")
		return
	}

	writeData(w, http.StatusOK, []inspectionDTO{mapInspection(insp)})
}

// CreateHistory — POST /history.
// Создаёт инспекцию вместе с критериями атомарно.
// Возвращает 201 и сохранённое представление с нормализованными датами.
func (h *APIHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req createInspectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	insp := &model.Inspection{
		InspectionID:  req.InspectionID,
		Name:          req.Name,
		CreateDate:    req.CreateDate,
		StandardID:    req.StandardID,
		Note:          req.Note,
		StandardName:  req.StandardName,
		SamplingDate:  req.SamplingDate,
		SamplingPoint: req.SamplingPoint,
		Price:         req.Price,
		ImageLink:     req.ImageLink,
	}

	criteria := make([]*model.StandardCriterion, 0, len(req.StandardData))
	for _, c := range req.StandardData {
		criteria = append(criteria, &model.StandardCriterion{
			Key:          c.Key,
			Name:         c.Name,
			MinLength:    c.MinLength,
			MaxLength:    c.MaxLength,
			Shape:        c.Shape,
			ConditionMin: c.ConditionMin,
			ConditionMax: c.ConditionMax,
			Value:        c.Value,
		})
	}

	created, err := h.inspections.Create(r.Context(), insp, criteria)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrConflict):
			apierrors.Conflict(w, err.Error())
		default:
			h.logger.Error("Ошибка создания инспекции",
				"inspection_id", req.InspectionID, "error", err)
			apierrors.InternalError(w, "Ошибка создания инспекции")
		}
		return
	}

	writeData(w, http.StatusCreated, mapInspection(created))
}

// DeleteHistory — DELETE /history.
// Удаляет набор инспекций вместе с критериями атомарно.
func (h *APIHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	var req deleteInspectionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	removed, err := h.inspections.Delete(r.Context(), req.InspectionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Инспекции для удаления не найдены")
		default:
			h.logger.Error("Ошибка удаления инспекций", "error", err)
			apierrors.InternalError(w, "Ошибка удаления инспекций")
		}
		return
	}

	writeJSON(w, http.StatusOK, deleteInspectionsResponse{
		Message:      "Инспекции удалены",
		DeletedCount: removed,
		DeletedIDs:   req.InspectionID,
	})
}
