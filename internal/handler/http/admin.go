package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/handler/http/response"
)

// AdminHandler groups the administrator-only configuration surface: absence
// types, holidays, allotments and approver assignments.
type AdminHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	CreateHoliday(w http.ResponseWriter, r *http.Request)
	DeleteHoliday(w http.ResponseWriter, r *http.Request)

	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateAllotment(w http.ResponseWriter, r *http.Request)

	AssignApprover(w http.ResponseWriter, r *http.Request)
	RemoveApprover(w http.ResponseWriter, r *http.Request)
	ListApprovers(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	absenceService   absence.Service
	directoryService user.DirectoryService
}

func NewAdminHandler(absenceService absence.Service, directoryService user.DirectoryService) AdminHandler {
	return &AdminHandlerImpl{
		absenceService:   absenceService,
		directoryService: directoryService,
	}
}

// CreateType implements AdminHandler.
func (h *AdminHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req absence.CreateAbsenceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.absenceService.CreateAbsenceType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence type created successfully", absence.ToAbsenceTypeResponse(created))
}

// UpdateType implements AdminHandler.
func (h *AdminHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req absence.UpdateAbsenceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.absenceService.UpdateAbsenceType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence type updated successfully", nil)
}

// DeleteType implements AdminHandler.
func (h *AdminHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.absenceService.DeleteAbsenceType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence type deleted successfully", nil)
}

// CreateHoliday implements AdminHandler.
func (h *AdminHandlerImpl) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req absence.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.absenceService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", absence.ToHolidayResponse(created))
}

// DeleteHoliday implements AdminHandler.
func (h *AdminHandlerImpl) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.absenceService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// ListUsers implements AdminHandler.
func (h *AdminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.directoryService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateAllotment implements AdminHandler.
func (h *AdminHandlerImpl) UpdateAllotment(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateAllotmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAllotment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = chi.URLParam(r, "id")

	if err := h.directoryService.UpdateAllotment(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allotment updated successfully", nil)
}

// AssignApprover implements AdminHandler.
func (h *AdminHandlerImpl) AssignApprover(w http.ResponseWriter, r *http.Request) {
	var req user.AssignApproverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignApprover decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := h.directoryService.AssignApprover(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Approver assigned successfully", map[string]string{
		"assignment_id": assignment.ID,
	})
}

// RemoveApprover implements AdminHandler.
func (h *AdminHandlerImpl) RemoveApprover(w http.ResponseWriter, r *http.Request) {
	subordinateID := chi.URLParam(r, "subordinateID")
	approverID := chi.URLParam(r, "approverID")

	if err := h.directoryService.RemoveApprover(r.Context(), subordinateID, approverID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approver assignment removed", nil)
}

// ListApprovers implements AdminHandler.
func (h *AdminHandlerImpl) ListApprovers(w http.ResponseWriter, r *http.Request) {
	approvers, err := h.directoryService.ApproversOf(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, approvers)
}
