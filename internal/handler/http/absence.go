package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/handler/http/response"
)

type AbsenceHandler interface {
	SubmitRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	RespondRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)

	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetPendingRequests(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	CountDays(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)

	ListTypes(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.Service
}

func NewAbsenceHandler(absenceService absence.Service) AbsenceHandler {
	return &AbsenceHandlerImpl{absenceService: absenceService}
}

// SubmitRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	actorID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req absence.SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ActorID = actorID

	result, err := h.absenceService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted successfully", result)
}

// CancelRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actorID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req absence.CancelRequestRequest
	// A note body is optional on cancellations
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			slog.Error("CancelRequest decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ActorID = actorID
	req.Category = chi.URLParam(r, "category")
	req.RequestID = chi.URLParam(r, "id")

	result, err := h.absenceService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request cancelled successfully", result)
}

// RespondRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) RespondRequest(w http.ResponseWriter, r *http.Request) {
	actorID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req absence.RespondRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RespondRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ActorID = actorID
	req.Category = chi.URLParam(r, "category")
	req.RequestID = chi.URLParam(r, "id")

	result, err := h.absenceService.Respond(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded successfully", result)
}

// GetRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	requestID := chi.URLParam(r, "id")

	result, err := h.absenceService.GetRequest(r.Context(), category, requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.absenceService.ListActive(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPendingRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.absenceService.ListPendingForApprover(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyBalance implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balance, err := h.absenceService.AvailableBalance(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"available_days": balance})
}

// CountDays implements AbsenceHandler.
func (h *AbsenceHandlerImpl) CountDays(w http.ResponseWriter, r *http.Request) {
	req := absence.CountDaysRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	days, err := h.absenceService.CountDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"working_days": days})
}

// GetSchedule implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	events, err := h.absenceService.Schedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}

// ListTypes implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.absenceService.ListAbsenceTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]absence.AbsenceTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, absence.ToAbsenceTypeResponse(t))
	}
	response.Success(w, responses)
}

// ListHolidays implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.absenceService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]absence.HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		responses = append(responses, absence.ToHolidayResponse(holiday))
	}
	response.Success(w, responses)
}
