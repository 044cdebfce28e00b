package response

import (
	"errors"
	"net/http"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/auth"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrPasswordTooShort):
		BadRequest(w, "Password must be at least 6 characters", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Administrator privilege required")
	case errors.Is(err, user.ErrAssignmentNotFound):
		NotFound(w, "Approver assignment not found")
	case errors.Is(err, user.ErrAssignmentExists):
		Conflict(w, "Approver is already assigned to this user")
	case errors.Is(err, user.ErrSelfAssignment):
		BadRequest(w, "A user cannot approve their own requests", nil)
	case errors.Is(err, user.ErrApproverRoleRequired):
		BadRequest(w, "Assigned user cannot approve requests", nil)

	// Absence domain errors
	case errors.Is(err, absence.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, absence.ErrAbsenceTypeNotFound):
		NotFound(w, "Absence type not found")
	case errors.Is(err, absence.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, absence.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, absence.ErrVacationOverlap):
		Conflict(w, "The range overlaps an existing vacation request")
	case errors.Is(err, absence.ErrLeaveOverlap):
		Conflict(w, "The range overlaps an existing leave request")
	case errors.Is(err, absence.ErrNoChargeableDays):
		BadRequest(w, "The range contains no chargeable days", nil)
	case errors.Is(err, absence.ErrInsufficientBalance):
		BadRequest(w, "Insufficient vacation balance", nil)
	case errors.Is(err, absence.ErrAbsenceTypeRequired):
		BadRequest(w, "An absence type is required for leave requests", nil)
	case errors.Is(err, absence.ErrAlreadyProcessed):
		Conflict(w, "Request already processed")
	case errors.Is(err, absence.ErrNotCurrentVersion):
		Conflict(w, "Request version is no longer current")
	case errors.Is(err, absence.ErrNotRequestOwner):
		Forbidden(w, "Only the request owner may do this")
	case errors.Is(err, absence.ErrNotAssignedApprover):
		Forbidden(w, "You are not an assigned approver for this user")
	case errors.Is(err, absence.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
