package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/auth"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/validator"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"user not found", user.ErrUserNotFound, http.StatusNotFound},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden},
		{"assignment exists", user.ErrAssignmentExists, http.StatusConflict},
		{"request not found", absence.ErrRequestNotFound, http.StatusNotFound},
		{"invalid range", absence.ErrInvalidDateRange, http.StatusBadRequest},
		{"vacation overlap", absence.ErrVacationOverlap, http.StatusConflict},
		{"leave overlap", absence.ErrLeaveOverlap, http.StatusConflict},
		{"zero chargeable days", absence.ErrNoChargeableDays, http.StatusBadRequest},
		{"insufficient balance", absence.ErrInsufficientBalance, http.StatusBadRequest},
		{"already processed", absence.ErrAlreadyProcessed, http.StatusConflict},
		{"stale version", absence.ErrNotCurrentVersion, http.StatusConflict},
		{"not owner", absence.ErrNotRequestOwner, http.StatusForbidden},
		{"not assigned approver", absence.ErrNotAssignedApprover, http.StatusForbidden},
		{"holiday exists", absence.ErrHolidayExists, http.StatusConflict},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
		})
	}
}

func TestHandleErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "start_date", Message: "start_date must be a valid date (YYYY-MM-DD)"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Contains(t, body.Error.Details, "start_date")
}
