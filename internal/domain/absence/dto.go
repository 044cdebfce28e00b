package absence

import (
	"time"

	"github.com/worktide-hr/absence-backend-go/internal/pkg/validator"
)

type SubmitRequestRequest struct {
	ActorID string `json:"-"`

	// TargetUserID lets an administrator file on behalf of another user;
	// empty means the actor files for themselves.
	TargetUserID string `json:"target_user_id,omitempty"`

	Category      string  `json:"category"`
	AbsenceTypeID *string `json:"absence_type_id,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason,omitempty"`
}

func (r *SubmitRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != string(CategoryVacation) && r.Category != string(CategoryLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be 'vacation' or 'leave'",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if r.Category == string(CategoryLeave) {
		if r.AbsenceTypeID == nil || validator.IsEmpty(*r.AbsenceTypeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "absence_type_id",
				Message: "absence_type_id is required for leave requests",
			})
		}
	}

	if len(r.Reason) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelRequestRequest struct {
	ActorID   string `json:"-"`
	Category  string `json:"category"`
	RequestID string `json:"request_id"`
	Note      string `json:"note,omitempty"`
}

func (r *CancelRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != string(CategoryVacation) && r.Category != string(CategoryLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be 'vacation' or 'leave'",
		})
	}
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RespondRequestRequest struct {
	ActorID   string  `json:"-"`
	Category  string  `json:"category"`
	RequestID string  `json:"request_id"`
	Decision  string  `json:"decision"`
	Comment   *string `json:"comment,omitempty"`
}

func (r *RespondRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != string(CategoryVacation) && r.Category != string(CategoryLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be 'vacation' or 'leave'",
		})
	}
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if r.Decision != string(DecisionApprove) && r.Decision != string(DecisionReject) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be 'approve' or 'reject'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CountDaysRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *CountDaysRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateAbsenceTypeRequest struct {
	Name                  string  `json:"name"`
	Description           *string `json:"description,omitempty"`
	MaxDays               int     `json:"max_days"`
	DayPolicy             string  `json:"day_policy"`
	RequiresJustification bool    `json:"requires_justification"`
	RequireChargeableDays bool    `json:"require_chargeable_days"`
	DeductsAllotment      bool    `json:"deducts_allotment"`
}

func (r *CreateAbsenceTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.DayPolicy != string(DayPolicyCalendarDays) && r.DayPolicy != string(DayPolicyWorkingDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_policy",
			Message: "day_policy must be 'calendar_days' or 'working_days'",
		})
	}
	if r.MaxDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days",
			Message: "max_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAbsenceTypeRequest struct {
	ID                    string  `json:"absence_type_id"`
	Name                  *string `json:"name,omitempty"`
	Description           *string `json:"description,omitempty"`
	MaxDays               *int    `json:"max_days,omitempty"`
	DayPolicy             *string `json:"day_policy,omitempty"`
	RequiresJustification *bool   `json:"requires_justification,omitempty"`
	RequireChargeableDays *bool   `json:"require_chargeable_days,omitempty"`
	DeductsAllotment      *bool   `json:"deducts_allotment,omitempty"`
}

func (r *UpdateAbsenceTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "absence_type_id",
			Message: "absence_type_id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.DayPolicy != nil &&
		*r.DayPolicy != string(DayPolicyCalendarDays) && *r.DayPolicy != string(DayPolicyWorkingDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "day_policy",
			Message: "day_policy must be 'calendar_days' or 'working_days'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHolidayRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date (YYYY-MM-DD)",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AbsenceTypeResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Description           *string   `json:"description,omitempty"`
	MaxDays               int       `json:"max_days"`
	DayPolicy             DayPolicy `json:"day_policy"`
	RequiresJustification bool      `json:"requires_justification"`
	RequireChargeableDays bool      `json:"require_chargeable_days"`
	DeductsAllotment      bool      `json:"deducts_allotment"`
}

func ToAbsenceTypeResponse(t AbsenceType) AbsenceTypeResponse {
	return AbsenceTypeResponse{
		ID:                    t.ID,
		Name:                  t.Name,
		Description:           t.Description,
		MaxDays:               t.MaxDays,
		DayPolicy:             t.DayPolicy,
		RequiresJustification: t.RequiresJustification,
		RequireChargeableDays: t.RequireChargeableDays,
		DeductsAllotment:      t.DeductsAllotment,
	}
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func ToHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		Date:        h.Date.Format(dateLayout),
		Description: h.Description,
	}
}

// RequestResponse is the outward shape of a request version.
type RequestResponse struct {
	ID                string     `json:"id"`
	GroupID           string     `json:"group_id"`
	Version           int        `json:"version"`
	IsCurrent         bool       `json:"is_current"`
	Category          Category   `json:"category"`
	OwnerID           string     `json:"owner_id"`
	OwnerName         *string    `json:"owner_name,omitempty"`
	AbsenceTypeID     *string    `json:"absence_type_id,omitempty"`
	AbsenceTypeName   *string    `json:"absence_type_name,omitempty"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	DaysRequested     int        `json:"days_requested"`
	Reason            string     `json:"reason,omitempty"`
	Status            Status     `json:"status"`
	RequestedAt       time.Time  `json:"requested_at"`
	RespondedAt       *time.Time `json:"responded_at,omitempty"`
	ApproverID        *string    `json:"approver_id,omitempty"`
	DecisionComment   *string    `json:"decision_comment,omitempty"`
	RectificationNote *string    `json:"rectification_note,omitempty"`
}

const dateLayout = "2006-01-02"

func ToRequestResponse(r Request) RequestResponse {
	return RequestResponse{
		ID:                r.ID,
		GroupID:           r.GroupID,
		Version:           r.Version,
		IsCurrent:         r.IsCurrent,
		Category:          r.Category,
		OwnerID:           r.OwnerID,
		OwnerName:         r.OwnerName,
		AbsenceTypeID:     r.AbsenceTypeID,
		AbsenceTypeName:   r.AbsenceTypeName,
		StartDate:         r.StartDate.Format(dateLayout),
		EndDate:           r.EndDate.Format(dateLayout),
		DaysRequested:     r.DaysRequested,
		Reason:            r.Reason,
		Status:            r.Status,
		RequestedAt:       r.RequestedAt,
		RespondedAt:       r.RespondedAt,
		ApproverID:        r.ApproverID,
		DecisionComment:   r.DecisionComment,
		RectificationNote: r.RectificationNote,
	}
}
