package user

import (
	"time"

	"github.com/worktide-hr/absence-backend-go/internal/pkg/validator"
)

// UserResponse is the outward shape of a user; the password hash never
// leaves the domain layer.
type UserResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	AnnualAllotment int       `json:"annual_allotment"`
	JoinedAt        time.Time `json:"joined_at"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		AnnualAllotment: u.AnnualAllotment,
		JoinedAt:        u.JoinedAt,
	}
}

type UpdateAllotmentRequest struct {
	UserID          string `json:"-"`
	AnnualAllotment int    `json:"annual_allotment"`
}

func (r *UpdateAllotmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.AnnualAllotment < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_allotment",
			Message: "annual_allotment must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignApproverRequest struct {
	SubordinateID string `json:"subordinate_id"`
	ApproverID    string `json:"approver_id"`
}

func (r *AssignApproverRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SubordinateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "subordinate_id",
			Message: "subordinate_id is required",
		})
	}
	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
