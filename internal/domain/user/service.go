package user

import "context"

// DirectoryService covers the read-mostly people operations the absence
// engine depends on, plus the admin knobs (allotments, approver edges).
type DirectoryService interface {
	GetUser(ctx context.Context, id string) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	UpdateAllotment(ctx context.Context, req UpdateAllotmentRequest) error

	AssignApprover(ctx context.Context, req AssignApproverRequest) (ApproverAssignment, error)
	RemoveApprover(ctx context.Context, subordinateID, approverID string) error
	ApproversOf(ctx context.Context, subordinateID string) ([]UserResponse, error)
}
