package user

import "context"

// Repository - interface for the users table. Read-mostly: the engine never
// creates identities, it only consumes them.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	UpdateAllotment(ctx context.Context, id string, annualAllotment int) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
}

// ApproverRepository - interface for the approver_assignments join table
type ApproverRepository interface {
	Assign(ctx context.Context, subordinateID, approverID string) (ApproverAssignment, error)
	Remove(ctx context.Context, subordinateID, approverID string) error
	// ApproversOf returns the users allowed to act on subordinateID's requests.
	ApproversOf(ctx context.Context, subordinateID string) ([]User, error)
	// SubordinateIDsOf returns the users approverID is responsible for.
	SubordinateIDsOf(ctx context.Context, approverID string) ([]string, error)
	IsApproverFor(ctx context.Context, approverID, subordinateID string) (bool, error)
}
