package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleApprover Role = "approver"
	RoleAdmin    Role = "admin"
)

// User is the identity record. The engine treats it as a read-only snapshot
// per validation pass; the allotment is re-read on every request.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// AnnualAllotment is the yearly vacation entitlement in working days.
	AnnualAllotment int

	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove reports whether the role may act on subordinates' requests at
// all; per-request scoping still goes through the approver assignments.
func (u User) CanApprove() bool {
	return u.Role == RoleApprover || u.Role == RoleAdmin
}

// ApproverAssignment is a directed edge: Approver may act on Subordinate's
// requests.
type ApproverAssignment struct {
	ID            string
	SubordinateID string
	ApproverID    string
	AssignedAt    time.Time
}
