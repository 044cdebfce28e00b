package absence

import (
	"context"
	"time"
)

// OverlapQuery narrows the interval scan performed by HasOverlap.
type OverlapQuery struct {
	OwnerID   string
	Category  Category
	StartDate time.Time
	EndDate   time.Time
	// ExcludeRequestID skips one row, so an edited request is not compared
	// against itself.
	ExcludeRequestID *string
}

// UpdateStatusParams carries an in-place status transition (respond). Dates,
// reason and type never change through this path; semantic edits go through
// supersession instead.
type UpdateStatusParams struct {
	ID              string
	Category        Category
	Status          Status
	ApproverID      string
	RespondedAt     time.Time
	DecisionComment *string
}

// RequestRepository - interface for the vacation_requests/leave_requests tables
type RequestRepository interface {
	// Insert persists one version row (version 1 on submit, version+1 on
	// supersession). The caller owns group/version bookkeeping.
	Insert(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, category Category, id string) (Request, error)
	// RetireCurrent flips is_current=false on the current row of a group.
	RetireCurrent(ctx context.Context, category Category, groupID string) error
	UpdateStatus(ctx context.Context, params UpdateStatusParams) error
	SetCalendarEventID(ctx context.Context, category Category, id, eventID string) error

	HasOverlap(ctx context.Context, q OverlapQuery) (bool, error)
	// SumApprovedVacationDays totals days_requested over the owner's current
	// approved vacation requests.
	SumApprovedVacationDays(ctx context.Context, ownerID string) (int, error)

	ListActiveByOwner(ctx context.Context, ownerID string) ([]Request, error)
	ListPendingForOwners(ctx context.Context, ownerIDs []string) ([]Request, error)
	ListApproved(ctx context.Context) ([]Request, error)

	// LockOwner serializes concurrent request mutations for one owner within
	// the enclosing transaction.
	LockOwner(ctx context.Context, ownerID string) error
}

// TypeRepository - interface for the absence_types table
type TypeRepository interface {
	Create(ctx context.Context, absenceType AbsenceType) (AbsenceType, error)
	GetByID(ctx context.Context, id string) (AbsenceType, error)
	List(ctx context.Context) ([]AbsenceType, error)
	Update(ctx context.Context, absenceType AbsenceType) error
	Delete(ctx context.Context, id string) error
}

// HolidayRepository - interface for the holidays table
type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
	List(ctx context.Context) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
