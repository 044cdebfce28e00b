package absence

import (
	"time"
)

// Category distinguishes the two request kinds. Vacation draws down the
// owner's annual allotment; Leave is charged against an AbsenceType instead.
type Category string

const (
	CategoryVacation Category = "vacation"
	CategoryLeave    Category = "leave"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DayPolicy controls how chargeable days are counted for a range.
type DayPolicy string

const (
	DayPolicyCalendarDays DayPolicy = "calendar_days"
	DayPolicyWorkingDays  DayPolicy = "working_days"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Request entity. One row per version; within a GroupID exactly one row has
// IsCurrent=true. Historical versions are never mutated.
type Request struct {
	ID string

	// Versioning
	GroupID           string
	Version           int
	IsCurrent         bool
	RectificationNote *string

	OwnerID  string
	Category Category

	// Leave only; nullable for legacy rows
	AbsenceTypeID *string

	StartDate     time.Time
	EndDate       time.Time
	DaysRequested int
	Reason        string

	Status          Status
	RequestedAt     time.Time
	RespondedAt     *time.Time
	ApproverID      *string
	DecisionComment *string

	CalendarEventID *string

	// Relationships (for responses)
	AbsenceTypeName *string
	OwnerName       *string
}

// Active reports whether this version still occupies its date range for
// overlap purposes.
func (r Request) Active() bool {
	return r.IsCurrent && (r.Status == StatusPending || r.Status == StatusApproved)
}

// AbsenceType entity - admin-managed configuration for Leave requests
type AbsenceType struct {
	ID          string
	Name        string
	Description *string

	MaxDays   int // advisory cap, not enforced yet
	DayPolicy DayPolicy

	RequiresJustification bool
	// RequireChargeableDays blocks leave requests whose range yields zero
	// chargeable days. Off by default: natural-day leave types may span only
	// non-working days.
	RequireChargeableDays bool
	// DeductsAllotment anticipates unifying vacation accounting here; the
	// balance tracker ignores it for now.
	DeductsAllotment bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday is a single non-working calendar date, unique per date.
type Holiday struct {
	ID          string
	Date        time.Time
	Description string
}

// ScheduleEvent is one entry of the team schedule feed (approved absences
// plus holidays).
type ScheduleEvent struct {
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Kind      string    `json:"kind"` // 'vacation', 'leave' or 'holiday'
	OwnerName string    `json:"owner_name,omitempty"`
}
