package absence

import (
	"context"

	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
)

type Service interface {
	// Lifecycle
	Submit(ctx context.Context, req SubmitRequestRequest) (RequestResponse, error)
	Cancel(ctx context.Context, req CancelRequestRequest) (RequestResponse, error)
	Respond(ctx context.Context, req RespondRequestRequest) (RequestResponse, error)

	// Reads
	GetRequest(ctx context.Context, category, requestID string) (RequestResponse, error)
	ListActive(ctx context.Context, ownerID string) ([]RequestResponse, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]RequestResponse, error)
	AvailableBalance(ctx context.Context, userID string) (int, error)
	CountDays(ctx context.Context, req CountDaysRequest) (int, error)
	Schedule(ctx context.Context) ([]ScheduleEvent, error)

	// Type administration
	CreateAbsenceType(ctx context.Context, req CreateAbsenceTypeRequest) (AbsenceType, error)
	UpdateAbsenceType(ctx context.Context, req UpdateAbsenceTypeRequest) error
	ListAbsenceTypes(ctx context.Context) ([]AbsenceType, error)
	DeleteAbsenceType(ctx context.Context, id string) error

	// Holiday administration
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	ListHolidays(ctx context.Context) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
}

// Notifier is the narrow enqueue-and-detach contract the lifecycle manager
// uses for outbound notifications. Delivery is best-effort and must never
// block a state transition.
type Notifier interface {
	RequestCreated(approvers []user.User, owner user.User, request Request)
	RequestDecided(owner user.User, request Request)
}

// CalendarSync mirrors an approved request into an external calendar.
// Failures are soft: the caller logs and carries on.
type CalendarSync interface {
	SyncCreate(ctx context.Context, request Request, owner user.User) (eventID string, err error)
	SyncUpdate(ctx context.Context, eventID string, request Request, owner user.User) error
	SyncDelete(ctx context.Context, eventID string) error
}
