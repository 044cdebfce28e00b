package notification

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/email"
)

// NotificationService delivers request emails through a bounded worker pool.
// Enqueueing detaches from the caller: a full queue drops the notification
// with a log line rather than blocking a state transition.
type NotificationService struct {
	emailService   email.Service
	userRepository user.Repository
	queue          chan func()
	stopOnce       sync.Once
	wg             sync.WaitGroup
}

func NewNotificationService(emailService email.Service, userRepository user.Repository, workers, queueSize int) *NotificationService {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}

	s := &NotificationService{
		emailService:   emailService,
		userRepository: userRepository,
		queue:          make(chan func(), queueSize),
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}

	return s
}

func (s *NotificationService) worker() {
	defer s.wg.Done()
	for job := range s.queue {
		job()
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
func (s *NotificationService) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *NotificationService) enqueue(job func()) {
	select {
	case s.queue <- job:
	default:
		slog.Warn("notification queue full, dropping notification")
	}
}

const dateLayout = "2006-01-02"

func categoryLabel(r absence.Request) string {
	if r.Category == absence.CategoryLeave {
		if r.AbsenceTypeName != nil {
			return *r.AbsenceTypeName
		}
		return "leave"
	}
	return "vacation"
}

// RequestCreated implements absence.Notifier.
func (s *NotificationService) RequestCreated(approvers []user.User, owner user.User, request absence.Request) {
	if len(approvers) == 0 {
		slog.Warn("no approvers assigned, skipping created notification", "owner_id", owner.ID)
		return
	}

	recipients := make([]string, 0, len(approvers))
	names := make([]string, 0, len(approvers))
	for _, a := range approvers {
		recipients = append(recipients, a.Email)
		names = append(names, a.Name)
	}

	data := email.RequestCreatedData{
		RequesterName: owner.Name,
		CategoryLabel: categoryLabel(request),
		StartDate:     request.StartDate.Format(dateLayout),
		EndDate:       request.EndDate.Format(dateLayout),
		Days:          request.DaysRequested,
		Reason:        request.Reason,
		ApproverNames: strings.Join(names, ", "),
	}

	s.enqueue(func() {
		if err := s.emailService.SendRequestCreated(recipients, data); err != nil {
			slog.Error("failed to deliver created notification",
				"request_id", request.ID, "error", err)
		}
	})
}

// RequestDecided implements absence.Notifier.
func (s *NotificationService) RequestDecided(owner user.User, request absence.Request) {
	statusLabel := "approved"
	if request.Status == absence.StatusRejected {
		statusLabel = "rejected"
	}

	comment := ""
	if request.DecisionComment != nil {
		comment = *request.DecisionComment
	}

	data := email.RequestDecidedData{
		OwnerName:     owner.Name,
		CategoryLabel: categoryLabel(request),
		StartDate:     request.StartDate.Format(dateLayout),
		EndDate:       request.EndDate.Format(dateLayout),
		Days:          request.DaysRequested,
		StatusLabel:   statusLabel,
		Comment:       comment,
	}

	approverID := request.ApproverID

	s.enqueue(func() {
		if approverID != nil {
			if approver, err := s.userRepository.GetByID(context.Background(), *approverID); err == nil {
				data.ApproverName = approver.Name
			}
		}
		if err := s.emailService.SendRequestDecided(owner.Email, data); err != nil {
			slog.Error("failed to deliver decided notification",
				"request_id", request.ID, "error", err)
		}
	})
}
