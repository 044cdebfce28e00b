package absence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/database"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/validator"
)

type AbsenceServiceImpl struct {
	tx                 database.TxManager
	requestRepository  absence.RequestRepository
	typeRepository     absence.TypeRepository
	holidayRepository  absence.HolidayRepository
	userRepository     user.Repository
	approverRepository user.ApproverRepository
	workdays           *WorkdayCalculator
	notifier           absence.Notifier
	calendar           absence.CalendarSync
}

func NewAbsenceService(
	tx database.TxManager,
	requestRepository absence.RequestRepository,
	typeRepository absence.TypeRepository,
	holidayRepository absence.HolidayRepository,
	userRepository user.Repository,
	approverRepository user.ApproverRepository,
	workdays *WorkdayCalculator,
	notifier absence.Notifier,
	calendar absence.CalendarSync,
) absence.Service {
	return &AbsenceServiceImpl{
		tx:                 tx,
		requestRepository:  requestRepository,
		typeRepository:     typeRepository,
		holidayRepository:  holidayRepository,
		userRepository:     userRepository,
		approverRepository: approverRepository,
		workdays:           workdays,
		notifier:           notifier,
		calendar:           calendar,
	}
}

// Submit implements absence.Service.
func (s *AbsenceServiceImpl) Submit(ctx context.Context, req absence.SubmitRequestRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if endDate.Before(startDate) {
		return absence.RequestResponse{}, absence.ErrInvalidDateRange
	}

	actor, err := s.userRepository.GetByID(ctx, req.ActorID)
	if err != nil {
		return absence.RequestResponse{}, fmt.Errorf("failed to get actor: %w", err)
	}

	// An admin may file on behalf of another user; the request is then
	// created pre-approved with the admin recorded as approver.
	target := actor
	onBehalf := false
	if req.TargetUserID != "" && req.TargetUserID != actor.ID {
		if !actor.IsAdmin() {
			return absence.RequestResponse{}, user.ErrAdminPrivilegeRequired
		}
		target, err = s.userRepository.GetByID(ctx, req.TargetUserID)
		if err != nil {
			return absence.RequestResponse{}, err
		}
		onBehalf = true
	}

	category := absence.Category(req.Category)

	// Vacation always counts working days; leave follows its type's policy.
	policy := absence.DayPolicyWorkingDays
	var absenceType absence.AbsenceType
	if category == absence.CategoryLeave {
		if req.AbsenceTypeID == nil {
			return absence.RequestResponse{}, absence.ErrAbsenceTypeRequired
		}
		absenceType, err = s.typeRepository.GetByID(ctx, *req.AbsenceTypeID)
		if err != nil {
			return absence.RequestResponse{}, err
		}
		policy = absenceType.DayPolicy

		if absenceType.RequiresJustification && validator.IsEmpty(req.Reason) {
			return absence.RequestResponse{}, validator.ValidationErrors{{
				Field:   "reason",
				Message: fmt.Sprintf("a justification is required for type %q", absenceType.Name),
			}}
		}
	}

	days, err := s.workdays.CountDays(ctx, startDate, endDate, policy)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if days <= 0 {
		if category == absence.CategoryVacation || absenceType.RequireChargeableDays {
			return absence.RequestResponse{}, absence.ErrNoChargeableDays
		}
	}

	var created absence.Request
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Serialize against concurrent submissions for the same owner so the
		// overlap and balance checks cannot pass on a stale snapshot.
		if err := s.requestRepository.LockOwner(ctx, target.ID); err != nil {
			return err
		}

		if err := s.checkOverlap(ctx, target.ID, startDate, endDate, nil); err != nil {
			return err
		}

		if category == absence.CategoryVacation {
			used, err := s.requestRepository.SumApprovedVacationDays(ctx, target.ID)
			if err != nil {
				return err
			}
			if days > target.AnnualAllotment-used {
				return absence.ErrInsufficientBalance
			}
		}

		request := absence.Request{
			GroupID:       uuid.NewString(),
			Version:       1,
			IsCurrent:     true,
			OwnerID:       target.ID,
			Category:      category,
			AbsenceTypeID: req.AbsenceTypeID,
			StartDate:     startDate,
			EndDate:       endDate,
			DaysRequested: days,
			Reason:        req.Reason,
			Status:        absence.StatusPending,
		}
		if onBehalf {
			now := time.Now()
			request.Status = absence.StatusApproved
			request.ApproverID = &actor.ID
			request.RespondedAt = &now
		}

		created, err = s.requestRepository.Insert(ctx, request)
		return err
	})
	if err != nil {
		return absence.RequestResponse{}, err
	}
	created.OwnerName = &target.Name
	if category == absence.CategoryLeave {
		created.AbsenceTypeName = &absenceType.Name
	}

	if created.Status == absence.StatusApproved {
		s.syncCalendarCreate(ctx, &created, target)
		s.notifier.RequestDecided(target, created)
	} else {
		approvers, err := s.approverRepository.ApproversOf(ctx, target.ID)
		if err != nil {
			slog.Error("failed to resolve approvers for notification",
				"owner_id", target.ID, "error", err)
		} else {
			s.notifier.RequestCreated(approvers, target, created)
		}
	}

	return absence.ToRequestResponse(created), nil
}

// Cancel implements absence.Service. Cancellation supersedes: the current row
// is retired and a version+1 row with status Rejected and a rectification
// note becomes the new current version.
func (s *AbsenceServiceImpl) Cancel(ctx context.Context, req absence.CancelRequestRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}

	actor, err := s.userRepository.GetByID(ctx, req.ActorID)
	if err != nil {
		return absence.RequestResponse{}, fmt.Errorf("failed to get actor: %w", err)
	}

	category := absence.Category(req.Category)

	var superseded, replacement absence.Request
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.requestRepository.GetByID(ctx, category, req.RequestID)
		if err != nil {
			return err
		}

		if err := s.requestRepository.LockOwner(ctx, current.OwnerID); err != nil {
			return err
		}
		// Re-read under the lock; a concurrent cancel may have retired it.
		current, err = s.requestRepository.GetByID(ctx, category, req.RequestID)
		if err != nil {
			return err
		}

		if !current.IsCurrent {
			return absence.ErrNotCurrentVersion
		}
		if current.OwnerID != actor.ID && !actor.IsAdmin() {
			return absence.ErrNotRequestOwner
		}
		// Owners may only withdraw pending requests; admins can also unwind
		// already-approved ones.
		if current.Status != absence.StatusPending && !actor.IsAdmin() {
			return absence.ErrAlreadyProcessed
		}

		if err := s.requestRepository.RetireCurrent(ctx, category, current.GroupID); err != nil {
			return err
		}

		note := req.Note
		if note == "" {
			note = "Request cancelled"
		}
		now := time.Now()

		next := current
		next.ID = ""
		next.Version = current.Version + 1
		next.IsCurrent = true
		next.Status = absence.StatusRejected
		next.RectificationNote = &note
		next.ApproverID = &actor.ID
		next.RespondedAt = &now
		next.DecisionComment = nil
		next.CalendarEventID = nil

		replacement, err = s.requestRepository.Insert(ctx, next)
		if err != nil {
			return err
		}

		superseded = current
		return nil
	})
	if err != nil {
		return absence.RequestResponse{}, err
	}

	// An approved request already mirrored to the external calendar must have
	// its event removed when the cancellation lands.
	if superseded.Status == absence.StatusApproved && superseded.CalendarEventID != nil {
		if err := s.calendar.SyncDelete(ctx, *superseded.CalendarEventID); err != nil {
			slog.Warn("failed to delete calendar event for cancelled request",
				"request_id", superseded.ID, "event_id", *superseded.CalendarEventID, "error", err)
		}
	}

	return absence.ToRequestResponse(replacement), nil
}

// Respond implements absence.Service. A decision updates the current row in
// place: it records a new fact without rewriting history.
func (s *AbsenceServiceImpl) Respond(ctx context.Context, req absence.RespondRequestRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}

	actor, err := s.userRepository.GetByID(ctx, req.ActorID)
	if err != nil {
		return absence.RequestResponse{}, fmt.Errorf("failed to get actor: %w", err)
	}

	category := absence.Category(req.Category)

	var updated absence.Request
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.requestRepository.GetByID(ctx, category, req.RequestID)
		if err != nil {
			return err
		}

		if err := s.requestRepository.LockOwner(ctx, current.OwnerID); err != nil {
			return err
		}
		current, err = s.requestRepository.GetByID(ctx, category, req.RequestID)
		if err != nil {
			return err
		}

		if !current.IsCurrent || current.Status != absence.StatusPending {
			return absence.ErrAlreadyProcessed
		}

		if !actor.IsAdmin() {
			assigned, err := s.approverRepository.IsApproverFor(ctx, actor.ID, current.OwnerID)
			if err != nil {
				return err
			}
			if !assigned {
				return absence.ErrNotAssignedApprover
			}
		}

		status := absence.StatusApproved
		if req.Decision == string(absence.DecisionReject) {
			status = absence.StatusRejected
		}
		now := time.Now()

		err = s.requestRepository.UpdateStatus(ctx, absence.UpdateStatusParams{
			ID:              current.ID,
			Category:        category,
			Status:          status,
			ApproverID:      actor.ID,
			RespondedAt:     now,
			DecisionComment: req.Comment,
		})
		if err != nil {
			return err
		}

		current.Status = status
		current.ApproverID = &actor.ID
		current.RespondedAt = &now
		current.DecisionComment = req.Comment
		updated = current
		return nil
	})
	if err != nil {
		return absence.RequestResponse{}, err
	}

	owner, err := s.userRepository.GetByID(ctx, updated.OwnerID)
	if err != nil {
		slog.Error("failed to get owner after decision", "owner_id", updated.OwnerID, "error", err)
		return absence.ToRequestResponse(updated), nil
	}

	if updated.Status == absence.StatusApproved {
		s.syncCalendarCreate(ctx, &updated, owner)
	}
	s.notifier.RequestDecided(owner, updated)

	return absence.ToRequestResponse(updated), nil
}

// checkOverlap scans both categories so a vacation cannot shadow a leave and
// vice versa. The vacation table is checked first; each yields its own error.
func (s *AbsenceServiceImpl) checkOverlap(ctx context.Context, ownerID string, start, end time.Time, excludeID *string) error {
	overlap, err := s.requestRepository.HasOverlap(ctx, absence.OverlapQuery{
		OwnerID:          ownerID,
		Category:         absence.CategoryVacation,
		StartDate:        start,
		EndDate:          end,
		ExcludeRequestID: excludeID,
	})
	if err != nil {
		return err
	}
	if overlap {
		return absence.ErrVacationOverlap
	}

	overlap, err = s.requestRepository.HasOverlap(ctx, absence.OverlapQuery{
		OwnerID:          ownerID,
		Category:         absence.CategoryLeave,
		StartDate:        start,
		EndDate:          end,
		ExcludeRequestID: excludeID,
	})
	if err != nil {
		return err
	}
	if overlap {
		return absence.ErrLeaveOverlap
	}

	return nil
}

// syncCalendarCreate mirrors an approved request to the external calendar.
// Best effort: failures are logged, never propagated.
func (s *AbsenceServiceImpl) syncCalendarCreate(ctx context.Context, request *absence.Request, owner user.User) {
	eventID, err := s.calendar.SyncCreate(ctx, *request, owner)
	if err != nil {
		slog.Warn("calendar sync failed for approved request",
			"request_id", request.ID, "error", err)
		return
	}
	if eventID == "" {
		return
	}

	if err := s.requestRepository.SetCalendarEventID(ctx, request.Category, request.ID, eventID); err != nil {
		slog.Warn("failed to store calendar event id",
			"request_id", request.ID, "event_id", eventID, "error", err)
		return
	}
	request.CalendarEventID = &eventID
}

// GetRequest implements absence.Service.
func (s *AbsenceServiceImpl) GetRequest(ctx context.Context, category, requestID string) (absence.RequestResponse, error) {
	if category != string(absence.CategoryVacation) && category != string(absence.CategoryLeave) {
		return absence.RequestResponse{}, validator.ValidationErrors{{
			Field:   "category",
			Message: "category must be 'vacation' or 'leave'",
		}}
	}

	request, err := s.requestRepository.GetByID(ctx, absence.Category(category), requestID)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	return absence.ToRequestResponse(request), nil
}

// ListActive implements absence.Service.
func (s *AbsenceServiceImpl) ListActive(ctx context.Context, ownerID string) ([]absence.RequestResponse, error) {
	requests, err := s.requestRepository.ListActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]absence.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, absence.ToRequestResponse(r))
	}
	return responses, nil
}

// ListPendingForApprover implements absence.Service. Admins see every pending
// request; approvers only those of their assigned subordinates.
func (s *AbsenceServiceImpl) ListPendingForApprover(ctx context.Context, approverID string) ([]absence.RequestResponse, error) {
	actor, err := s.userRepository.GetByID(ctx, approverID)
	if err != nil {
		return nil, err
	}

	var ownerIDs []string
	if actor.IsAdmin() {
		users, err := s.userRepository.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			ownerIDs = append(ownerIDs, u.ID)
		}
	} else {
		ownerIDs, err = s.approverRepository.SubordinateIDsOf(ctx, approverID)
		if err != nil {
			return nil, err
		}
	}

	requests, err := s.requestRepository.ListPendingForOwners(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]absence.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, absence.ToRequestResponse(r))
	}
	return responses, nil
}

// AvailableBalance implements absence.Service. The value may go negative when
// an admin force-approves past the allotment; callers get the true figure.
func (s *AbsenceServiceImpl) AvailableBalance(ctx context.Context, userID string) (int, error) {
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	used, err := s.requestRepository.SumApprovedVacationDays(ctx, userID)
	if err != nil {
		return 0, err
	}

	return u.AnnualAllotment - used, nil
}

// CountDays implements absence.Service. Precounts working days for a range so
// the client can show the charge before submitting.
func (s *AbsenceServiceImpl) CountDays(ctx context.Context, req absence.CountDaysRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	if endDate.Before(startDate) {
		return 0, absence.ErrInvalidDateRange
	}

	return s.workdays.CountDays(ctx, startDate, endDate, absence.DayPolicyWorkingDays)
}

// Schedule implements absence.Service. Merges approved absences and holidays
// into one feed for the team calendar view.
func (s *AbsenceServiceImpl) Schedule(ctx context.Context) ([]absence.ScheduleEvent, error) {
	requests, err := s.requestRepository.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]absence.ScheduleEvent, 0, len(requests))
	for _, r := range requests {
		title := "Vacation"
		if r.Category == absence.CategoryLeave {
			title = "Leave"
			if r.AbsenceTypeName != nil {
				title = *r.AbsenceTypeName
			}
		}
		ownerName := ""
		if r.OwnerName != nil {
			ownerName = *r.OwnerName
		}
		events = append(events, absence.ScheduleEvent{
			Title:     title,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			Kind:      string(r.Category),
			OwnerName: ownerName,
		})
	}

	holidays, err := s.holidayRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range holidays {
		events = append(events, absence.ScheduleEvent{
			Title:     h.Description,
			StartDate: h.Date,
			EndDate:   h.Date,
			Kind:      "holiday",
		})
	}

	return events, nil
}

// CreateAbsenceType implements absence.Service.
func (s *AbsenceServiceImpl) CreateAbsenceType(ctx context.Context, req absence.CreateAbsenceTypeRequest) (absence.AbsenceType, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceType{}, err
	}

	return s.typeRepository.Create(ctx, absence.AbsenceType{
		Name:                  req.Name,
		Description:           req.Description,
		MaxDays:               req.MaxDays,
		DayPolicy:             absence.DayPolicy(req.DayPolicy),
		RequiresJustification: req.RequiresJustification,
		RequireChargeableDays: req.RequireChargeableDays,
		DeductsAllotment:      req.DeductsAllotment,
	})
}

// UpdateAbsenceType implements absence.Service. Partial update: nil fields
// keep their stored values.
func (s *AbsenceServiceImpl) UpdateAbsenceType(ctx context.Context, req absence.UpdateAbsenceTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := s.typeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = req.Description
	}
	if req.MaxDays != nil {
		current.MaxDays = *req.MaxDays
	}
	if req.DayPolicy != nil {
		current.DayPolicy = absence.DayPolicy(*req.DayPolicy)
	}
	if req.RequiresJustification != nil {
		current.RequiresJustification = *req.RequiresJustification
	}
	if req.RequireChargeableDays != nil {
		current.RequireChargeableDays = *req.RequireChargeableDays
	}
	if req.DeductsAllotment != nil {
		current.DeductsAllotment = *req.DeductsAllotment
	}

	return s.typeRepository.Update(ctx, current)
}

// ListAbsenceTypes implements absence.Service.
func (s *AbsenceServiceImpl) ListAbsenceTypes(ctx context.Context) ([]absence.AbsenceType, error) {
	return s.typeRepository.List(ctx)
}

// DeleteAbsenceType implements absence.Service.
func (s *AbsenceServiceImpl) DeleteAbsenceType(ctx context.Context, id string) error {
	return s.typeRepository.Delete(ctx, id)
}

// CreateHoliday implements absence.Service.
func (s *AbsenceServiceImpl) CreateHoliday(ctx context.Context, req absence.CreateHolidayRequest) (absence.Holiday, error) {
	if err := req.Validate(); err != nil {
		return absence.Holiday{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	return s.holidayRepository.Create(ctx, absence.Holiday{
		Date:        date,
		Description: req.Description,
	})
}

// ListHolidays implements absence.Service.
func (s *AbsenceServiceImpl) ListHolidays(ctx context.Context) ([]absence.Holiday, error) {
	return s.holidayRepository.List(ctx)
}

// DeleteHoliday implements absence.Service.
func (s *AbsenceServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepository.Delete(ctx, id)
}
