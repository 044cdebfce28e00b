package absence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
)

// passthroughTx runs the unit of work without a real transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRequestRepo struct {
	rows   []absence.Request
	nextID int
}

func (f *fakeRequestRepo) Insert(ctx context.Context, request absence.Request) (absence.Request, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	request.RequestedAt = time.Now()
	f.rows = append(f.rows, request)
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, category absence.Category, id string) (absence.Request, error) {
	for _, r := range f.rows {
		if r.ID == id && r.Category == category {
			return r, nil
		}
	}
	return absence.Request{}, absence.ErrRequestNotFound
}

func (f *fakeRequestRepo) RetireCurrent(ctx context.Context, category absence.Category, groupID string) error {
	for i, r := range f.rows {
		if r.GroupID == groupID && r.Category == category && r.IsCurrent {
			f.rows[i].IsCurrent = false
			return nil
		}
	}
	return absence.ErrRequestNotFound
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, params absence.UpdateStatusParams) error {
	for i, r := range f.rows {
		if r.ID == params.ID && r.Category == params.Category && r.IsCurrent {
			f.rows[i].Status = params.Status
			f.rows[i].ApproverID = &params.ApproverID
			respondedAt := params.RespondedAt
			f.rows[i].RespondedAt = &respondedAt
			f.rows[i].DecisionComment = params.DecisionComment
			return nil
		}
	}
	return absence.ErrRequestNotFound
}

func (f *fakeRequestRepo) SetCalendarEventID(ctx context.Context, category absence.Category, id, eventID string) error {
	for i, r := range f.rows {
		if r.ID == id && r.Category == category {
			e := eventID
			f.rows[i].CalendarEventID = &e
			return nil
		}
	}
	return absence.ErrRequestNotFound
}

func (f *fakeRequestRepo) HasOverlap(ctx context.Context, q absence.OverlapQuery) (bool, error) {
	for _, r := range f.rows {
		if r.OwnerID != q.OwnerID || r.Category != q.Category || !r.Active() {
			continue
		}
		if q.ExcludeRequestID != nil && r.ID == *q.ExcludeRequestID {
			continue
		}
		if !r.StartDate.After(q.EndDate) && !r.EndDate.Before(q.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) SumApprovedVacationDays(ctx context.Context, ownerID string) (int, error) {
	total := 0
	for _, r := range f.rows {
		if r.OwnerID == ownerID && r.Category == absence.CategoryVacation &&
			r.IsCurrent && r.Status == absence.StatusApproved {
			total += r.DaysRequested
		}
	}
	return total, nil
}

func (f *fakeRequestRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]absence.Request, error) {
	var out []absence.Request
	for _, r := range f.rows {
		if r.OwnerID == ownerID && r.Active() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPendingForOwners(ctx context.Context, ownerIDs []string) ([]absence.Request, error) {
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = struct{}{}
	}
	var out []absence.Request
	for _, r := range f.rows {
		if _, ok := owners[r.OwnerID]; ok && r.IsCurrent && r.Status == absence.StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListApproved(ctx context.Context) ([]absence.Request, error) {
	var out []absence.Request
	for _, r := range f.rows {
		if r.IsCurrent && r.Status == absence.StatusApproved {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) LockOwner(ctx context.Context, ownerID string) error {
	return nil
}

// currentOf returns the is_current rows of a group, for invariant checks.
func (f *fakeRequestRepo) currentOf(groupID string) []absence.Request {
	var out []absence.Request
	for _, r := range f.rows {
		if r.GroupID == groupID && r.IsCurrent {
			out = append(out, r)
		}
	}
	return out
}

type fakeTypeRepo struct {
	types map[string]absence.AbsenceType
}

func (f *fakeTypeRepo) Create(ctx context.Context, t absence.AbsenceType) (absence.AbsenceType, error) {
	if t.ID == "" {
		t.ID = fmt.Sprintf("type-%d", len(f.types)+1)
	}
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeTypeRepo) GetByID(ctx context.Context, id string) (absence.AbsenceType, error) {
	t, ok := f.types[id]
	if !ok {
		return absence.AbsenceType{}, absence.ErrAbsenceTypeNotFound
	}
	return t, nil
}

func (f *fakeTypeRepo) List(ctx context.Context) ([]absence.AbsenceType, error) {
	var out []absence.AbsenceType
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, t absence.AbsenceType) error {
	if _, ok := f.types[t.ID]; !ok {
		return absence.ErrAbsenceTypeNotFound
	}
	f.types[t.ID] = t
	return nil
}

func (f *fakeTypeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.types[id]; !ok {
		return absence.ErrAbsenceTypeNotFound
	}
	delete(f.types, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateAllotment(ctx context.Context, id string, annualAllotment int) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.AnnualAllotment = annualAllotment
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

type fakeApproverRepo struct {
	users *fakeUserRepo
	edges []user.ApproverAssignment
}

func (f *fakeApproverRepo) Assign(ctx context.Context, subordinateID, approverID string) (user.ApproverAssignment, error) {
	edge := user.ApproverAssignment{
		ID:            fmt.Sprintf("edge-%d", len(f.edges)+1),
		SubordinateID: subordinateID,
		ApproverID:    approverID,
		AssignedAt:    time.Now(),
	}
	f.edges = append(f.edges, edge)
	return edge, nil
}

func (f *fakeApproverRepo) Remove(ctx context.Context, subordinateID, approverID string) error {
	for i, e := range f.edges {
		if e.SubordinateID == subordinateID && e.ApproverID == approverID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return user.ErrAssignmentNotFound
}

func (f *fakeApproverRepo) ApproversOf(ctx context.Context, subordinateID string) ([]user.User, error) {
	var out []user.User
	for _, e := range f.edges {
		if e.SubordinateID == subordinateID {
			if u, ok := f.users.users[e.ApproverID]; ok {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeApproverRepo) SubordinateIDsOf(ctx context.Context, approverID string) ([]string, error) {
	var out []string
	for _, e := range f.edges {
		if e.ApproverID == approverID {
			out = append(out, e.SubordinateID)
		}
	}
	return out, nil
}

func (f *fakeApproverRepo) IsApproverFor(ctx context.Context, approverID, subordinateID string) (bool, error) {
	for _, e := range f.edges {
		if e.ApproverID == approverID && e.SubordinateID == subordinateID {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	created []absence.Request
	decided []absence.Request
}

func (f *fakeNotifier) RequestCreated(approvers []user.User, owner user.User, request absence.Request) {
	f.created = append(f.created, request)
}

func (f *fakeNotifier) RequestDecided(owner user.User, request absence.Request) {
	f.decided = append(f.decided, request)
}

type fakeCalendar struct {
	created   []string // request IDs
	deleted   []string // event IDs
	nextEvent int
}

func (f *fakeCalendar) SyncCreate(ctx context.Context, request absence.Request, owner user.User) (string, error) {
	f.nextEvent++
	f.created = append(f.created, request.ID)
	return fmt.Sprintf("evt-%d", f.nextEvent), nil
}

func (f *fakeCalendar) SyncUpdate(ctx context.Context, eventID string, request absence.Request, owner user.User) error {
	return nil
}

func (f *fakeCalendar) SyncDelete(ctx context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fixture struct {
	svc       absence.Service
	requests  *fakeRequestRepo
	types     *fakeTypeRepo
	holidays  *stubHolidayRepo
	users     *fakeUserRepo
	approvers *fakeApproverRepo
	notifier  *fakeNotifier
	calendar  *fakeCalendar
}

func newFixture() *fixture {
	users := &fakeUserRepo{users: map[string]user.User{
		"owner": {ID: "owner", Name: "Olivia Owner", Email: "olivia@worktide.example",
			Role: user.RoleEmployee, AnnualAllotment: 25},
		"boss": {ID: "boss", Name: "Bob Boss", Email: "bob@worktide.example",
			Role: user.RoleApprover},
		"admin": {ID: "admin", Name: "Ada Admin", Email: "ada@worktide.example",
			Role: user.RoleAdmin, AnnualAllotment: 25},
		"peer": {ID: "peer", Name: "Pete Peer", Email: "pete@worktide.example",
			Role: user.RoleEmployee, AnnualAllotment: 25},
	}}

	f := &fixture{
		requests:  &fakeRequestRepo{},
		types:     &fakeTypeRepo{types: map[string]absence.AbsenceType{}},
		holidays:  &stubHolidayRepo{},
		users:     users,
		approvers: &fakeApproverRepo{users: users},
		notifier:  &fakeNotifier{},
		calendar:  &fakeCalendar{},
	}
	f.approvers.edges = append(f.approvers.edges, user.ApproverAssignment{
		ID: "edge-0", SubordinateID: "owner", ApproverID: "boss",
	})

	f.svc = NewAbsenceService(
		passthroughTx{},
		f.requests,
		f.types,
		f.holidays,
		f.users,
		f.approvers,
		NewWorkdayCalculator(f.holidays),
		f.notifier,
		f.calendar,
	)
	return f
}

func submitVacation(t *testing.T, f *fixture, actor, start, end string) absence.RequestResponse {
	t.Helper()
	resp, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:   actor,
		Category:  string(absence.CategoryVacation),
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitVacation(t *testing.T) {
	f := newFixture()

	// Mon Jan 2 through Fri Jan 6 2023: five working days.
	resp := submitVacation(t, f, "owner", "2023-01-02", "2023-01-06")

	assert.Equal(t, absence.StatusPending, resp.Status)
	assert.Equal(t, 5, resp.DaysRequested)
	assert.Equal(t, 1, resp.Version)
	assert.True(t, resp.IsCurrent)
	assert.NotEmpty(t, resp.GroupID)

	require.Len(t, f.notifier.created, 1)
	assert.Empty(t, f.calendar.created)
}

func TestSubmitInvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		StartDate: "2023-01-10",
		EndDate:   "2023-01-09",
	})
	assert.ErrorIs(t, err, absence.ErrInvalidDateRange)
	assert.Empty(t, f.requests.rows)
}

func TestSubmitOverlapOnBoundary(t *testing.T) {
	f := newFixture()
	submitVacation(t, f, "owner", "2023-01-02", "2023-01-06")

	// Inclusive bounds: a range starting on the existing end date conflicts.
	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		StartDate: "2023-01-06",
		EndDate:   "2023-01-09",
	})
	assert.ErrorIs(t, err, absence.ErrVacationOverlap)
	assert.Len(t, f.requests.rows, 1)
}

func TestSubmitLeaveOverlapsVacation(t *testing.T) {
	f := newFixture()
	f.types.types["t1"] = absence.AbsenceType{ID: "t1", Name: "Medical", DayPolicy: absence.DayPolicyCalendarDays}
	submitVacation(t, f, "owner", "2023-01-02", "2023-01-06")

	typeID := "t1"
	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:       "owner",
		Category:      string(absence.CategoryLeave),
		AbsenceTypeID: &typeID,
		StartDate:     "2023-01-04",
		EndDate:       "2023-01-05",
	})
	assert.ErrorIs(t, err, absence.ErrVacationOverlap)
}

func TestSubmitZeroChargeableDays(t *testing.T) {
	f := newFixture()
	f.types.types["lenient"] = absence.AbsenceType{
		ID: "lenient", Name: "Moving day", DayPolicy: absence.DayPolicyWorkingDays,
	}
	f.types.types["strict"] = absence.AbsenceType{
		ID: "strict", Name: "Training", DayPolicy: absence.DayPolicyWorkingDays,
		RequireChargeableDays: true,
	}

	// Sat Jan 7 to Sun Jan 8: no working days.
	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		StartDate: "2023-01-07",
		EndDate:   "2023-01-08",
	})
	assert.ErrorIs(t, err, absence.ErrNoChargeableDays)

	// A lenient leave type accepts a zero-day range.
	typeID := "lenient"
	resp, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:       "owner",
		Category:      string(absence.CategoryLeave),
		AbsenceTypeID: &typeID,
		StartDate:     "2023-01-07",
		EndDate:       "2023-01-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.DaysRequested)

	// A strict one does not.
	strictID := "strict"
	_, err = f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:       "peer",
		Category:      string(absence.CategoryLeave),
		AbsenceTypeID: &strictID,
		StartDate:     "2023-01-07",
		EndDate:       "2023-01-08",
	})
	assert.ErrorIs(t, err, absence.ErrNoChargeableDays)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.users.UpdateAllotment(context.Background(), "owner", 3))

	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		StartDate: "2023-01-02",
		EndDate:   "2023-01-06",
	})
	assert.ErrorIs(t, err, absence.ErrInsufficientBalance)
	assert.Empty(t, f.requests.rows, "a failed submission must persist nothing")
}

func TestSubmitOnBehalfByAdmin(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:      "admin",
		TargetUserID: "owner",
		Category:     string(absence.CategoryVacation),
		StartDate:    "2023-01-02",
		EndDate:      "2023-01-06",
	})
	require.NoError(t, err)

	assert.Equal(t, absence.StatusApproved, resp.Status)
	assert.Equal(t, "owner", resp.OwnerID)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, "admin", *resp.ApproverID)
	assert.NotNil(t, resp.RespondedAt)

	// Pre-approved requests go straight to the calendar.
	assert.Len(t, f.calendar.created, 1)
	assert.Len(t, f.notifier.decided, 1)
}

func TestSubmitOnBehalfStillChecksBalanceAndOverlap(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.users.UpdateAllotment(context.Background(), "owner", 3))

	// Admin bypasses approval, not validation.
	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:      "admin",
		TargetUserID: "owner",
		Category:     string(absence.CategoryVacation),
		StartDate:    "2023-01-02",
		EndDate:      "2023-01-06",
	})
	assert.ErrorIs(t, err, absence.ErrInsufficientBalance)
}

func TestSubmitOnBehalfRequiresAdmin(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:      "peer",
		TargetUserID: "owner",
		Category:     string(absence.CategoryVacation),
		StartDate:    "2023-01-02",
		EndDate:      "2023-01-06",
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestRespondApprove(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	resp, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionApprove),
	})
	require.NoError(t, err)

	assert.Equal(t, absence.StatusApproved, resp.Status)
	require.NotNil(t, resp.ApproverID)
	assert.Equal(t, "boss", *resp.ApproverID)
	assert.NotNil(t, resp.RespondedAt)

	assert.Len(t, f.calendar.created, 1)
	require.Len(t, f.notifier.decided, 1)

	// The stored row carries the calendar event reference.
	stored, err := f.requests.GetByID(context.Background(), absence.CategoryVacation, submitted.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CalendarEventID)
	assert.Equal(t, "evt-1", *stored.CalendarEventID)
}

func TestRespondReject(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	comment := "team is at capacity that week"
	resp, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionReject),
		Comment:   &comment,
	})
	require.NoError(t, err)

	assert.Equal(t, absence.StatusRejected, resp.Status)
	require.NotNil(t, resp.DecisionComment)
	assert.Equal(t, comment, *resp.DecisionComment)
	assert.Empty(t, f.calendar.created)
}

func TestRespondTwiceFailsIdempotently(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	respond := func(decision string) error {
		_, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
			ActorID:   "boss",
			Category:  string(absence.CategoryVacation),
			RequestID: submitted.ID,
			Decision:  decision,
		})
		return err
	}

	require.NoError(t, respond(string(absence.DecisionApprove)))
	err := respond(string(absence.DecisionReject))
	assert.ErrorIs(t, err, absence.ErrAlreadyProcessed)

	// The second call must not have flipped the status.
	stored, err := f.requests.GetByID(context.Background(), absence.CategoryVacation, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, absence.StatusApproved, stored.Status)
}

func TestRespondForbiddenForUnassignedApprover(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	// peer has no approver edge to owner.
	_, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "peer",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionApprove),
	})
	assert.ErrorIs(t, err, absence.ErrNotAssignedApprover)
}

func TestRespondAllowedForAdminWithoutAssignment(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	_, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "admin",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionApprove),
	})
	assert.NoError(t, err)
}

func TestCancelSupersedesVersion(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	resp, err := f.svc.Cancel(context.Background(), absence.CancelRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Note:      "changed my plans",
	})
	require.NoError(t, err)

	assert.Equal(t, submitted.GroupID, resp.GroupID)
	assert.Equal(t, 2, resp.Version)
	assert.True(t, resp.IsCurrent)
	assert.Equal(t, absence.StatusRejected, resp.Status)
	require.NotNil(t, resp.RectificationNote)
	assert.Equal(t, "changed my plans", *resp.RectificationNote)

	// Exactly one current row per group, and the original is retired intact.
	current := f.requests.currentOf(submitted.GroupID)
	require.Len(t, current, 1)
	assert.Equal(t, resp.ID, current[0].ID)

	original, err := f.requests.GetByID(context.Background(), absence.CategoryVacation, submitted.ID)
	require.NoError(t, err)
	assert.False(t, original.IsCurrent)
	assert.Equal(t, absence.StatusPending, original.Status)
}

func TestCancelFreesRangeForResubmission(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	_, err := f.svc.Cancel(context.Background(), absence.CancelRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
	})
	require.NoError(t, err)

	// The rejected superseding version no longer blocks the range.
	resubmitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")
	assert.Equal(t, absence.StatusPending, resubmitted.Status)
	assert.NotEqual(t, submitted.GroupID, resubmitted.GroupID)
}

func TestCancelProcessedRequestByOwnerFails(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	_, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionApprove),
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), absence.CancelRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
	})
	assert.ErrorIs(t, err, absence.ErrAlreadyProcessed)
}

func TestCancelApprovedByAdminRemovesCalendarEvent(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	_, err := f.svc.Respond(context.Background(), absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Decision:  string(absence.DecisionApprove),
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), absence.CancelRequestRequest{
		ActorID:   "admin",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
		Note:      "booked in error",
	})
	require.NoError(t, err)

	require.Len(t, f.calendar.deleted, 1)
	assert.Equal(t, "evt-1", f.calendar.deleted[0])
}

func TestCancelByNonOwnerFails(t *testing.T) {
	f := newFixture()
	submitted := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")

	_, err := f.svc.Cancel(context.Background(), absence.CancelRequestRequest{
		ActorID:   "peer",
		Category:  string(absence.CategoryVacation),
		RequestID: submitted.ID,
	})
	assert.ErrorIs(t, err, absence.ErrNotRequestOwner)
}

func TestAvailableBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	balance, err := f.svc.AvailableBalance(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 25, balance)

	approved := submitVacation(t, f, "owner", "2023-02-01", "2023-02-05")
	_, err = f.svc.Respond(ctx, absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: approved.ID,
		Decision:  string(absence.DecisionApprove),
	})
	require.NoError(t, err)

	rejected := submitVacation(t, f, "owner", "2023-03-06", "2023-03-10")
	_, err = f.svc.Respond(ctx, absence.RespondRequestRequest{
		ActorID:   "boss",
		Category:  string(absence.CategoryVacation),
		RequestID: rejected.ID,
		Decision:  string(absence.DecisionReject),
	})
	require.NoError(t, err)

	// Only the approved request draws down the allotment.
	balance, err = f.svc.AvailableBalance(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 25-approved.DaysRequested, balance)
}

func TestListPendingForApprover(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ownerReq := submitVacation(t, f, "owner", "2023-02-01", "2023-02-03")
	submitVacation(t, f, "peer", "2023-02-01", "2023-02-03")

	// boss only approves owner.
	pending, err := f.svc.ListPendingForApprover(ctx, "boss")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ownerReq.ID, pending[0].ID)

	// admin sees everything.
	pending, err = f.svc.ListPendingForApprover(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestListActiveExcludesSupersededVersions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := submitVacation(t, f, "owner", "2023-02-01", "2023-02-03")
	submitVacation(t, f, "owner", "2023-03-06", "2023-03-08")

	_, err := f.svc.Cancel(ctx, absence.CancelRequestRequest{
		ActorID:   "owner",
		Category:  string(absence.CategoryVacation),
		RequestID: first.ID,
	})
	require.NoError(t, err)

	active, err := f.svc.ListActive(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2023-03-06", active[0].StartDate)
}

func TestSubmitLeaveRequiresJustification(t *testing.T) {
	f := newFixture()
	f.types.types["sick"] = absence.AbsenceType{
		ID: "sick", Name: "Sick leave", DayPolicy: absence.DayPolicyWorkingDays,
		RequiresJustification: true,
	}

	typeID := "sick"
	_, err := f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:       "owner",
		Category:      string(absence.CategoryLeave),
		AbsenceTypeID: &typeID,
		StartDate:     "2023-02-01",
		EndDate:       "2023-02-02",
	})
	require.Error(t, err)

	_, err = f.svc.Submit(context.Background(), absence.SubmitRequestRequest{
		ActorID:       "owner",
		Category:      string(absence.CategoryLeave),
		AbsenceTypeID: &typeID,
		StartDate:     "2023-02-01",
		EndDate:       "2023-02-02",
		Reason:        "flu, doctor's note attached",
	})
	assert.NoError(t, err)
}
