package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktide-hr/absence-backend-go/internal/domain/absence"
	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
	"github.com/worktide-hr/absence-backend-go/internal/pkg/email"
)

type recordingEmailService struct {
	mu      sync.Mutex
	created []email.RequestCreatedData
	decided []email.RequestDecidedData
	to      [][]string
}

func (r *recordingEmailService) SendRequestCreated(to []string, data email.RequestCreatedData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, data)
	r.to = append(r.to, to)
	return nil
}

func (r *recordingEmailService) SendRequestDecided(to string, data email.RequestDecidedData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decided = append(r.decided, data)
	r.to = append(r.to, []string{to})
	return nil
}

type stubUserRepo struct {
	users map[string]user.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (s *stubUserRepo) UpdateAllotment(ctx context.Context, id string, annualAllotment int) error {
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func testRequest() absence.Request {
	return absence.Request{
		ID:            "req-1",
		Category:      absence.CategoryVacation,
		OwnerID:       "owner",
		StartDate:     time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2023, time.February, 3, 0, 0, 0, 0, time.UTC),
		DaysRequested: 3,
		Status:        absence.StatusPending,
	}
}

func TestRequestCreatedDeliversToAllApprovers(t *testing.T) {
	recorder := &recordingEmailService{}
	svc := NewNotificationService(recorder, &stubUserRepo{users: map[string]user.User{}}, 2, 8)

	owner := user.User{ID: "owner", Name: "Olivia Owner", Email: "olivia@worktide.example"}
	approvers := []user.User{
		{ID: "a1", Name: "Bob Boss", Email: "bob@worktide.example"},
		{ID: "a2", Name: "Carla Chief", Email: "carla@worktide.example"},
	}

	svc.RequestCreated(approvers, owner, testRequest())
	svc.Stop()

	require.Len(t, recorder.created, 1)
	assert.Equal(t, "Olivia Owner", recorder.created[0].RequesterName)
	assert.Equal(t, "vacation", recorder.created[0].CategoryLabel)
	assert.Equal(t, "Bob Boss, Carla Chief", recorder.created[0].ApproverNames)
	assert.Equal(t, []string{"bob@worktide.example", "carla@worktide.example"}, recorder.to[0])
}

func TestRequestCreatedSkipsWithoutApprovers(t *testing.T) {
	recorder := &recordingEmailService{}
	svc := NewNotificationService(recorder, &stubUserRepo{users: map[string]user.User{}}, 1, 8)

	svc.RequestCreated(nil, user.User{ID: "owner"}, testRequest())
	svc.Stop()

	assert.Empty(t, recorder.created)
}

func TestRequestDecidedResolvesApproverName(t *testing.T) {
	recorder := &recordingEmailService{}
	users := &stubUserRepo{users: map[string]user.User{
		"boss": {ID: "boss", Name: "Bob Boss", Email: "bob@worktide.example"},
	}}
	svc := NewNotificationService(recorder, users, 1, 8)

	approverID := "boss"
	comment := "enjoy"
	request := testRequest()
	request.Status = absence.StatusApproved
	request.ApproverID = &approverID
	request.DecisionComment = &comment

	owner := user.User{ID: "owner", Name: "Olivia Owner", Email: "olivia@worktide.example"}
	svc.RequestDecided(owner, request)
	svc.Stop()

	require.Len(t, recorder.decided, 1)
	assert.Equal(t, "approved", recorder.decided[0].StatusLabel)
	assert.Equal(t, "Bob Boss", recorder.decided[0].ApproverName)
	assert.Equal(t, "enjoy", recorder.decided[0].Comment)
	assert.Equal(t, []string{"olivia@worktide.example"}, recorder.to[0])
}

func TestLeaveRequestsUseTypeNameAsLabel(t *testing.T) {
	recorder := &recordingEmailService{}
	svc := NewNotificationService(recorder, &stubUserRepo{users: map[string]user.User{}}, 1, 8)

	typeName := "Medical leave"
	request := testRequest()
	request.Category = absence.CategoryLeave
	request.AbsenceTypeName = &typeName
	request.Status = absence.StatusRejected

	svc.RequestDecided(user.User{ID: "owner", Email: "o@x.example"}, request)
	svc.Stop()

	require.Len(t, recorder.decided, 1)
	assert.Equal(t, "Medical leave", recorder.decided[0].CategoryLabel)
	assert.Equal(t, "rejected", recorder.decided[0].StatusLabel)
}
