package directory

import (
	"context"
	"fmt"

	"github.com/worktide-hr/absence-backend-go/internal/domain/user"
)

type DirectoryServiceImpl struct {
	userRepository     user.Repository
	approverRepository user.ApproverRepository
}

func NewDirectoryService(userRepository user.Repository, approverRepository user.ApproverRepository) user.DirectoryService {
	return &DirectoryServiceImpl{
		userRepository:     userRepository,
		approverRepository: approverRepository,
	}
}

// GetUser implements user.DirectoryService.
func (s *DirectoryServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToUserResponse(u), nil
}

// ListUsers implements user.DirectoryService.
func (s *DirectoryServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToUserResponse(u))
	}
	return responses, nil
}

// UpdateAllotment implements user.DirectoryService.
func (s *DirectoryServiceImpl) UpdateAllotment(ctx context.Context, req user.UpdateAllotmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.userRepository.UpdateAllotment(ctx, req.UserID, req.AnnualAllotment)
}

// AssignApprover implements user.DirectoryService.
func (s *DirectoryServiceImpl) AssignApprover(ctx context.Context, req user.AssignApproverRequest) (user.ApproverAssignment, error) {
	if err := req.Validate(); err != nil {
		return user.ApproverAssignment{}, err
	}
	if req.SubordinateID == req.ApproverID {
		return user.ApproverAssignment{}, user.ErrSelfAssignment
	}

	approver, err := s.userRepository.GetByID(ctx, req.ApproverID)
	if err != nil {
		return user.ApproverAssignment{}, fmt.Errorf("failed to get approver: %w", err)
	}
	if !approver.CanApprove() {
		return user.ApproverAssignment{}, user.ErrApproverRoleRequired
	}

	return s.approverRepository.Assign(ctx, req.SubordinateID, req.ApproverID)
}

// RemoveApprover implements user.DirectoryService.
func (s *DirectoryServiceImpl) RemoveApprover(ctx context.Context, subordinateID, approverID string) error {
	return s.approverRepository.Remove(ctx, subordinateID, approverID)
}

// ApproversOf implements user.DirectoryService.
func (s *DirectoryServiceImpl) ApproversOf(ctx context.Context, subordinateID string) ([]user.UserResponse, error) {
	approvers, err := s.approverRepository.ApproversOf(ctx, subordinateID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(approvers))
	for _, u := range approvers {
		responses = append(responses, user.ToUserResponse(u))
	}
	return responses, nil
}
