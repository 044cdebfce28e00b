package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrAdminPrivilegeRequired = errors.New("administrator privilege required")
	ErrAssignmentNotFound     = errors.New("approver assignment not found")
	ErrAssignmentExists       = errors.New("approver is already assigned to this user")
	ErrSelfAssignment         = errors.New("a user cannot approve their own requests")
	ErrApproverRoleRequired   = errors.New("assigned user cannot approve requests")
)
