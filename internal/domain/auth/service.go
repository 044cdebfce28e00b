package auth

import "context"

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Refresh exchanges a valid refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
