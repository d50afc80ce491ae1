package service

import (
	"context"

	"github.com/stocktree/stocktree-auth/models"
)

// AuthService is the credential and session authority: account registration
// gated by emailed one-time codes, login with token issuance, refresh-token
// exchange, and password lifecycle.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.OTPResult, error)
	Login(ctx context.Context, req models.LoginRequest, tracing models.Tracing) (models.SessionResult, error)
	Logout(ctx context.Context, userID int64) error

	RefreshAccessToken(ctx context.Context, refreshToken string, tracing models.Tracing) (models.SessionResult, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.Profile, error)
	ResendOTP(ctx context.Context, req models.ResendOTPRequest) (models.OTPResult, error)

	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (models.OTPResult, error)
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error

	GetMe(ctx context.Context, userID int64) (models.Profile, error)
}
