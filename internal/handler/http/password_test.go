package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree/stocktree-auth/internal/service"
	"github.com/stocktree/stocktree-auth/models"
)

func TestForgotPassword_Success(t *testing.T) {
	auth := &mockAuthService{
		forgotPasswordFn: func(_ context.Context, req models.ForgotPasswordRequest) (models.OTPResult, error) {
			assert.Equal(t, "john@example.com", req.Email)
			return models.OTPResult{OTPSignature: "reset-challenge"}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ForgotPasswordRequest{Email: "john@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	auth := &mockAuthService{
		forgotPasswordFn: func(_ context.Context, _ models.ForgotPasswordRequest) (models.OTPResult, error) {
			return models.OTPResult{}, service.ErrUserNotFound
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ForgotPasswordRequest{Email: "ghost@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetPassword_Success(t *testing.T) {
	auth := &mockAuthService{
		resetPasswordFn: func(_ context.Context, req models.ResetPasswordRequest) error {
			assert.Equal(t, "reset-challenge", req.OTPSignature)
			assert.Equal(t, "new-password", req.Password)
			return nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ResetPasswordRequest{
		OTPSignature: "reset-challenge", Password: "new-password",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResetPassword_SamePassword(t *testing.T) {
	auth := &mockAuthService{
		resetPasswordFn: func(_ context.Context, _ models.ResetPasswordRequest) error {
			return service.ErrSamePassword
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ResetPasswordRequest{
		OTPSignature: "reset-challenge", Password: "old-password",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestChangePassword_Success(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "valid-access-token", tokenString)
			return models.Token{UserID: 7}, nil
		},
		changePasswordFn: func(_ context.Context, userID int64, req models.ChangePasswordRequest) error {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, "new-password", req.NewPassword)
			return nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "old-password", NewPassword: "new-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-access-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChangePassword_MissingToken(t *testing.T) {
	h := newHandlerWithAuth(t, &mockAuthService{})
	router := h.Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "old", NewPassword: "new"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: 7}, nil
		},
		changePasswordFn: func(_ context.Context, _ int64, _ models.ChangePasswordRequest) error {
			return service.ErrWrongPassword
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ChangePasswordRequest{OldPassword: "not-it", NewPassword: "new-password"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/change-password", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer valid-access-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
