package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktree/stocktree-auth/internal/service"
	"github.com/stocktree/stocktree-auth/models"
)

func TestVerifyOTP_Success(t *testing.T) {
	auth := &mockAuthService{
		verifyOTPFn: func(_ context.Context, req models.VerifyOTPRequest) (models.Profile, error) {
			assert.Equal(t, "042137", req.OTP)
			assert.Equal(t, "sealed-challenge", req.OTPSignature)
			return models.Profile{Email: "john@example.com", IsActive: true}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.VerifyOTPRequest{OTP: "042137", OTPSignature: "sealed-challenge"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.True(t, profile.IsActive)
}

func TestVerifyOTP_Mismatch(t *testing.T) {
	auth := &mockAuthService{
		verifyOTPFn: func(_ context.Context, _ models.VerifyOTPRequest) (models.Profile, error) {
			return models.Profile{}, service.ErrOTPMismatch
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.VerifyOTPRequest{OTP: "000000", OTPSignature: "sealed-challenge"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestVerifyOTP_Expired(t *testing.T) {
	auth := &mockAuthService{
		verifyOTPFn: func(_ context.Context, _ models.VerifyOTPRequest) (models.Profile, error) {
			return models.Profile{}, service.ErrOTPExpiredOrInvalid
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.VerifyOTPRequest{OTP: "042137", OTPSignature: "stale-challenge"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestResendOTP_Success(t *testing.T) {
	auth := &mockAuthService{
		resendOTPFn: func(_ context.Context, req models.ResendOTPRequest) (models.OTPResult, error) {
			assert.Equal(t, "old-challenge", req.OTPSignature)
			return models.OTPResult{OTPSignature: "new-challenge"}, nil
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ResendOTPRequest{OTPSignature: "old-challenge"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/resend-otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.OTPResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "new-challenge", result.OTPSignature)
}

func TestResendOTP_AlreadyActive(t *testing.T) {
	auth := &mockAuthService{
		resendOTPFn: func(_ context.Context, _ models.ResendOTPRequest) (models.OTPResult, error) {
			return models.OTPResult{}, service.ErrUserAlreadyActive
		},
	}
	h := newHandlerWithAuth(t, auth)
	router := h.Init()

	body := jsonBody(t, models.ResendOTPRequest{OTPSignature: "old-challenge"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/resend-otp", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
