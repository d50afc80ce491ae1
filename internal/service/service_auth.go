// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/crypto"
	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/internal/mailer"
	"github.com/stocktree/stocktree-auth/internal/store"
	"github.com/stocktree/stocktree-auth/internal/utils"
	"github.com/stocktree/stocktree-auth/models"
)

// otpSealParts is the number of fields packed into a sealed OTP challenge:
// user ID, plaintext code, full name, email. Email goes last because it is
// the only field guaranteed colon-free from the left.
const otpSealParts = 4

// authService is the concrete implementation of AuthService.
//
// It owns the full credential lifecycle: registration gated by emailed
// one-time codes, credential verification at login, access-token issuance
// with sealed identity claims, refresh-token rotation, and password change
// and reset flows. Persistence is delegated to the user and refresh-token
// repositories, pending OTP challenges live in the cache, and code delivery
// goes through the mailer.
type authService struct {
	userRepository         store.UserRepository
	refreshTokenRepository store.RefreshTokenRepository
	otpCache               store.OTPCache
	mailer                 mailer.Mailer

	// codec seals identity claims inside access tokens and OTP challenges.
	codec crypto.Codec

	// hasher verifies and produces password hashes.
	hasher crypto.PasswordHasher

	// uuidGenerator produces opaque refresh-token values.
	uuidGenerator *utils.UUIDGenerator

	// refreshLocks serialises refresh-token handling per user so concurrent
	// sessions of one account cannot race on its single token row.
	refreshLocks *keyedLock

	tokenSignKey         string
	tokenIssuer          string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
	otpTTL               time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given storages and
// mailer, with security parameters taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(storages *store.Storages, mail mailer.Mailer, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:         storages.UserRepository,
		refreshTokenRepository: storages.RefreshTokenRepository,
		otpCache:               storages.OTPCache,
		mailer:                 mail,
		codec:                  crypto.NewCodec(cfg.EncryptionKey),
		hasher:                 crypto.NewPasswordHasher(cfg.BcryptCost),
		uuidGenerator:          utils.NewUUIDGenerator(),
		refreshLocks:           newKeyedLock(),
		tokenSignKey:           cfg.TokenSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		accessTokenDuration:    cfg.AccessTokenDuration,
		refreshTokenDuration:   cfg.RefreshTokenDuration,
		otpTTL:                 cfg.OTPTTL,
		logger:                 logger,
	}
}

// Register creates a new inactive account and starts email verification.
//
// The password is hashed before storage and the account is created with
// IsActive and EmailVerified unset; it stays unusable until [VerifyOTP]
// confirms the emailed code. The caller receives only the sealed challenge,
// never the plaintext code.
//
// Returns:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - ErrUserAlreadyExists if the email or username is already taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.OTPResult, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.OTPResult{}, ErrInvalidDataProvided
	}

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return models.OTPResult{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Address:  req.Address,
		Lang:     req.Lang,
		Roles:    []string{},
	}

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.OTPResult{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.OTPResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	signature, err := a.handleOTP(ctx, created)
	if err != nil {
		return models.OTPResult{}, err
	}

	return models.OTPResult{OTPSignature: signature}, nil
}

// Login authenticates an account and opens a session.
//
// On success it returns the sanitized profile, a freshly signed access token
// with sealed identity claims, and the account's refresh token. The refresh
// token is reused while valid and rotated only once expired, so concurrent
// logins from several devices share one token row.
//
// Returns:
//   - ErrInvalidDataProvided if no identifier or password was given.
//   - ErrUserNotFound if no account matches the identifier.
//   - ErrWrongPassword if the password does not match.
//   - ErrUserNotActive if the account has not confirmed its email yet.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, tracing models.Tracing) (models.SessionResult, error) {
	log := logger.FromContext(ctx)

	identifier := models.LoginIdentifier{Username: req.Username, Email: req.Email}.Value()
	if identifier == "" || req.Password == "" {
		log.Error().Msg("invalid login data provided")
		return models.SessionResult{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByLoginIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.SessionResult{}, ErrUserNotFound
		}
		log.Err(err).Str("identifier", identifier).Msg("user search failed")
		return models.SessionResult{}, fmt.Errorf("user search failed: %w", err)
	}

	if !a.hasher.Verify(user.Password, req.Password) {
		log.Error().Int64("id", user.ID).Msg("wrong password")
		return models.SessionResult{}, ErrWrongPassword
	}

	if !user.IsActive {
		return models.SessionResult{}, ErrUserNotActive
	}

	now := time.Now()
	if err := a.userRepository.UpdateUser(ctx, user.ID, store.UserUpdate{LastLogin: &now}); err != nil {
		// A failed audit-field write must not block the login itself.
		log.Err(err).Int64("id", user.ID).Msg("error updating last login")
	}
	user.LastLogin = now

	return a.openSession(ctx, user, tracing)
}

// Logout ends the caller's session on the client side only. Access tokens
// are stateless and the refresh-token row stays in place for the account's
// other devices, so there is nothing to revoke server-side.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	logger.FromContext(ctx).Info().Int64("id", userID).Msg("user logged out")
	return nil
}

// RefreshAccessToken exchanges a refresh token for a fresh access token.
//
// The refresh token itself is not rotated here: it stays valid until its own
// expiry, after which the exchange fails and the client must log in again.
//
// Returns ErrTokenIsExpiredOrInvalid if the token is unknown or expired, and
// ErrUserNotActive if the owning account has been deactivated since.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string, tracing models.Tracing) (models.SessionResult, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.SessionResult{}, ErrInvalidDataProvided
	}

	found, err := a.refreshTokenRepository.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNoRefreshTokenWasFound) {
			return models.SessionResult{}, ErrTokenIsExpiredOrInvalid
		}
		log.Err(err).Msg("refresh token search failed")
		return models.SessionResult{}, fmt.Errorf("refresh token search failed: %w", err)
	}

	if found.IsExpired(time.Now()) {
		return models.SessionResult{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, found.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.SessionResult{}, ErrUserNotFound
		}
		log.Err(err).Int64("id", found.UserID).Msg("user search failed")
		return models.SessionResult{}, fmt.Errorf("user search failed: %w", err)
	}

	if !user.IsActive {
		return models.SessionResult{}, ErrUserNotActive
	}

	return a.openSession(ctx, user, tracing)
}

// ParseToken validates and parses a raw access-token string: signature,
// issuer and expiry are verified and the sealed identity claims decrypted.
// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid so
// callers do not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseAccessToken(a.codec, tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// VerifyOTP confirms an emailed verification code and activates the account.
//
// The sealed challenge is unsealed, the plaintext code compared, and the
// challenge checked against the cached copy: a challenge that is absent from
// the cache (expired or already consumed) or differs from the cached one is
// rejected. On success the cache entry is deleted, so each challenge is
// single-use, and the account becomes active with its email marked verified.
func (a *authService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if req.OTP == "" || req.OTPSignature == "" {
		return models.Profile{}, ErrInvalidDataProvided
	}

	userID, otp, _, _, err := a.unsealOTP(req.OTPSignature)
	if err != nil {
		return models.Profile{}, err
	}

	if req.OTP != otp {
		return models.Profile{}, ErrOTPMismatch
	}

	if err := a.consumeCachedOTP(ctx, userID, req.OTPSignature); err != nil {
		return models.Profile{}, err
	}

	active := true
	verified := true
	err = a.userRepository.UpdateUser(ctx, userID, store.UserUpdate{IsActive: &active, EmailVerified: &verified})
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Profile{}, ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("error activating user")
		return models.Profile{}, fmt.Errorf("error activating user: %w", err)
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user search failed")
		return models.Profile{}, fmt.Errorf("user search failed: %w", err)
	}

	log.Info().Int64("id", userID).Msg("account verified")

	return models.NewProfile(user), nil
}

// ResendOTP issues a fresh verification code for a not-yet-active account.
// The previous challenge is discarded: only the newest code can verify.
//
// Returns ErrUserAlreadyActive when the account needs no verification.
func (a *authService) ResendOTP(ctx context.Context, req models.ResendOTPRequest) (models.OTPResult, error) {
	log := logger.FromContext(ctx)

	if req.OTPSignature == "" {
		return models.OTPResult{}, ErrInvalidDataProvided
	}

	userID, _, _, _, err := a.unsealOTP(req.OTPSignature)
	if err != nil {
		return models.OTPResult{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.OTPResult{}, ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user search failed")
		return models.OTPResult{}, fmt.Errorf("user search failed: %w", err)
	}

	if user.IsActive {
		return models.OTPResult{}, ErrUserAlreadyActive
	}

	signature, err := a.handleOTP(ctx, user)
	if err != nil {
		return models.OTPResult{}, err
	}

	return models.OTPResult{OTPSignature: signature}, nil
}

// ForgotPassword starts the password-reset flow: a verification code is
// emailed to the account and the sealed challenge returned to the caller,
// to be presented back through [ResetPassword].
func (a *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) (models.OTPResult, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" {
		return models.OTPResult{}, ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByLoginIdentifier(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.OTPResult{}, ErrUserNotFound
		}
		log.Err(err).Str("email", req.Email).Msg("user search failed")
		return models.OTPResult{}, fmt.Errorf("user search failed: %w", err)
	}

	signature, err := a.handleOTP(ctx, user)
	if err != nil {
		return models.OTPResult{}, err
	}

	return models.OTPResult{OTPSignature: signature}, nil
}

// ResetPassword completes the password-reset flow started by
// [ForgotPassword]. The account is resolved from the sealed challenge, the
// new password must differ from the current one, and the account's refresh
// token is dropped so existing sessions cannot outlive the reset. The cached
// challenge is cleared afterwards as cleanup; a reset stays valid even when
// the cache entry already expired or was consumed by a verify call.
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.OTPSignature == "" || req.Password == "" {
		return ErrInvalidDataProvided
	}

	userID, _, _, _, err := a.unsealOTP(req.OTPSignature)
	if err != nil {
		return err
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user search failed")
		return fmt.Errorf("user search failed: %w", err)
	}

	if a.hasher.Verify(user.Password, req.Password) {
		return ErrSamePassword
	}

	if err := a.setPassword(ctx, user.ID, req.Password); err != nil {
		return err
	}

	if err := a.otpCache.Del(ctx, otpKey(userID)); err != nil {
		log.Err(err).Int64("id", userID).Msg("error clearing verification code after reset")
	}

	a.revokeRefreshToken(ctx, user.ID)

	log.Info().Int64("id", userID).Msg("password reset")

	return nil
}

// ChangePassword rotates the password of an authenticated user. The current
// password must verify, the new one must differ, and the account's refresh
// token is dropped so other sessions have to log in again.
func (a *authService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user search failed")
		return fmt.Errorf("user search failed: %w", err)
	}

	if !a.hasher.Verify(user.Password, req.OldPassword) {
		return ErrWrongPassword
	}

	if a.hasher.Verify(user.Password, req.NewPassword) {
		return ErrSamePassword
	}

	if err := a.setPassword(ctx, userID, req.NewPassword); err != nil {
		return err
	}

	a.revokeRefreshToken(ctx, userID)

	log.Info().Int64("id", userID).Msg("password changed")

	return nil
}

// GetMe returns the sanitized profile of the given account.
func (a *authService) GetMe(ctx context.Context, userID int64) (models.Profile, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.Profile{}, ErrUserNotFound
		}
		log.Err(err).Int64("id", userID).Msg("user search failed")
		return models.Profile{}, fmt.Errorf("user search failed: %w", err)
	}

	return models.NewProfile(user), nil
}

// openSession issues the access token and resolves the refresh token for an
// authenticated user, producing the full session response.
func (a *authService) openSession(ctx context.Context, user models.User, tracing models.Tracing) (models.SessionResult, error) {
	accessToken, err := utils.GenerateAccessToken(a.codec, a.tokenIssuer,
		user.ID, user.Email, user.Roles, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.SessionResult{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := a.handleRefreshToken(ctx, user.ID, tracing)
	if err != nil {
		return models.SessionResult{}, err
	}

	return models.SessionResult{
		User: models.NewProfile(user),
		AccessToken: &models.TokenPayload{
			Token:     accessToken.SignedString,
			ExpiresIn: time.Now().Add(a.accessTokenDuration),
		},
		RefreshToken: &models.TokenPayload{
			Token:     refreshToken.Token,
			ExpiresIn: refreshToken.ExpiredAt,
		},
	}, nil
}

// handleRefreshToken resolves the single refresh-token row of an account:
// a missing row is created, an expired one is rotated in place, and a live
// one is returned untouched. The per-user lock keeps concurrent logins from
// both inserting or both rotating.
func (a *authService) handleRefreshToken(ctx context.Context, userID int64, tracing models.Tracing) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	a.refreshLocks.Lock(userID)
	defer a.refreshLocks.Unlock(userID)

	existing, err := a.refreshTokenRepository.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNoRefreshTokenWasFound) {
			log.Err(err).Int64("id", userID).Msg("refresh token search failed")
			return models.RefreshToken{}, fmt.Errorf("refresh token search failed: %w", err)
		}

		created, err := a.refreshTokenRepository.CreateRefreshToken(ctx, models.RefreshToken{
			UserID:     userID,
			Token:      a.uuidGenerator.Generate(),
			UserAgent:  tracing.UserAgent,
			IPAddress:  tracing.IPAddress,
			MacAddress: tracing.MacAddress,
			ExpiredAt:  time.Now().Add(a.refreshTokenDuration),
		})
		if err != nil {
			log.Err(err).Int64("id", userID).Msg("refresh token creation failed")
			return models.RefreshToken{}, fmt.Errorf("refresh token creation failed: %w", err)
		}

		return created, nil
	}

	if !existing.IsExpired(time.Now()) {
		return existing, nil
	}

	rotated := a.uuidGenerator.Generate()
	expiredAt := time.Now().Add(a.refreshTokenDuration)
	update := store.RefreshTokenUpdate{
		Token:      &rotated,
		ExpiredAt:  &expiredAt,
		UserAgent:  &tracing.UserAgent,
		IPAddress:  &tracing.IPAddress,
		MacAddress: &tracing.MacAddress,
	}
	if err := a.refreshTokenRepository.UpdateRefreshToken(ctx, existing.ID, update); err != nil {
		log.Err(err).Int64("id", userID).Msg("refresh token rotation failed")
		return models.RefreshToken{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	existing.Token = rotated
	existing.ExpiredAt = expiredAt
	existing.UserAgent = tracing.UserAgent
	existing.IPAddress = tracing.IPAddress
	existing.MacAddress = tracing.MacAddress

	return existing, nil
}

// handleOTP issues a verification code for the given account: the code is
// generated, sealed together with the account identity into an opaque
// challenge, cached under the account's key for the configured TTL, and
// emailed in plaintext. Any previously pending challenge is discarded first.
func (a *authService) handleOTP(ctx context.Context, user models.User) (string, error) {
	log := logger.FromContext(ctx)

	otp, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("error generating verification code: %w", err)
	}

	sealed := fmt.Sprintf("%d:%s:%s:%s", user.ID, otp, user.Name, user.Email)
	signature, err := a.codec.Encrypt(sealed)
	if err != nil {
		return "", fmt.Errorf("error sealing verification code: %w", err)
	}

	key := otpKey(user.ID)
	if err := a.otpCache.Del(ctx, key); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("error discarding previous verification code")
	}
	if err := a.otpCache.Put(ctx, key, signature, a.otpTTL); err != nil {
		return "", fmt.Errorf("error caching verification code: %w", err)
	}

	if err := a.mailer.SendOTPEmail(ctx, user.Email, user.Name, otp); err != nil {
		return "", fmt.Errorf("error delivering verification code: %w", err)
	}

	return signature, nil
}

// consumeCachedOTP checks the presented challenge against the cached copy
// and removes it. Absence means the challenge expired or was already used;
// a different cached value means the challenge was superseded by a resend.
func (a *authService) consumeCachedOTP(ctx context.Context, userID int64, signature string) error {
	log := logger.FromContext(ctx)

	cached, err := a.otpCache.Get(ctx, otpKey(userID))
	if err != nil {
		if errors.Is(err, store.ErrOTPNotCached) {
			return ErrOTPExpiredOrInvalid
		}
		log.Err(err).Int64("id", userID).Msg("error reading cached verification code")
		return fmt.Errorf("error reading cached verification code: %w", err)
	}

	if cached != signature {
		return ErrOTPExpiredOrInvalid
	}

	if err := a.otpCache.Del(ctx, otpKey(userID)); err != nil {
		log.Err(err).Int64("id", userID).Msg("error deleting cached verification code")
		return fmt.Errorf("error deleting cached verification code: %w", err)
	}

	return nil
}

// unsealOTP decrypts a sealed challenge back into its parts. Any decryption
// or format failure is normalised to ErrOTPExpiredOrInvalid: an unreadable
// challenge and a stale one are indistinguishable to the caller.
func (a *authService) unsealOTP(signature string) (userID int64, otp, fullName, email string, err error) {
	plain, err := a.codec.Decrypt(signature)
	if err != nil {
		return 0, "", "", "", ErrOTPExpiredOrInvalid
	}

	parts := strings.SplitN(plain, ":", otpSealParts)
	if len(parts) != otpSealParts {
		return 0, "", "", "", ErrOTPExpiredOrInvalid
	}

	userID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", "", "", ErrOTPExpiredOrInvalid
	}

	return userID, parts[1], parts[2], parts[3], nil
}

// setPassword stores a new password hash and stamps the change time.
func (a *authService) setPassword(ctx context.Context, userID int64, password string) error {
	log := logger.FromContext(ctx)

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	now := time.Now()
	err = a.userRepository.UpdateUser(ctx, userID, store.UserUpdate{Password: &hash, LastPasswordChange: &now})
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// revokeRefreshToken drops the account's refresh-token row if one exists.
// Failures are logged only: the password change itself already succeeded.
// It takes the same per-user lock as [handleRefreshToken] so a revoke cannot
// interleave with a concurrent login's rotation.
func (a *authService) revokeRefreshToken(ctx context.Context, userID int64) {
	log := logger.FromContext(ctx)

	a.refreshLocks.Lock(userID)
	defer a.refreshLocks.Unlock(userID)

	existing, err := a.refreshTokenRepository.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNoRefreshTokenWasFound) {
			log.Err(err).Int64("id", userID).Msg("refresh token search failed")
		}
		return
	}

	if err := a.refreshTokenRepository.DeleteRefreshToken(ctx, existing.ID); err != nil {
		log.Err(err).Int64("id", userID).Msg("error revoking refresh token")
	}
}

func otpKey(userID int64) string {
	return fmt.Sprintf("OTP:%d", userID)
}
