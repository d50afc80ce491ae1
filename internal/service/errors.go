package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrSamePassword        = errors.New("new password matches the old one")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserNotActive     = errors.New("account is not verified")
	ErrUserAlreadyActive = errors.New("account is already verified")

	ErrOTPMismatch         = errors.New("verification code does not match")
	ErrOTPExpiredOrInvalid = errors.New("verification code is expired or invalid")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
