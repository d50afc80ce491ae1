package models

import "time"

// Profile is the sanitized view of a user returned to callers. It never
// carries the password hash or internal audit fields.
type Profile struct {
	Username  string    `json:"username,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Lang      string    `json:"lang,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	Roles     []string  `json:"roles"`
	LastLogin time.Time `json:"last_login,omitempty"`
}

// NewProfile builds the sanitized profile view of the given user.
func NewProfile(user User) Profile {
	return Profile{
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Lang:      user.Lang,
		ImageURL:  user.ImageURL,
		IsActive:  user.IsActive,
		Roles:     user.Roles,
		LastLogin: user.LastLogin,
	}
}

// TokenPayload pairs a credential string with its expiry for wire responses.
type TokenPayload struct {
	Token     string    `json:"token"`
	ExpiresIn time.Time `json:"expires_in"`
}

// SessionResult is the full login/refresh response: the sanitized profile
// plus the freshly issued access and refresh credentials.
type SessionResult struct {
	User         Profile       `json:"user"`
	AccessToken  *TokenPayload `json:"access_token,omitempty"`
	RefreshToken *TokenPayload `json:"refresh_token,omitempty"`
}

// OTPResult is returned by registration, forgot-password and resend flows.
// Signature is the opaque sealed OTP challenge; the plaintext code travels
// only inside the notification email.
type OTPResult struct {
	OTPSignature string `json:"otp_signature"`
}
