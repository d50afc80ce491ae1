package models

// LoginRequest carries the credentials presented at login. Either Username
// or Email identifies the account; see [LoginIdentifier].
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields of a new account. The account starts
// inactive until the emailed verification code is confirmed.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// VerifyOTPRequest carries the plaintext code the user received by email
// together with the sealed challenge issued at registration.
type VerifyOTPRequest struct {
	OTP          string `json:"otp"`
	OTPSignature string `json:"otp_signature"`
}

// ResendOTPRequest asks for a fresh verification code for the account
// identified by a previously issued challenge.
type ResendOTPRequest struct {
	OTPSignature string `json:"otp_signature"`
}

// ForgotPasswordRequest starts the password-reset flow for the given email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the password-reset flow.
type ResetPasswordRequest struct {
	OTPSignature string `json:"otp_signature"`
	Password     string `json:"password"`
}

// ChangePasswordRequest changes the password of an authenticated user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// RefreshRequest exchanges a refresh token for a fresh access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
