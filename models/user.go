package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user, assigned on creation.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Username is an optional unique handle. When present it can be used as
	// a login identifier instead of the email address.
	Username string `json:"username,omitempty"`

	// Email is the unique email address of the user. It doubles as a login
	// identifier and as the delivery address for OTP mail.
	Email string `json:"email"`

	// Password stores the bcrypt hash of the user's password.
	// It is never serialized to JSON and must never leave the server process.
	Password string `json:"-"`

	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Lang     string `json:"lang,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	// IsActive reports whether the account may log in. Accounts are created
	// inactive and flip to active after a successful OTP verification.
	IsActive bool `json:"is_active"`

	// EmailVerified reports whether the email address was confirmed via OTP.
	EmailVerified bool `json:"email_verified"`

	// Roles is the ordered list of role names granted to the user.
	Roles []string `json:"roles"`

	// GoogleID is an optional external identity reference.
	GoogleID string `json:"-"`

	LastLogin          time.Time `json:"last_login,omitempty"`
	LastPasswordChange time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// LoginIdentifier names the field a login attempt resolves against: a unique
// username or a unique email address. Resolving it before the store lookup
// keeps the "username or email" duality explicit instead of relying on a
// silent fallback.
type LoginIdentifier struct {
	Username string
	Email    string
}

// Value returns the identifier string, preferring the username when both are
// present. An empty return value means the credential is unusable.
func (l LoginIdentifier) Value() string {
	if l.Username != "" {
		return l.Username
	}
	return l.Email
}

// Tracing carries ephemeral request metadata recorded alongside refresh
// tokens for audit. It is never persisted on its own.
type Tracing struct {
	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	MacAddress string `json:"mac_address,omitempty"`
}
