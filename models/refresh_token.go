package models

import "time"

// RefreshToken is a long-lived session-continuation credential. The design
// keeps at most one live row per user: a new login or rotation overwrites the
// existing row rather than creating a second one.
type RefreshToken struct {
	// ID is the internal row identifier, assigned on creation.
	ID int64 `json:"-"`

	// UserID is the owning user.
	UserID int64 `json:"-"`

	// Token is the opaque random credential value handed to the client.
	Token string `json:"token"`

	// UserAgent, IPAddress and MacAddress are device-tracing fields attached
	// on creation and overwritten on every rotation.
	UserAgent  string `json:"-"`
	IPAddress  string `json:"-"`
	MacAddress string `json:"-"`

	// ExpiredAt is the moment the token stops being exchangeable.
	ExpiredAt time.Time `json:"expired_at"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// IsExpired reports whether the token's expiry has passed at the given
// moment. Rotation happens only for expired rows; live rows are reused
// unchanged.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiredAt.Before(now)
}
