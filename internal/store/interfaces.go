package store

import (
	"context"
	"time"

	"github.com/stocktree/stocktree-auth/models"
)

// UserRepository is the credential store gateway. Lookup misses surface as
// [ErrNoUserWasFound]; duplicate registrations as [ErrEmailAlreadyExists].
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields (ID, CreatedAt, UpdatedAt) populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLoginIdentifier resolves a user whose username OR email
	// matches the identifier.
	FindUserByLoginIdentifier(ctx context.Context, identifier string) (models.User, error)

	// FindUserByID resolves a user by primary key.
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// UpdateUser applies the non-nil fields of update to the user row.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) error
}

// RefreshTokenRepository is the refresh-token store gateway. The schema
// holds at most one row per user; Create and UpdateRefreshToken together
// implement the upsert-in-place lifecycle.
type RefreshTokenRepository interface {
	FindByUserID(ctx context.Context, userID int64) (models.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (models.RefreshToken, error)
	CreateRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)
	UpdateRefreshToken(ctx context.Context, id int64, update RefreshTokenUpdate) error
	DeleteRefreshToken(ctx context.Context, id int64) error
}

// OTPCache is the ephemeral key-value store holding pending OTP challenges
// under per-key TTLs. Get returns [ErrOTPNotCached] for both a missing and
// an expired key; the caller cannot tell them apart, and does not need to.
type OTPCache interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

// UserUpdate lists the user fields this core mutates after creation. Nil
// fields are left untouched by UpdateUser.
type UserUpdate struct {
	Password           *string
	IsActive           *bool
	EmailVerified      *bool
	LastLogin          *time.Time
	LastPasswordChange *time.Time
}

// RefreshTokenUpdate carries the fields rewritten on token rotation. Nil
// fields are left untouched by UpdateRefreshToken.
type RefreshTokenUpdate struct {
	Token      *string
	ExpiredAt  *time.Time
	UserAgent  *string
	IPAddress  *string
	MacAddress *string
}
