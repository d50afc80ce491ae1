package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stocktree/stocktree-auth/internal/logger"
	"github.com/stocktree/stocktree-auth/models"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository]. The refresh_tokens table carries a unique
// constraint on user_id, so the single-row-per-user invariant is enforced by
// the schema as well as by the service layer.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// FindByUserID retrieves the refresh-token row owned by userID. An empty
// result set maps to [ErrNoRefreshTokenWasFound].
func (r *refreshTokenRepository) FindByUserID(ctx context.Context, userID int64) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findRefreshTokenByUserID, userID)

	found, err := scanRefreshToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrNoRefreshTokenWasFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.FindByUserID").Msg("error searching refresh token")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindByToken retrieves a refresh-token row by its opaque token value. An
// empty result set maps to [ErrNoRefreshTokenWasFound].
func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findRefreshTokenByToken, token)

	found, err := scanRefreshToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrNoRefreshTokenWasFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.FindByToken").Msg("error searching refresh token")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// CreateRefreshToken persists a new refresh-token row and returns it with
// server-assigned fields populated.
func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createRefreshToken,
		token.UserID, token.Token, nullString(token.UserAgent),
		nullString(token.IPAddress), nullString(token.MacAddress), token.ExpiredAt)

	created, err := scanRefreshToken(row)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.CreateRefreshToken").Msg("error creating refresh token")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// UpdateRefreshToken applies the non-nil fields of update to the token row.
// A row count of zero maps to [ErrNoRefreshTokenWasFound].
func (r *refreshTokenRepository) UpdateRefreshToken(ctx context.Context, id int64, update RefreshTokenUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRefreshTokenUpdateQuery(id, update)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.UpdateRefreshToken").Msg("error updating refresh token")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNoRefreshTokenWasFound
	}

	return nil
}

// DeleteRefreshToken removes the token row by id. Deleting an absent row is
// not an error.
func (r *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteRefreshToken, id); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteRefreshToken").Msg("error deleting refresh token")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func scanRefreshToken(row rowScanner) (models.RefreshToken, error) {
	var (
		token                models.RefreshToken
		userAgent, ipAddress sql.NullString
		macAddress           sql.NullString
	)

	err := row.Scan(&token.ID, &token.UserID, &token.Token,
		&userAgent, &ipAddress, &macAddress,
		&token.ExpiredAt, &token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		return models.RefreshToken{}, err
	}

	token.UserAgent = userAgent.String
	token.IPAddress = ipAddress.String
	token.MacAddress = macAddress.String

	return token, nil
}
