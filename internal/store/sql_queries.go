// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	userColumns = `id, name, username, email, password, phone, address, lang, image_url,
		is_active, email_verified, roles, last_login, last_password_change, google_id,
		created_at, updated_at`

	createUser = `INSERT INTO users (name, username, email, password, phone, address, lang, image_url, is_active, email_verified, roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns + `;`

	findUserByLoginIdentifier = `SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 OR email = $1;`

	findUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	refreshTokenColumns = `id, user_id, token, user_agent, ip_address, mac_address,
		expired_at, created_at, updated_at`

	createRefreshToken = `INSERT INTO refresh_tokens (user_id, token, user_agent, ip_address, mac_address, expired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + refreshTokenColumns + `;`

	findRefreshTokenByUserID = `SELECT ` + refreshTokenColumns + `
		FROM refresh_tokens
		WHERE user_id = $1;`

	findRefreshTokenByToken = `SELECT ` + refreshTokenColumns + `
		FROM refresh_tokens
		WHERE token = $1;`

	deleteRefreshToken = `DELETE FROM refresh_tokens
		WHERE id = $1;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUserUpdateQuery assembles a partial UPDATE for the users table from
// the non-nil fields of update. Returns [ErrNothingToUpdate] when every
// field is nil.
func buildUserUpdateQuery(id int64, update UserUpdate) (string, []any, error) {
	builder := psql.Update("users").Set("updated_at", sq.Expr("NOW()"))

	set := false
	if update.Password != nil {
		builder = builder.Set("password", *update.Password)
		set = true
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
		set = true
	}
	if update.EmailVerified != nil {
		builder = builder.Set("email_verified", *update.EmailVerified)
		set = true
	}
	if update.LastLogin != nil {
		builder = builder.Set("last_login", *update.LastLogin)
		set = true
	}
	if update.LastPasswordChange != nil {
		builder = builder.Set("last_password_change", *update.LastPasswordChange)
		set = true
	}

	if !set {
		return "", nil, ErrNothingToUpdate
	}

	return builder.Where(sq.Eq{"id": id}).ToSql()
}

// buildRefreshTokenUpdateQuery assembles a partial UPDATE for the
// refresh_tokens table from the non-nil fields of update.
func buildRefreshTokenUpdateQuery(id int64, update RefreshTokenUpdate) (string, []any, error) {
	builder := psql.Update("refresh_tokens").Set("updated_at", sq.Expr("NOW()"))

	set := false
	if update.Token != nil {
		builder = builder.Set("token", *update.Token)
		set = true
	}
	if update.ExpiredAt != nil {
		builder = builder.Set("expired_at", *update.ExpiredAt)
		set = true
	}
	if update.UserAgent != nil {
		builder = builder.Set("user_agent", *update.UserAgent)
		set = true
	}
	if update.IPAddress != nil {
		builder = builder.Set("ip_address", *update.IPAddress)
		set = true
	}
	if update.MacAddress != nil {
		builder = builder.Set("mac_address", *update.MacAddress)
		set = true
	}

	if !set {
		return "", nil, ErrNothingToUpdate
	}

	return builder.Where(sq.Eq{"id": id}).ToSql()
}
