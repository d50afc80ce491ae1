package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stocktree/stocktree-auth/internal/crypto"
	"github.com/stocktree/stocktree-auth/models"
)

// GenerateAccessToken creates a signed HMAC-SHA256 JWT carrying sealed
// identity claims.
//
// The user id and email are encrypted with the given codec before they enter
// the payload, so the compact token never exposes them in plaintext. Roles
// travel unencrypted. The token includes the standard Issuer, IssuedAt and
// ExpiresAt claims.
//
// All parameters are required. Returns an error if any of them are empty or
// zero, if sealing a claim fails, or if signing fails.
func GenerateAccessToken(codec crypto.Codec, issuer string, userID int64, email string, roles []string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	encryptedID, err := codec.Encrypt(strconv.FormatInt(userID, 10))
	if err != nil {
		return models.Token{}, fmt.Errorf("error sealing id claim: %w", err)
	}

	encryptedEmail, err := codec.Encrypt(email)
	if err != nil {
		return models.Token{}, fmt.Errorf("error sealing email claim: %w", err)
	}

	now := time.Now()
	claims := &models.AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		EncryptedID:    encryptedID,
		EncryptedEmail: encryptedEmail,
		Roles:          roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		UserID:       userID,
		Email:        email,
		Roles:        roles,
	}, nil
}

// ValidateAndParseAccessToken validates the given JWT string and recovers its
// sealed identity claims.
//
// Validation includes:
//   - Signature verification using the provided sign key. The signature is
//     always checked; claims from an unverified token are never trusted.
//   - Issuer (iss) claim check against the provided tokenIssuer.
//   - Expiration (exp) claim check.
//
// After verification the id and email claims are opened with the codec and
// the id is converted to int64.
func ValidateAndParseAccessToken(codec crypto.Codec, tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	idPlaintext, err := codec.Decrypt(claims.EncryptedID)
	if err != nil {
		return models.Token{}, fmt.Errorf("error opening id claim: %w", err)
	}

	userID, err := strconv.ParseInt(idPlaintext, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error converting id claim to int64: %w", err)
	}

	email, err := codec.Decrypt(claims.EncryptedEmail)
	if err != nil {
		return models.Token{}, fmt.Errorf("error opening email claim: %w", err)
	}

	return models.Token{
		Token:        token,
		SignedString: tokenString,
		UserID:       userID,
		Email:        email,
		Roles:        claims.Roles,
	}, nil
}

// ParseBearerToken extracts the token value from a standard
// "Authorization: Bearer <token>" header.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
