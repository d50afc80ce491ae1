package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the claim set carried by every issued access token.
//
// ID and Email are sealed with the reversible codec before signing, so the
// token payload never contains them in plaintext. Roles travel in the clear:
// they are not secret and downstream middleware needs them without a
// decryption round-trip.
type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// EncryptedID is the codec-sealed user id.
	EncryptedID string `json:"id"`

	// EncryptedEmail is the codec-sealed user email.
	EncryptedEmail string `json:"email"`

	// Roles is the plaintext role list of the token owner.
	Roles []string `json:"roles,omitempty"`
}

// Token wraps an issued or parsed access token together with the identity
// claims decrypted back to plaintext for server-side use.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the plaintext owner identifier recovered from the sealed
	// "id" claim after signature verification.
	UserID int64 `json:"-"`

	// Email is the plaintext owner email recovered from the sealed
	// "email" claim after signature verification.
	Email string `json:"-"`

	// Roles is the role list carried by the token.
	Roles []string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
