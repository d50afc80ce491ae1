package crypto

// Codec seals short strings into opaque ciphertext and opens them again.
// It is used to embed identity claims inside access tokens and to turn OTP
// challenge state into the opaque signature handed to clients.
//
// The output is an encrypted-but-unsigned blob: callers must never trust a
// decrypted value on its own. OTP signatures are additionally checked against
// the cache entry stored server-side, which bounds their lifetime and detects
// replay after a resend.
type Codec interface {
	// Encrypt seals plaintext with the process-wide key and returns a
	// base64-encoded opaque string.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a string previously produced by Encrypt. It fails for
	// malformed input, a truncated blob, or ciphertext produced under a
	// different key.
	Decrypt(ciphertext string) (string, error)
}

// PasswordHasher hashes passwords one-way with an adaptive cost factor and
// verifies candidate passwords against stored hashes.
type PasswordHasher interface {
	// Hash derives a salted hash of the plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether plain matches the stored hash.
	Verify(hash, plain string) bool
}
