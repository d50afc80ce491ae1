// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// codec is the private implementation of [Codec]. It encrypts with
// AES-256-GCM under a single process-wide key derived from the configured
// secret. A random 12-byte nonce is prepended to the ciphertext so the
// decryption side can locate it: blob = nonce ‖ ciphertext.
type codec struct {
	key []byte
}

// ErrMalformedCiphertext is returned by Decrypt when the input is not valid
// base64, is shorter than the GCM nonce, or fails authentication.
var ErrMalformedCiphertext = errors.New("malformed or unauthentic ciphertext")

// NewCodec constructs a [Codec] keyed by secret. The secret is stretched to
// a 256-bit key with SHA-256 so that operators may configure secrets of any
// length.
func NewCodec(secret string) Codec {
	key := sha256.Sum256([]byte(secret))
	return &codec{key: key[:]}
}

// Encrypt implements [Codec]. The same plaintext encrypts to a different
// blob on every call because of the random nonce.
func (c *codec) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("error reading nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt implements [Codec]. It unwraps a blob produced by
// [codec.Encrypt] and returns the original plaintext, or
// [ErrMalformedCiphertext] if the blob is damaged or was sealed under a
// different key.
func (c *codec) Decrypt(ciphertext string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrMalformedCiphertext
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	if len(data) < gcm.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, sealed := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrMalformedCiphertext
	}

	return string(plaintext), nil
}
