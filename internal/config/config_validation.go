// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Lifecycle defaults applied when no source specifies a value. They mirror
// the production contract: 24-hour access tokens, 30-day refresh tokens,
// 300-second pending OTPs.
const (
	defaultAccessTokenDuration  = 24 * time.Hour
	defaultRefreshTokenDuration = 30 * 24 * time.Hour
	defaultOTPTTL               = 300 * time.Second
	defaultRequestTimeout       = 30 * time.Second
)

// applyDefaults fills lifecycle durations that no configuration source set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.AccessTokenDuration == 0 {
		cfg.Auth.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.Auth.RefreshTokenDuration == 0 {
		cfg.Auth.RefreshTokenDuration = defaultRefreshTokenDuration
	}
	if cfg.Auth.OTPTTL == 0 {
		cfg.Auth.OTPTTL = defaultOTPTTL
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.EncryptionKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Mail.Sender == "" || cfg.Mail.Host == "" {
		return ErrInvalidMailConfigs
	}

	return nil
}
