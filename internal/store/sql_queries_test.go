package store

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBuildUserUpdateQuery(t *testing.T) {
	password := "hash"
	active := true
	lastLogin := time.Now()

	query, args, err := buildUserUpdateQuery(1, UserUpdate{
		Password:  &password,
		IsActive:  &active,
		LastLogin: &lastLogin,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(query, "UPDATE users SET") {
		t.Errorf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "updated_at = NOW()") {
		t.Errorf("expected updated_at touch, got: %s", query)
	}
	if !strings.Contains(query, "password = $1") {
		t.Errorf("expected password assignment, got: %s", query)
	}
	if !strings.Contains(query, "WHERE id = $4") {
		t.Errorf("expected id predicate, got: %s", query)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %d: %v", len(args), args)
	}
}

func TestBuildUserUpdateQuery_NothingToUpdate(t *testing.T) {
	_, _, err := buildUserUpdateQuery(1, UserUpdate{})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestBuildRefreshTokenUpdateQuery(t *testing.T) {
	token := "5f4a9e0c-8a1b-4f43-b1de-6a9a4e6f0d22"
	expiredAt := time.Now()

	query, args, err := buildRefreshTokenUpdateQuery(3, RefreshTokenUpdate{
		Token:     &token,
		ExpiredAt: &expiredAt,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(query, "UPDATE refresh_tokens SET") {
		t.Errorf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "token = $1") {
		t.Errorf("expected token assignment, got: %s", query)
	}
	if !strings.Contains(query, "WHERE id = $3") {
		t.Errorf("expected id predicate, got: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args, got %d: %v", len(args), args)
	}
}
