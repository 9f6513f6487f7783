// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olekker/ratebase/internal/platform/sec"
)

func userState() sec.UserState {
	return sec.UserState{
		ID:        42,
		Username:  "olekker",
		Email:     "olekker@example.com",
		Role:      sec.RoleUser,
		UpdatedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

/*
TestCodeIssuer_RoundTrip verifies that a freshly issued code checks out
against the same user state.
*/
func TestCodeIssuer_RoundTrip(t *testing.T) {
	issuer := sec.NewCodeIssuer([]byte("test-secret"), time.Hour)
	state := userState()

	code := issuer.Issue(state)
	require.NotEmpty(t, code)

	assert.True(t, issuer.Check(state, code))
}

/*
TestCodeIssuer_WrongSecret verifies that a code signed with a different
secret is rejected.
*/
func TestCodeIssuer_WrongSecret(t *testing.T) {
	state := userState()

	code := sec.NewCodeIssuer([]byte("secret-a"), time.Hour).Issue(state)
	verifier := sec.NewCodeIssuer([]byte("secret-b"), time.Hour)

	assert.False(t, verifier.Check(state, code))
}

/*
TestCodeIssuer_StateChangeInvalidates verifies that any change to the bound
account fields invalidates an outstanding code.
*/
func TestCodeIssuer_StateChangeInvalidates(t *testing.T) {
	issuer := sec.NewCodeIssuer([]byte("test-secret"), time.Hour)
	code := issuer.Issue(userState())

	tests := []struct {
		name   string
		mutate func(*sec.UserState)
	}{
		{"username_changed", func(s *sec.UserState) { s.Username = "renamed" }},
		{"email_changed", func(s *sec.UserState) { s.Email = "new@example.com" }},
		{"role_changed", func(s *sec.UserState) { s.Role = sec.RoleModerator }},
		{"superuser_granted", func(s *sec.UserState) { s.IsSuperuser = true }},
		{"row_updated", func(s *sec.UserState) { s.UpdatedAt = s.UpdatedAt.Add(time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := userState()
			tt.mutate(&state)
			assert.False(t, issuer.Check(state, code))
		})
	}
}

/*
TestCodeIssuer_Expired verifies that an expired code is rejected. A negative
lifetime yields a code whose embedded expiry is already in the past.
*/
func TestCodeIssuer_Expired(t *testing.T) {
	issuer := sec.NewCodeIssuer([]byte("test-secret"), -time.Minute)
	state := userState()

	code := issuer.Issue(state)
	assert.False(t, issuer.Check(state, code))
}

/*
TestCodeIssuer_Remaining verifies that the reported lifetime tracks the
expiry embedded in the code itself.
*/
func TestCodeIssuer_Remaining(t *testing.T) {
	state := userState()

	issuer := sec.NewCodeIssuer([]byte("test-secret"), 10*time.Minute)
	remaining := issuer.Remaining(issuer.Issue(state))
	assert.Greater(t, remaining, 9*time.Minute)
	// The window is rounded up to the end of the expiry second.
	assert.LessOrEqual(t, remaining, 10*time.Minute+time.Second)

	expired := sec.NewCodeIssuer([]byte("test-secret"), -time.Minute)
	assert.Equal(t, time.Duration(0), expired.Remaining(expired.Issue(state)))

	assert.Equal(t, time.Duration(0), issuer.Remaining("garbage"))
	assert.Equal(t, time.Duration(0), issuer.Remaining("zz.deadbeef"))
}

/*
TestCodeIssuer_Malformed verifies that malformed codes never check out.
*/
func TestCodeIssuer_Malformed(t *testing.T) {
	issuer := sec.NewCodeIssuer([]byte("test-secret"), time.Hour)
	state := userState()

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"no_separator", "deadbeef"},
		{"bad_expiry", "zz.deadbeef"},
		{"bad_mac_hex", "7fffffff.not-hex"},
		{"truncated_mac", "7fffffff.dead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, issuer.Check(state, tt.code))
		})
	}
}

/*
TestCodeDigest verifies digest stability and collision behavior.
*/
func TestCodeDigest(t *testing.T) {
	assert.Equal(t, sec.CodeDigest("abc"), sec.CodeDigest("abc"))
	assert.NotEqual(t, sec.CodeDigest("abc"), sec.CodeDigest("abd"))
	assert.Len(t, sec.CodeDigest("abc"), 64)
}
