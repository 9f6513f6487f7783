// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olekker/ratebase/internal/platform/apperr"
	"github.com/olekker/ratebase/internal/platform/sec"
)

func claimsFor(id int64, role sec.UserRole, super bool) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: "u", Role: role, IsSuperuser: super}
}

/*
TestPolicy_AdminOnly checks the administrator-only predicate.
*/
func TestPolicy_AdminOnly(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"anonymous", nil, "UNAUTHORIZED"},
		{"regular_user", claimsFor(1, sec.RoleUser, false), "FORBIDDEN"},
		{"moderator", claimsFor(1, sec.RoleModerator, false), "FORBIDDEN"},
		{"admin", claimsFor(1, sec.RoleAdmin, false), ""},
		{"superuser_with_user_role", claimsFor(1, sec.RoleUser, true), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AdminOnly(http.MethodPost, tt.actor, nil)
			assertPolicyResult(t, err, tt.wantCode)
		})
	}
}

/*
TestPolicy_AdminOrReadOnly checks that safe methods bypass the admin gate.
*/
func TestPolicy_AdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"get_anonymous", http.MethodGet, nil, ""},
		{"head_anonymous", http.MethodHead, nil, ""},
		{"post_anonymous", http.MethodPost, nil, "UNAUTHORIZED"},
		{"post_regular_user", http.MethodPost, claimsFor(1, sec.RoleUser, false), "FORBIDDEN"},
		{"delete_admin", http.MethodDelete, claimsFor(1, sec.RoleAdmin, false), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AdminOrReadOnly(tt.method, tt.actor, nil)
			assertPolicyResult(t, err, tt.wantCode)
		})
	}
}

/*
TestPolicy_AuthorModeratorAdminOrReadOnly checks the content ownership rules.
*/
func TestPolicy_AuthorModeratorAdminOrReadOnly(t *testing.T) {
	ownerID := int64(7)

	tests := []struct {
		name     string
		method   string
		actor    *sec.AuthClaims
		ownerID  *int64
		wantCode string
	}{
		{"get_anonymous", http.MethodGet, nil, &ownerID, ""},
		{"post_anonymous", http.MethodPost, nil, nil, "UNAUTHORIZED"},
		{"post_authenticated_no_owner", http.MethodPost, claimsFor(1, sec.RoleUser, false), nil, ""},
		{"patch_by_author", http.MethodPatch, claimsFor(7, sec.RoleUser, false), &ownerID, ""},
		{"patch_by_stranger", http.MethodPatch, claimsFor(8, sec.RoleUser, false), &ownerID, "FORBIDDEN"},
		{"patch_by_moderator", http.MethodPatch, claimsFor(8, sec.RoleModerator, false), &ownerID, ""},
		{"delete_by_admin", http.MethodDelete, claimsFor(8, sec.RoleAdmin, false), &ownerID, ""},
		{"delete_by_superuser", http.MethodDelete, claimsFor(8, sec.RoleUser, true), &ownerID, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sec.AuthorModeratorAdminOrReadOnly(tt.method, tt.actor, tt.ownerID)
			assertPolicyResult(t, err, tt.wantCode)
		})
	}
}

/*
TestPolicy_Evaluate checks that evaluation stops at the first denial.
*/
func TestPolicy_Evaluate(t *testing.T) {
	err := sec.Evaluate(http.MethodPost, nil, nil, sec.AdminOrReadOnly, sec.AdminOnly)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	err = sec.Evaluate(http.MethodGet, nil, nil, sec.AdminOrReadOnly, sec.AuthorModeratorAdminOrReadOnly)
	assert.NoError(t, err)
}

func assertPolicyResult(t *testing.T, err error, wantCode string) {
	t.Helper()
	if wantCode == "" {
		assert.NoError(t, err)
		return
	}
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, wantCode, ae.Code)
}
