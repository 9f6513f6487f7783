// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

package sec

import (
	"net/http"

	"github.com/olekker/ratebase/internal/platform/apperr"
)

// # Permission Policies

// A Policy is a pure predicate over (HTTP method, actor, resource owner).
// It returns nil to allow, or an authorization [apperr.AppError] to deny.
//
// Policies are side-effect-free and must be evaluated before any mutation.
// The ownerID is nil for collection-level checks, and points at the resource
// author's user ID for object-level checks.
type Policy func(method string, actor *AuthClaims, ownerID *int64) error

// Evaluate runs policies in order and returns the first denial, or nil if
// every policy allows the request.
func Evaluate(method string, actor *AuthClaims, ownerID *int64, policies ...Policy) error {
	for _, policy := range policies {
		if err := policy(method, actor, ownerID); err != nil {
			return err
		}
	}
	return nil
}

// AdminOnly allows only authenticated administrators, for any method.
func AdminOnly(method string, actor *AuthClaims, _ *int64) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !actor.IsAdmin() {
		return apperr.Forbidden("Administrator access required")
	}
	return nil
}

// AdminOrReadOnly allows safe methods to anyone; writes require an
// authenticated administrator.
func AdminOrReadOnly(method string, actor *AuthClaims, ownerID *int64) error {
	if isSafeMethod(method) {
		return nil
	}
	return AdminOnly(method, actor, ownerID)
}

// AuthorModeratorAdminOrReadOnly allows safe methods to anyone. Writes
// require authentication; when an owner is known (object-level check), the
// write additionally requires the actor to be the owner, a moderator,
// or an admin.
func AuthorModeratorAdminOrReadOnly(method string, actor *AuthClaims, ownerID *int64) error {
	if isSafeMethod(method) {
		return nil
	}
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if ownerID == nil {
		return nil
	}
	if actor.UserID == *ownerID || actor.IsAdmin() || actor.IsModerator() {
		return nil
	}
	return apperr.Forbidden("You do not have permission to modify this resource")
}

// isSafeMethod reports whether the HTTP method is read-only per RFC 9110.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
