// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// UserState is the snapshot of account fields a confirmation code is bound to.
//
// A code is derived from this state rather than persisted: changing any of
// these fields (UpdatedAt bumps on every row update) invalidates every
// outstanding code for the account without any storage lookup.
type UserState struct {
	ID          int64
	Username    string
	Email       string
	Role        UserRole
	IsSuperuser bool
	UpdatedAt   time.Time
}

// fingerprint condenses the user state into a fixed-size digest.
func (s UserState) fingerprint() []byte {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%s|%s|%s|%t|%d",
		s.ID, s.Username, s.Email, s.Role, s.IsSuperuser, s.UpdatedAt.UTC().UnixNano())
	return h.Sum(nil)
}

// CodeIssuer derives and verifies time-bound confirmation codes.
//
// # Format
//
// A code is "<expiry-hex>.<mac-hex>" where mac = HMAC-SHA256(secret,
// fingerprint || expiry). The expiry travels inside the code itself, so
// verification needs only the current user state and the shared secret.
type CodeIssuer struct {
	secret     []byte
	timeToLive time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewCodeIssuer creates a CodeIssuer with the given signing secret and code lifetime.
func NewCodeIssuer(secret []byte, timeToLive time.Duration) *CodeIssuer {
	return &CodeIssuer{
		secret:     secret,
		timeToLive: timeToLive,
		now:        time.Now,
	}
}

// Issue derives a fresh confirmation code bound to the given user state.
func (issuer *CodeIssuer) Issue(state UserState) string {
	expiresAt := issuer.now().Add(issuer.timeToLive).Unix()
	return strconv.FormatInt(expiresAt, 16) + "." + hex.EncodeToString(issuer.sign(state, expiresAt))
}

// Check verifies that code is well-formed, unexpired, and bound to the
// current user state. It reports false for any mismatch, including a code
// issued before the user row last changed.
func (issuer *CodeIssuer) Check(state UserState, code string) bool {
	expiryPart, macPart, found := strings.Cut(code, ".")
	if !found {
		return false
	}

	expiresAt, err := strconv.ParseInt(expiryPart, 16, 64)
	if err != nil || issuer.now().Unix() > expiresAt {
		return false
	}

	providedMAC, err := hex.DecodeString(macPart)
	if err != nil {
		return false
	}

	return hmac.Equal(providedMAC, issuer.sign(state, expiresAt))
}

// Remaining reports how long the code stays verifiable. The window runs to
// the end of the embedded expiry second, the same boundary [CodeIssuer.Check]
// accepts. Malformed or expired codes yield zero.
func (issuer *CodeIssuer) Remaining(code string) time.Duration {
	expiryPart, _, found := strings.Cut(code, ".")
	if !found {
		return 0
	}

	expiresAt, err := strconv.ParseInt(expiryPart, 16, 64)
	if err != nil {
		return 0
	}

	remaining := time.Unix(expiresAt+1, 0).Sub(issuer.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// sign computes the HMAC over the state fingerprint and expiry timestamp.
func (issuer *CodeIssuer) sign(state UserState, expiresAt int64) []byte {
	mac := hmac.New(sha256.New, issuer.secret)
	mac.Write(state.fingerprint())
	fmt.Fprintf(mac, "|%d", expiresAt)
	return mac.Sum(nil)
}

// CodeDigest returns a stable digest of a code, suitable as a storage key for
// single-use tracking without storing the code itself.
func CodeDigest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
