// Copyright (c) 2026 Ratebase. All rights reserved.
// Author: dev@ratebase.dev

/*
Package sec provides cryptographic primitives and token management.

# Architecture

This package isolates security-sensitive code (JWT signing, confirmation-code
derivation, permission predicates) from the domain logic. It acts as an
Infrastructure service injected into the Application layer via small interfaces.
*/
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the JWT payload. Custom application claims are abbreviated
// to keep the token small; the username claim is the API's primary identity
// key (user lookups are username-based).
type tokenClaims struct {
	jwt.RegisteredClaims

	Username  string `json:"username"`
	Role      string `json:"rol"`
	Superuser bool   `json:"sup"`
}

// TokenService handles generation and verification of JWT access tokens.
//
// Tokens are signed with HMAC-SHA256 keyed by a shared secret. The service is
// stateless: everything a permission predicate needs (role, superuser flag)
// travels inside the token.
type TokenService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret []byte, issuer string, timeToLive time.Duration) *TokenService {
	return &TokenService{
		secret:     secret,
		issuer:     issuer,
		timeToLive: timeToLive,
	}
}

// GenerateAccessToken creates a new signed JWT for the given identity.
func (service *TokenService) GenerateAccessToken(user AuthClaims) (string, error) {
	currentTime := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.UserID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		Username:  user.Username,
		Role:      string(user.Role),
		Superuser: user.IsSuperuser,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string and
// reconstructs the [AuthClaims] carried inside it.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid subject claim: %w", err)
	}

	return &AuthClaims{
		UserID:      userID,
		Username:    claims.Username,
		Role:        UserRole(claims.Role),
		IsSuperuser: claims.Superuser,
	}, nil
}
