package domain

import "errors"

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotApproved = errors.New("account not approved")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Registration workflow errors
var (
	ErrRequestNotFound   = errors.New("registration request not found")
	ErrInvalidState      = errors.New("registration request already resolved")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already taken")
)

// User management errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrSuperAdminProtected = errors.New("super admin cannot be modified this way")
)
