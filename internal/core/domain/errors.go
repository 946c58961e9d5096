package domain

import "errors"

// Cross-cutting failures shared by every component.
var (
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidStatus   = errors.New("unknown order status")
)

// Auth / identity resolver failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
