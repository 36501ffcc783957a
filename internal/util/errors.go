package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrNotAllowlisted   = errors.New("email is not on the allowlist")
	ErrPermissionDenied = errors.New("permission denied")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrActivityNotFound = errors.New("activity record not found")
	ErrNegativeMinutes  = errors.New("minutes must not be negative")
	ErrInvalidCategory  = errors.New("category must be study, skill or exercise")
)
