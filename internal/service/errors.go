package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses. "Not found" covers
// nonexistent, foreign-owned, and mismatched note/version ids alike, so the
// API never reveals whether a foreign record exists.
var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrSharedNoteNotFound = errors.New("shared note not found or sharing is disabled")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
