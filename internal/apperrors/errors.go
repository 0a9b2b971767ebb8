// Package apperrors holds sentinel errors for handlers to map to HTTP status.
package apperrors

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrInvalidSort     = errors.New("unsortable column")
	ErrInvalidInput    = errors.New("invalid request input")
)
