package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAmountMismatch    = errors.New("total bid amount does not match fee components")
	ErrNotParticipant    = errors.New("not a thread participant")
)
