package domain

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrNotOwner       = errors.New("marker owned by another participant")
)
