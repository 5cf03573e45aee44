package applications

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrUnknownView   = errors.New("unknown view")
)
