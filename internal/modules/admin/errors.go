package admin

import "errors"

var (
	ErrInvalidStatusTransition = errors.New("booking is not pending")
	ErrConfirmationRequired    = errors.New("delete requires explicit confirmation")
)
