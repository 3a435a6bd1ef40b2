package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email.failed_to_send")
	ErrInvalidConfig     = errors.New("email.invalid_config")
	ErrInvalidMessage    = errors.New("email.invalid_message")
	ErrUnknownDriver     = errors.New("email.unknown_driver")
	ErrRejected          = errors.New("email.rejected")
)
