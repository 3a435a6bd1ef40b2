package dispatcher

import "errors"

var (
	ErrBusy           = errors.New("dispatcher.busy")
	ErrPrecheckFailed = errors.New("dispatcher.precheck_failed")
	ErrSendFailed     = errors.New("dispatcher.send_failed")
	ErrInvalidConfig  = errors.New("dispatcher.invalid_config")
)

// RemoteError is a failure reported by the receiving endpoint with a
// message meant for the user.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "dispatcher: remote rejected submission: " + e.Message
}

// PrecheckError carries the user-facing reason a submission was refused
// locally.
type PrecheckError struct {
	Message string
}

func (e *PrecheckError) Error() string { return e.Message }

func (e *PrecheckError) Unwrap() error { return ErrPrecheckFailed }
