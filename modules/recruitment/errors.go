package recruitment

import "errors"

var (
	ErrInvalidConfig = errors.New("recruitment.invalid_config")
	ErrNoInterest    = errors.New("recruitment.no_interest")
)
