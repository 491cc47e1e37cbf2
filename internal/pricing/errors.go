package pricing

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrIndexOutOfRange   = errors.New("cost item index out of range")
	ErrEmptyList         = errors.New("costing list is empty")
	ErrInvalidMultiplier = errors.New("multiplier must be a non-negative number")
	ErrInvalidValue      = errors.New("value must be a non-negative number")
	ErrInvalidPayload    = errors.New("invalid genie data provided")
	ErrMissingGenieData  = errors.New("genie results are not present")
	ErrMissingField      = errors.New("missing required property")
)
