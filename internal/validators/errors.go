package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoAppData        = errors.New("no data provided")
	ErrNoLocalTimestamp = errors.New("no local timestamp provided")
	ErrNoUserID         = errors.New("no user ID was given")
)
