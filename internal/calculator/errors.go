package calculator

import "errors"

// Contract violations. The engines never attempt a partial computation
// when one of these is returned.
var (
	ErrNoParticipants       = errors.New("must have at least one participant")
	ErrDuplicateParticipant = errors.New("duplicate participant id")
	ErrUnknownPayer         = errors.New("payer is not a trip participant")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrInvalidHeadcount     = errors.New("number of people must be at least one")
	ErrForecastComponents   = errors.New("forecast components exceed the estimated total")
)
