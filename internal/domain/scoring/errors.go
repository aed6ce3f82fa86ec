package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrInvalidRubric = errors.New("invalid rubric")
	ErrOutOfRange    = errors.New("rating out of range")
	ErrNegativeCount = errors.New("negative interaction count")
)
