package feedback

import "errors"

// Sentinel kinds for feedback errors.
var (
	ErrEmptyAPIKey = errors.New("empty API key")
)
