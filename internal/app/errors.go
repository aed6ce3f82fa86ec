package service

import "errors"

// Sentinel kinds for submission errors.
var (
	ErrValidation          = errors.New("invalid submission")
	ErrDuplicateSubmission = errors.New("submission already in flight")
)
