package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("contestant not found")
	ErrStore    = errors.New("store operation failed")
)
