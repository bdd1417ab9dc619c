package repository

import "errors"

// Sentinel kinds for job store errors.
var (
	ErrNotFound = errors.New("batch not found")
	ErrExists   = errors.New("batch already exists")
	ErrFull     = errors.New("batch store full")
)
