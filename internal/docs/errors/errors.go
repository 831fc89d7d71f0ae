package errors

// Package errors provides sentinel errors for source corpus discovery.
// These enable consistent classification of pass 1 precondition failures.

import "errors"

var (
	// ErrCorpusNotFound indicates the configured source directory does not exist or is not a directory.
	ErrCorpusNotFound = errors.New("source corpus not found")

	// ErrCorpusWalkFailed indicates filesystem traversal of the source directory failed.
	ErrCorpusWalkFailed = errors.New("source corpus walk failed")

	// ErrFileReadFailed indicates reading a discovered source document failed.
	ErrFileReadFailed = errors.New("source document read failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the corpus root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
