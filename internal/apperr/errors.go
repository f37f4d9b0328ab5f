// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package apperr defines the sentinel error values shared across the
// intake pipeline. Callers classify failures with errors.Is and wrap these
// with fmt.Errorf("...: %w", ...) to add context.
package apperr

import "errors"

var (
	// ErrInvalidNumber marks a patent number that failed validation.
	// Surfaced immediately, never retried.
	ErrInvalidNumber = errors.New("invalid patent number")

	// ErrAuth marks a credential or token failure after internal retries.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound marks a document the upstream service does not have.
	ErrNotFound = errors.New("not found")

	// ErrUpstream marks a transport or availability failure against the
	// patent data API after bounded retries.
	ErrUpstream = errors.New("upstream request failed")

	// ErrUnreadable marks a document with no extractable text layer.
	ErrUnreadable = errors.New("unreadable document")
)
