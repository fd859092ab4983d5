package report

import "errors"

// Package sentinel errors.
var (
	// ErrEmptyPayload indicates the payload kind has no matching document.
	ErrEmptyPayload = errors.New("payload document missing")
	// ErrUnknownKind indicates an unrecognized payload kind.
	ErrUnknownKind = errors.New("unknown payload kind")
	// ErrEncodePayload indicates the payload could not be serialized.
	ErrEncodePayload = errors.New("failed to encode payload")
)
