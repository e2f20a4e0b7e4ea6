package vmt

import "errors"

var (
	// ErrMalformed indicates a tokenizer or parser failure on document input.
	ErrMalformed = errors.New("malformed document")

	// ErrMissingInclude indicates a patch document without an include path.
	ErrMissingInclude = errors.New("patch missing include")
)
