package formstate

import (
	"context"
	"unicode"
)

// Node is one vertex of a schema tree: either a Field leaf or a nested Group.
type Node interface {
	isNode()
}

// Field describes one input control: a display label, optional description,
// optional default value, a required synchronous-capable validator, and an
// optional asynchronous validator. Fields are immutable once the schema is
// handed to New.
type Field struct {
	Label       string
	Description string
	Default     string
	// Validate runs on the caller's goroutine and should be cheap. It is
	// required; a Field without it is not recognized as a leaf.
	Validate Validator
	// ValidateAsync, when set, runs only after Validate reported success.
	// Expensive or remote checks belong here.
	ValidateAsync Validator
}

func (Field) isNode() {}

// Group is a nested mapping from key to Field or sub-Group. Keys must not be
// empty and must not contain whitespace or the path separator '.'.
type Group map[string]Node

func (Group) isNode() {}

// Validator is the structural contract consumed from validator libraries: a
// nil return means the value is valid, a returned Issues carries structured
// findings, and any other error is normalized into a display message.
type Validator interface {
	Validate(ctx context.Context, value string) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, value string) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(ctx context.Context, value string) error { return f(ctx, value) }

// IsValidKey reports whether key may be used as a schema group key: non-empty,
// no whitespace, and no '.' (reserved as the path separator).
func IsValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r == '.' || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
