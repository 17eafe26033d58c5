package formstate

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired         = "required"
	CodeTooShort         = "too_short"
	CodeTooLong          = "too_long"
	CodePattern          = "pattern"
	CodeInvalidEnum      = "invalid_enum"
	CodeInvalidFormat    = "invalid_format"
	CodeValidationFailed = "validation_failed"
	// Schema authoring errors (programmer misuse, fail fast)
	CodeBadKey        = "bad_key"
	CodeDepthExceeded = "depth_exceeded"
	CodeUnknownField  = "unknown_field"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dot-joined field path (for example: user.contact.email).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":3, "got":1}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path == "" {
			b.WriteString(it.Code)
			continue
		}
		// e.g. required at user.contact.email
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
