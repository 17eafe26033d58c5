package formstate

import (
	"context"
	"strings"

	"github.com/ostrander/formstate/i18n"
)

// messageFor normalizes a validator outcome into a display message. Empty
// string means valid. Structured Issues contribute the first non-blank
// message; otherwise the error's own text is used; a blank text falls back to
// the fixed validation_failed message so a failure is never silent.
func messageFor(err error) string {
	if err == nil {
		return ""
	}
	if iss, ok := AsIssues(err); ok {
		for _, it := range iss {
			if m := strings.TrimSpace(it.Message); m != "" {
				return m
			}
		}
	}
	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return i18n.T(CodeValidationFailed, nil)
}

// panicMessage converts a recovered panic value into a display message.
func panicMessage(r any) string {
	switch t := r.(type) {
	case error:
		return messageFor(t)
	case string:
		if m := strings.TrimSpace(t); m != "" {
			return m
		}
	}
	return i18n.T(CodeValidationFailed, nil)
}

// check runs the field's validators against value and returns the display
// message ("" = valid). The asynchronous validator runs only after the
// synchronous one succeeded, so remote checks never see syntactically invalid
// input. Panics are contained and surfaced as messages; nothing escapes.
func (fd Field) check(ctx context.Context, value string) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = panicMessage(r)
		}
	}()
	if fd.Validate != nil {
		if m := messageFor(fd.Validate.Validate(ctx, value)); m != "" {
			return m
		}
	}
	if fd.ValidateAsync != nil {
		return messageFor(fd.ValidateAsync.Validate(ctx, value))
	}
	return ""
}
