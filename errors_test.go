package formstate_test

import (
	"fmt"
	"strings"
	"testing"

	formstate "github.com/ostrander/formstate"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := formstate.Issues{
		{Path: "a", Code: formstate.CodeRequired},
		{Path: "b", Code: formstate.CodeTooShort},
		{Path: "c", Code: formstate.CodeTooLong},
		{Path: "d", Code: formstate.CodePattern},
	}
	s := iss.Error()
	if s == "" || !strings.Contains(s, "required at a") {
		t.Fatalf("unexpected summary %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("expected truncation note, got %q", s)
	}
	if formstate.Issues(nil).Error() != "" {
		t.Fatalf("empty issues must stringify empty")
	}
}

func TestAsIssues(t *testing.T) {
	var err error = formstate.AppendIssues(nil, formstate.Issue{Code: formstate.CodeRequired})
	wrapped := fmt.Errorf("wrap: %w", err)
	iss, ok := formstate.AsIssues(wrapped)
	if !ok || len(iss) != 1 || iss[0].Code != formstate.CodeRequired {
		t.Fatalf("expected issues through wrapping, got %v %v", iss, ok)
	}
	if _, ok := formstate.AsIssues(nil); ok {
		t.Fatalf("nil is not issues")
	}
	if _, ok := formstate.AsIssues(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error is not issues")
	}
}
