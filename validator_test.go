package formstate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	formstate "github.com/ostrander/formstate"
)

// singleField builds a one-field form for exercising validator outcomes.
func singleField(t *testing.T, sync, async formstate.Validator) *formstate.Form {
	t.Helper()
	f, err := formstate.New(formstate.Group{
		"name": formstate.Field{Label: "Name", Validate: sync, ValidateAsync: async},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestValidateField_FirstNonBlankIssueMessage(t *testing.T) {
	v := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		return formstate.Issues{
			{Code: formstate.CodeRequired, Message: "   "},
			{Code: formstate.CodeTooShort, Message: "too short"},
			{Code: formstate.CodePattern, Message: "unseen"},
		}
	})
	f := singleField(t, v, nil)
	ok, err := f.ValidateField(context.Background(), "name")
	if err != nil {
		t.Fatalf("ValidateField: %v", err)
	}
	if ok {
		t.Fatalf("expected invalid")
	}
	if got := f.ErrorText("name"); got != "too short" {
		t.Fatalf("expected first non-blank issue message, got %q", got)
	}
}

func TestValidateField_PlainErrorMessage(t *testing.T) {
	v := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		return errors.New("  boom  ")
	})
	f := singleField(t, v, nil)
	if _, err := f.ValidateField(context.Background(), "name"); err != nil {
		t.Fatalf("ValidateField: %v", err)
	}
	if got := f.ErrorText("name"); got != "boom" {
		t.Fatalf("expected trimmed error text, got %q", got)
	}
}

func TestValidateField_BlankErrorFallsBack(t *testing.T) {
	v := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		return errors.New("   ")
	})
	f := singleField(t, v, nil)
	if _, err := f.ValidateField(context.Background(), "name"); err != nil {
		t.Fatalf("ValidateField: %v", err)
	}
	if got := f.ErrorText("name"); got != "validation failed" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestValidateField_PanicContained(t *testing.T) {
	v := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		panic("validator blew up")
	})
	f := singleField(t, v, nil)
	ok, err := f.ValidateField(context.Background(), "name")
	if err != nil {
		t.Fatalf("panic must not escape: %v", err)
	}
	if ok {
		t.Fatalf("expected invalid")
	}
	if got := f.ErrorText("name"); got != "validator blew up" {
		t.Fatalf("expected panic text as message, got %q", got)
	}
}

func TestValidateField_SyncGatesAsync(t *testing.T) {
	var asyncCalls atomic.Int64
	async := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		asyncCalls.Add(1)
		return nil
	})
	failing := formstate.ValidatorFunc(func(ctx context.Context, value string) error {
		return errors.New("sync says no")
	})
	f := singleField(t, failing, async)
	if _, err := f.ValidateField(context.Background(), "name"); err != nil {
		t.Fatalf("ValidateField: %v", err)
	}
	if asyncCalls.Load() != 0 {
		t.Fatalf("async validator ran against sync-invalid input")
	}

	f2 := singleField(t, okValidator(), async)
	ok, err := f2.ValidateField(context.Background(), "name")
	if err != nil || !ok {
		t.Fatalf("ValidateField: ok=%v err=%v", ok, err)
	}
	if asyncCalls.Load() != 1 {
		t.Fatalf("async validator should run once after sync success, got %d", asyncCalls.Load())
	}
}

func TestValidateField_UnknownPathFailsFast(t *testing.T) {
	f := singleField(t, okValidator(), nil)
	if _, err := f.ValidateField(context.Background(), "missing"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
