package formstate

import (
	"context"
	"strings"
	"sync"

	"github.com/ostrander/formstate/i18n"
)

// SubmitFunc receives the resolved value set of a valid submission. A non-nil
// error aborts the post-submit reset so the form keeps its state for retry.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Form is the state store for one form instance: current values, error
// messages, touched/dirty/validating flags, and the token ledger that keeps
// concurrent validations race-safe. All methods are safe for concurrent use.
//
// Multiple forms on one page get fully independent Form instances; there is
// no shared state between them.
type Form struct {
	mu   sync.Mutex
	flat *flatSchema

	values map[string]string
	// errors distinguishes "never validated" (key absent) from "validated
	// clean" (key present, empty message).
	errors     map[string]string
	touched    map[string]struct{}
	dirty      map[string]struct{}
	validating map[string]struct{}

	// tokens and gen form the validation token ledger: a completion commits
	// only while both its per-field token and the run generation captured at
	// dispatch are still current. Reset bumps gen to invalidate everything
	// in flight at once.
	tokens map[string]uint64
	gen    uint64

	submit SubmitFunc

	watchers    []*watcher
	nextWatchID int
}

// New flattens the schema and returns a Form seeded with the flattened
// defaults. submit may be nil when the caller only wants validation state.
func New(schema Group, submit SubmitFunc) (*Form, error) {
	flat, err := flatten(schema)
	if err != nil {
		return nil, err
	}
	f := &Form{
		flat:       flat,
		values:     make(map[string]string, len(flat.defaults)),
		errors:     map[string]string{},
		touched:    map[string]struct{}{},
		dirty:      map[string]struct{}{},
		validating: map[string]struct{}{},
		tokens:     map[string]uint64{},
		submit:     submit,
	}
	for p, def := range flat.defaults {
		f.values[p] = def
	}
	return f, nil
}

// MustNew is New panicking on schema errors.
func MustNew(schema Group, submit SubmitFunc) *Form {
	f, err := New(schema, submit)
	if err != nil {
		panic(err)
	}
	return f
}

func unknownField(path string) error {
	return Issues{{
		Path:    path,
		Code:    CodeUnknownField,
		Message: i18n.T(CodeUnknownField, map[string]string{"key": path}),
	}}
}

// ---- read accessors ----

// Paths returns every flattened field path in deterministic schema order.
func (f *Form) Paths() []string {
	return append([]string(nil), f.flat.paths...)
}

// Values returns a snapshot of all current values.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyValues(f.values)
}

// Value returns the current value for path ("" for unknown paths).
func (f *Form) Value(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[path]
}

// ErrorText returns the current error message for path; "" means no error
// (either validated clean or never validated).
func (f *Form) ErrorText(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[path]
}

// Touched reports whether path has received focus or a programmatic set
// since the last reset.
func (f *Form) Touched(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.touched[path]
	return ok
}

// Dirty reports whether path's current value differs from its default. This
// is a live comparison: reverting to the default clears it.
func (f *Form) Dirty(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.dirty[path]
	return ok
}

// Validating reports whether a validation dispatched for path has not yet
// committed or been superseded.
func (f *Form) Validating(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.validating[path]
	return ok
}

// FieldState is the per-field descriptor handed to a UI layer.
type FieldState struct {
	Name        string // the path itself, usable as a control name
	Label       string
	Description string
	Value       string // live display value
	Error       string
	Touched     bool
	Dirty       bool
	Validating  bool
	// Deterministic identifiers for the field's description and error nodes,
	// for accessible markup wiring.
	DescriptionID string
	ErrorID       string
}

// State returns the descriptor for path. Unknown paths are programmer
// errors and fail fast.
func (f *Form) State(path string) (FieldState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fd, ok := f.flat.fields[path]
	if !ok {
		return FieldState{}, unknownField(path)
	}
	base := strings.ReplaceAll(path, ".", "-")
	_, touched := f.touched[path]
	_, dirty := f.dirty[path]
	_, validating := f.validating[path]
	return FieldState{
		Name:          path,
		Label:         fd.Label,
		Description:   fd.Description,
		Value:         f.values[path],
		Error:         f.errors[path],
		Touched:       touched,
		Dirty:         dirty,
		Validating:    validating,
		DescriptionID: base + "-description",
		ErrorID:       base + "-error",
	}, nil
}

// FieldError is one entry of an error listing.
type FieldError struct {
	Path    string
	Message string
	Label   string
}

// FieldErrors lists every field currently carrying a non-empty error, in
// schema order. With paths given, the listing is restricted to those fields;
// an unknown path fails fast.
func (f *Form) FieldErrors(paths ...string) ([]FieldError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var filter map[string]struct{}
	if len(paths) > 0 {
		filter = make(map[string]struct{}, len(paths))
		for _, p := range paths {
			if _, ok := f.flat.fields[p]; !ok {
				return nil, unknownField(p)
			}
			filter[p] = struct{}{}
		}
	}
	var out []FieldError
	for _, p := range f.flat.paths {
		if filter != nil {
			if _, ok := filter[p]; !ok {
				continue
			}
		}
		if msg := f.errors[p]; msg != "" {
			out = append(out, FieldError{Path: p, Message: msg, Label: f.flat.fields[p].Label})
		}
	}
	return out, nil
}

// ---- mutators ----

// MarkTouched marks path touched. Idempotent; unknown paths fail fast.
func (f *Form) MarkTouched(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flat.fields[path]; !ok {
		return unknownField(path)
	}
	f.touched[path] = struct{}{}
	return nil
}

// SetError overrides path's error message, for validation results computed
// outside the scheduler (for example server round-trip responses). An empty
// message records "validated clean".
func (f *Form) SetError(path, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flat.fields[path]; !ok {
		return unknownField(path)
	}
	f.errors[path] = message
	return nil
}

// ClearError removes path's error entry entirely, restoring the
// "never validated" state.
func (f *Form) ClearError(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flat.fields[path]; !ok {
		return unknownField(path)
	}
	delete(f.errors, path)
	return nil
}

// Set assigns path's value programmatically with the same side effects as a
// blur: the field is marked touched, dirty is recomputed against the default,
// and single-field validation runs when the value is dirty.
func (f *Form) Set(ctx context.Context, path, value string) error {
	f.mu.Lock()
	if _, ok := f.flat.fields[path]; !ok {
		f.mu.Unlock()
		return unknownField(path)
	}
	f.touched[path] = struct{}{}
	var notes []func()
	if f.setValueLocked(path, value) {
		notes = f.notificationsLocked(map[string]struct{}{path: {}})
	}
	_, dirty := f.dirty[path]
	f.mu.Unlock()
	for _, n := range notes {
		n()
	}
	if dirty {
		_, _ = f.ValidateField(ctx, path)
	}
	return nil
}

// Reset restores all values to the flattened defaults, clears error, touched,
// dirty, and validating state, and bumps the run generation so every
// in-flight validation result is discarded on arrival.
func (f *Form) Reset() {
	f.mu.Lock()
	f.gen++
	changed := map[string]struct{}{}
	for _, p := range f.flat.paths {
		def := f.flat.defaults[p]
		if f.values[p] != def {
			changed[p] = struct{}{}
		}
		f.values[p] = def
	}
	f.errors = map[string]string{}
	f.touched = map[string]struct{}{}
	f.dirty = map[string]struct{}{}
	f.validating = map[string]struct{}{}
	notes := f.notificationsLocked(changed)
	f.mu.Unlock()
	for _, n := range notes {
		n()
	}
}

// setValueLocked commits a value and recomputes the dirty flag. Returns false
// without touching anything when the value is unchanged, so callers skip
// redundant notification.
func (f *Form) setValueLocked(path, value string) bool {
	if f.values[path] == value {
		return false
	}
	f.values[path] = value
	if value == f.flat.defaults[path] {
		delete(f.dirty, path)
	} else {
		f.dirty[path] = struct{}{}
	}
	return true
}

// ---- validation scheduler ----

// ValidateField validates path against its current value. A new dispatch
// supersedes any in-flight validation for the same field; a superseded or
// reset-invalidated completion is discarded and reported as not valid.
func (f *Form) ValidateField(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	fd, ok := f.flat.fields[path]
	if !ok {
		f.mu.Unlock()
		return false, unknownField(path)
	}
	value := f.values[path]
	f.tokens[path]++
	tok := f.tokens[path]
	gen := f.gen
	f.validating[path] = struct{}{}
	f.mu.Unlock()

	msg := fd.check(ctx, value)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.tokens[path] != tok {
		// A newer dispatch or a reset owns this field now. The validating
		// flag belongs to the newer owner, so leave it alone.
		return false, nil
	}
	f.errors[path] = msg
	delete(f.validating, path)
	return msg == "", nil
}

// ValidateForm validates every field against the current values, in
// parallel, and commits the resulting messages as one batch.
func (f *Form) ValidateForm(ctx context.Context) bool {
	return f.validateAll(ctx, nil)
}

// validateAll runs one validation per field over the given snapshot (nil =
// snapshot the store). Per-field tokens are recorded at dispatch; a field
// whose token advanced mid-batch keeps its previous error and counts as not
// proven valid. Errors commit in a single locked section to avoid
// intermediate flicker.
func (f *Form) validateAll(ctx context.Context, snapshot map[string]string) bool {
	f.mu.Lock()
	if snapshot == nil {
		snapshot = copyValues(f.values)
	}
	gen := f.gen
	toks := make(map[string]uint64, len(f.flat.paths))
	for _, p := range f.flat.paths {
		f.tokens[p]++
		toks[p] = f.tokens[p]
		f.validating[p] = struct{}{}
	}
	f.mu.Unlock()

	paths := f.flat.paths
	msgs := make([]string, len(paths))
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			msgs[i] = f.flat.fields[p].check(ctx, snapshot[p])
		}(i, p)
	}
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	valid := true
	for i, p := range paths {
		if f.gen != gen || f.tokens[p] != toks[p] {
			valid = false
			continue
		}
		f.errors[p] = msgs[i]
		delete(f.validating, p)
		if msgs[i] != "" {
			valid = false
		}
	}
	return valid
}

func copyValues(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
