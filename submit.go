package formstate

import "context"

// Submit reconciles captured form entries against the store, validates the
// whole form, and invokes the submit callback only when every field is valid.
//
// Reconciliation per field: when the captured value differs from the store
// value but equals the field's default, that is read as a user revert whose
// change event never reached us (browser autofill quirks) and the store value
// wins; otherwise a captured value wins over the store (the control saw input
// the store has not synced yet); a field with no captured entry keeps its
// store value. Duplicate entry names keep the first occurrence. Entries whose
// name matches no schema path are ignored.
//
// On a valid form the callback receives the resolved values and, unless it
// returns an error, the form resets to its defaults. On an invalid form
// nothing further happens; values and errors stay visible for correction.
func (f *Form) Submit(ctx context.Context, entries []Entry) (bool, error) {
	captured := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, seen := captured[e.Name]; !seen {
			captured[e.Name] = e.Value
		}
	}

	f.mu.Lock()
	resolved := make(map[string]string, len(f.flat.paths))
	changed := map[string]struct{}{}
	for _, p := range f.flat.paths {
		state := f.values[p]
		use := state
		if dom, ok := captured[p]; ok {
			if dom == state || dom != f.flat.defaults[p] {
				use = dom
			}
		}
		resolved[p] = use
		if f.setValueLocked(p, use) {
			changed[p] = struct{}{}
		}
	}
	notes := f.notificationsLocked(changed)
	f.mu.Unlock()
	for _, n := range notes {
		n()
	}

	if !f.validateAll(ctx, resolved) {
		return false, nil
	}
	if f.submit != nil {
		if err := f.submit(ctx, resolved); err != nil {
			return false, err
		}
	}
	f.Reset()
	return true, nil
}

// HandleFocus marks the named field touched and clears its displayed error so
// the user never edits against a stale message. Unknown control names are
// ignored; forms may carry controls outside the schema.
func (f *Form) HandleFocus(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.flat.fields[name]; !ok {
		return
	}
	f.touched[name] = struct{}{}
	delete(f.errors, name)
}

// HandleBlur commits the control's displayed value into the store with the
// usual blur side effects (touched, dirty recompute, validate when dirty).
// Unknown control names are ignored.
func (f *Form) HandleBlur(ctx context.Context, name, value string) {
	if _, ok := f.flat.fields[name]; !ok {
		return
	}
	_ = f.Set(ctx, name, value)
}

// HandleReset is the event-delegation alias for Reset.
func (f *Form) HandleReset() { f.Reset() }
