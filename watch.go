package formstate

// watcher is one registered value observer. A nil path set means "watch
// everything"; prev snapshots are not needed because the store only reports
// actual changes.
type watcher struct {
	id    int
	paths map[string]struct{}
	fn    func(values map[string]string)
}

// Watch registers fn as a value observer. With no paths, fn fires on every
// store value change with a full snapshot. With paths, fn fires only when at
// least one watched path's value actually changed, receiving a snapshot
// restricted to the watched paths. Unknown paths fail fast. The returned
// unsubscribe function is safe to call more than once.
func (f *Form) Watch(fn func(values map[string]string), paths ...string) (func(), error) {
	if fn == nil {
		panic("formstate.Watch: callback must not be nil")
	}
	var set map[string]struct{}
	if len(paths) > 0 {
		set = make(map[string]struct{}, len(paths))
		for _, p := range paths {
			if _, ok := f.flat.fields[p]; !ok {
				return nil, unknownField(p)
			}
			set[p] = struct{}{}
		}
	}
	f.mu.Lock()
	f.nextWatchID++
	id := f.nextWatchID
	f.watchers = append(f.watchers, &watcher{id: id, paths: set, fn: fn})
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, w := range f.watchers {
			if w.id == id {
				f.watchers = append(f.watchers[:i], f.watchers[i+1:]...)
				return
			}
		}
	}, nil
}

// notificationsLocked builds the watcher callbacks owed for the given change
// set. Snapshots are taken under the lock; the returned closures must be
// invoked after it is released so callbacks can re-enter the Form.
func (f *Form) notificationsLocked(changed map[string]struct{}) []func() {
	if len(changed) == 0 || len(f.watchers) == 0 {
		return nil
	}
	var out []func()
	for _, w := range f.watchers {
		fn := w.fn
		if w.paths == nil {
			snap := copyValues(f.values)
			out = append(out, func() { fn(snap) })
			continue
		}
		hit := false
		for p := range w.paths {
			if _, ok := changed[p]; ok {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		snap := make(map[string]string, len(w.paths))
		for p := range w.paths {
			snap[p] = f.values[p]
		}
		out = append(out, func() { fn(snap) })
	}
	return out
}
