package formstate

// Package formstate binds a declarative field schema to form input controls
// and tracks value, validation, touched/dirty flags, and submission for one
// form instance.
//
// It provides:
//
// - A schema model (Field / Group) flattened into dot-joined paths
// - A per-form state store with race-safe async validation (last dispatch wins)
// - Submit-time reconciliation of captured form entries against store state
// - A watch registry for observing value changes
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place the schema builder under dsl/, expression rules under rule/,
//   file-based schema loading under schemafile/, and the CLI under
//   cmd/formstate.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	form, err := formstate.New(schema, onSubmit)
//	form.HandleBlur(ctx, "user.contact.email", "a@b.com")
//	ok, err := form.Submit(ctx, entries)
