// Package dsl provides a fluent builder for formstate schema trees.
//
// Typical usage:
//
//	schema, err := dsl.Group().
//		Field("email", dsl.Text("Email").Validate(rule.Required())).
//		Group("user", dsl.Group().
//			Field("name", dsl.Text("Name").Default("anonymous").Validate(rule.MinLen(2)))).
//		Build()
package dsl

import (
	formstate "github.com/ostrander/formstate"
	"github.com/ostrander/formstate/i18n"
)

// GroupBuilder accumulates keyed fields and nested groups.
type GroupBuilder struct {
	nodes formstate.Group
	err   error
}

// Group creates a new empty group builder.
func Group() *GroupBuilder {
	return &GroupBuilder{nodes: formstate.Group{}}
}

// Field registers a field under key. Invalid keys surface at Build.
func (b *GroupBuilder) Field(key string, fb *FieldBuilder) *GroupBuilder {
	if b.err == nil && !formstate.IsValidKey(key) {
		b.err = badKey(key)
		return b
	}
	b.nodes[key] = fb.field
	return b
}

// Group nests another builder under key.
func (b *GroupBuilder) Group(key string, nested *GroupBuilder) *GroupBuilder {
	if b.err == nil && !formstate.IsValidKey(key) {
		b.err = badKey(key)
		return b
	}
	if nested.err != nil && b.err == nil {
		b.err = nested.err
	}
	b.nodes[key] = nested.nodes
	return b
}

// Build returns the accumulated schema tree, or the first key error.
func (b *GroupBuilder) Build() (formstate.Group, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.nodes, nil
}

// MustBuild is Build panicking on error.
func (b *GroupBuilder) MustBuild() formstate.Group {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}

func badKey(key string) error {
	return formstate.Issues{{
		Path:    key,
		Code:    formstate.CodeBadKey,
		Message: i18n.T(formstate.CodeBadKey, map[string]string{"key": key}),
		Params:  map[string]any{"key": key},
	}}
}

// FieldBuilder accumulates one field definition.
type FieldBuilder struct {
	field formstate.Field
}

// Text starts a field with the given display label.
func Text(label string) *FieldBuilder {
	return &FieldBuilder{field: formstate.Field{Label: label}}
}

// Describe sets the field description.
func (fb *FieldBuilder) Describe(s string) *FieldBuilder {
	fb.field.Description = s
	return fb
}

// Default sets the default value, coerced to its string display form.
func (fb *FieldBuilder) Default(v any) *FieldBuilder {
	fb.field.Default = formstate.InputString(v)
	return fb
}

// Validate sets the synchronous validator.
func (fb *FieldBuilder) Validate(v formstate.Validator) *FieldBuilder {
	fb.field.Validate = v
	return fb
}

// ValidateAsync sets the asynchronous validator, run only after Validate
// succeeds.
func (fb *FieldBuilder) ValidateAsync(v formstate.Validator) *FieldBuilder {
	fb.field.ValidateAsync = v
	return fb
}
