package content

import (
	domainerr "alepc/internal/domain/errors"
)

// Edit is an optional field update: either keep the current value or set a new one.
type Edit[T any] struct {
	value T
	set   bool
}

func Keep[T any]() Edit[T] { return Edit[T]{} }

func Set[T any](v T) Edit[T] { return Edit[T]{value: v, set: true} }

func (e Edit[T]) Get() (T, bool) { return e.value, e.set }

func (e Edit[T]) IsSet() bool { return e.set }

func (e Edit[T]) Or(old T) T {
	if e.set {
		return e.value
	}
	return old
}

// Edits carries the full-edit answers. Image is a path as typed by the operator.
type Edits struct {
	Slug        Edit[string]
	Title       Edit[string]
	Description Edit[string]
	Image       Edit[string]
	Tags        Edit[[]string]
	Draft       Edit[bool]
}

type UpdateSelection struct {
	All          bool
	ModifiedDate bool
	DraftStatus  bool
}

// Validate requires at least one category; All excludes the other two.
func (s UpdateSelection) Validate() error {
	if !s.All && !s.ModifiedDate && !s.DraftStatus {
		return domainerr.Validation("choose at least one thing to update")
	}
	if s.All && (s.ModifiedDate || s.DraftStatus) {
		return domainerr.Validation("showing all properties cannot be combined with other choices")
	}
	return nil
}

func (s UpdateSelection) FastPath() bool {
	return !s.All
}
