// Package apperr defines the error values shared by the domain services.
package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports every failing input field at once, keyed by
// field name, so a form can highlight all of them in a single round trip.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure for a field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError signals that an id does not resolve in its repository.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// InconsistentStateError signals a cross-entity reference that no longer
// resolves, e.g. a report whose test was deleted. It is surfaced rather
// than silently skipped so callers can distinguish "legitimately empty"
// from "referenced entity missing".
type InconsistentStateError struct {
	Resource string
	ID       string
	Detail   string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent state: %s %s: %s", e.Resource, e.ID, e.Detail)
}

func Inconsistent(resource, id, detail string) *InconsistentStateError {
	return &InconsistentStateError{Resource: resource, ID: id, Detail: detail}
}
