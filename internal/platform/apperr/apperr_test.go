package apperr

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_CollectsAllFields(t *testing.T) {
	v := NewValidationError()
	if v.HasErrors() {
		t.Error("fresh validation error should be empty")
	}
	v.Add("name", "name is required")
	v.Add("age", "age must be between 1 and 120")
	v.Add("name", "shadowed")
	if len(v.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(v.Fields))
	}
	if v.Fields["name"] != "name is required" {
		t.Errorf("first message per field must win, got %q", v.Fields["name"])
	}
	msg := v.Error()
	if !strings.Contains(msg, "age") || !strings.Contains(msg, "name") {
		t.Errorf("error message should mention every field: %q", msg)
	}
}

func TestNotFound_AsError(t *testing.T) {
	err := error(NotFound("invoice", "i123"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("errors.As should match NotFoundError")
	}
	if nf.Resource != "invoice" || nf.ID != "i123" {
		t.Errorf("unexpected fields: %+v", nf)
	}
}

func TestInconsistent_Message(t *testing.T) {
	err := Inconsistent("report", "r1", "test t9 no longer exists")
	if !strings.Contains(err.Error(), "t9 no longer exists") {
		t.Errorf("detail missing from message: %q", err.Error())
	}
}
