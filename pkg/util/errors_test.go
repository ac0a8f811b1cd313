package util

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_Single(t *testing.T) {
	err := NewValidationError("name must not be empty")
	if !strings.Contains(err.Error(), "name must not be empty") {
		t.Errorf("Error() = %q, missing message", err.Error())
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("ValidationError should unwrap to ErrValidationFailed")
	}
}

func TestValidationError_Multiple(t *testing.T) {
	err := NewValidationError("bad name", "bad address")
	msg := err.Error()
	if !strings.Contains(msg, "bad name") || !strings.Contains(msg, "bad address") {
		t.Errorf("Error() = %q, should list every failure", msg)
	}
}

func TestValidationBuilder(t *testing.T) {
	var b ValidationBuilder
	b.Add(true, "should not appear")
	b.Add(false, "duplicate interface name")
	b.AddErrorf("address %s outside %s", "192.168.123.10", "192.168.122.0/24")

	if !b.HasErrors() {
		t.Fatal("builder should have errors")
	}
	err := b.Build()
	if err == nil {
		t.Fatal("Build() should return an error")
	}
	if strings.Contains(err.Error(), "should not appear") {
		t.Error("passing condition must not be recorded")
	}
}

func TestValidationBuilder_Empty(t *testing.T) {
	var b ValidationBuilder
	if err := b.Build(); err != nil {
		t.Errorf("empty builder should build nil, got %v", err)
	}
}
