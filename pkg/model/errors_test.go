package model

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrNotFound, Message: "Product '7' not found"}
	want := "NOT_FOUND: Product '7' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Product", "42")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "Product '42' not found" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewUnavailableError(t *testing.T) {
	err := NewUnavailableError("store", errors.New("database is locked"))
	want := "UNAVAILABLE: store unavailable: database is locked"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
