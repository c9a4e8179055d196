package seller

import (
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	err := NewError(ErrKindNotFound, "Seller not found")

	if !IsKind(err, ErrKindNotFound) {
		t.Error("Expected IsKind to match the error's kind")
	}
	if IsKind(err, ErrKindConflict) {
		t.Error("Expected IsKind to reject a different kind")
	}
	if IsKind(nil, ErrKindNotFound) {
		t.Error("Expected IsKind to reject nil")
	}

	wrapped := fmt.Errorf("lookup failed: %w", err)
	if !IsKind(wrapped, ErrKindNotFound) {
		t.Error("Expected IsKind to unwrap wrapped errors")
	}
}

func TestNewMissingFieldsError(t *testing.T) {
	err := NewMissingFieldsError([]string{"Business Name", "Business Phone"})

	expected := "Missing required fields: Business Name, Business Phone"
	if err.Error() != expected {
		t.Errorf("Expected message %q, got %q", expected, err.Error())
	}

	domainErr, ok := AsError(err)
	if !ok {
		t.Fatal("Expected AsError to recover the typed error")
	}
	if len(domainErr.Fields) != 2 {
		t.Errorf("Expected 2 fields, got %d", len(domainErr.Fields))
	}
}
