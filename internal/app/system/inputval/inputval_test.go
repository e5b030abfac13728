package inputval

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name+tag@example.co.uk", true},
		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"us er@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	err := Required("name", "  ")
	if err == nil {
		t.Fatal("expected error for blank value")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Errorf("expected ValidationError for field name, got %v", err)
	}
	if Required("name", "Ada") != nil {
		t.Error("expected nil for non-blank value")
	}
}

func TestIsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("checkout: %w", New("size", "is required"))
	if !IsValidation(err) {
		t.Error("expected wrapped ValidationError to be detected")
	}
	if IsValidation(errors.New("boom")) {
		t.Error("plain error should not be a validation error")
	}
}

func TestValidationError_Message(t *testing.T) {
	if got := New("size", "is required").Error(); got != "size: is required" {
		t.Errorf("Error(): got %q", got)
	}
	if got := New("", "cart is empty").Error(); got != "cart is empty" {
		t.Errorf("Error() without field: got %q", got)
	}
}

func TestFirst(t *testing.T) {
	a := New("a", "bad")
	if First(nil, a, New("b", "bad")) != a {
		t.Error("First should return the first non-nil error")
	}
	if First(nil, nil) != nil {
		t.Error("First of nils should be nil")
	}
}

func TestURL(t *testing.T) {
	valid := []string{"", "https://youtu.be/abc", "http://club.org/x?y=1"}
	for _, v := range valid {
		if err := URL("videoUrl", v); err != nil {
			t.Errorf("URL(%q): unexpected error %v", v, err)
		}
	}
	invalid := []string{"javascript:alert(1)", "club.org", "ftp://club.org/file", "https://"}
	for _, v := range invalid {
		if err := URL("videoUrl", v); !IsValidation(err) {
			t.Errorf("URL(%q): expected validation error, got %v", v, err)
		}
	}
}
