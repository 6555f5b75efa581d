package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidSyntax, "expected ']' at position %d", 6)
	want := "INVALID_SYNTAX: expected ']' at position 6"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write export")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	want := "INTERNAL_ERROR: write export: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCycleRejected, "attach would create cycle")

	if !Is(err, ErrCodeCycleRejected) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeCycleRejected) {
		t.Error("Is() matched a plain error")
	}

	// Matches through wrapping layers.
	outer := fmt.Errorf("request failed: %w", err)
	if !Is(outer, ErrCodeCycleRejected) {
		t.Error("Is() should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNodeNotFound, "node 42")); got != ErrCodeNodeNotFound {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNodeNotFound)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidLabel, "label cannot be empty")); got != "label cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"simple", "NP", false},
		{"unicode", "müde", false},
		{"punctuation", "N'", false},
		{"empty", "", true},
		{"control char", "NP\x00", true},
		{"newline", "N\nP", true},
		{"too long", string(make([]byte, 300)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestRoundTrippableLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"NP", true},
		{"N'", true},
		{"two words", false},
		{"semi[colon", false},
		{"clo]se", false},
		{"tab\there", false},
	}
	for _, tt := range tests {
		if got := RoundTrippableLabel(tt.label); got != tt.want {
			t.Errorf("RoundTrippableLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
