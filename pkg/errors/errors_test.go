package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "duplicate node id: %s", "aspirin")

	if got := err.Error(); !strings.Contains(got, "INVALID_GRAPH") || !strings.Contains(got, "aspirin") {
		t.Errorf("Error() = %q, want code and message", got)
	}
	if err.Unwrap() != nil {
		t.Error("unwrapped New error should have no cause")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "save snapshot %q", "baseline")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); !strings.Contains(got, "disk full") {
		t.Errorf("Error() = %q, want cause included", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeSnapshotNotFound, "no snapshot %q", "missing")

	if !Is(err, ErrCodeSnapshotNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInvalidGraph) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match non-structured errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidLayout, "layout mismatch")
	outer := Wrap(ErrCodeStorage, inner, "loading cached layout")

	// The outermost structured error wins.
	if !Is(outer, ErrCodeStorage) {
		t.Error("Is should report the outer code")
	}
	if got := GetCode(outer); got != ErrCodeStorage {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeStorage)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty for plain errors", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidDataset, stderrors.New("unexpected EOF"), "reading graph document")

	if got := UserMessage(err); got != "reading graph document" {
		t.Errorf("UserMessage() = %q, want message without code or cause", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want error string for plain errors", got)
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "baseline", wantErr: false},
		{name: "with spaces", input: "aspirin study 3", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "traversal", input: "../escape", wantErr: true},
		{name: "path separator", input: "a/b", wantErr: true},
		{name: "backslash", input: "a\\b", wantErr: true},
		{name: "nul byte", input: "nul\x00byte", wantErr: true},
		{name: "control char", input: "tab\there", wantErr: true},
		{name: "too long", input: strings.Repeat("x", 129), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("validation error should carry %s, got %s", ErrCodeInvalidInput, GetCode(err))
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	if err := ValidateNodeID("DB00945"); err != nil {
		t.Errorf("ValidateNodeID() unexpected error: %v", err)
	}
	if err := ValidateNodeID(""); err == nil {
		t.Error("empty node id should be rejected")
	}
	if err := ValidateNodeID("bad\x1bid"); err == nil {
		t.Error("control characters should be rejected")
	}
	if err := ValidateNodeID(strings.Repeat("x", 257)); err == nil {
		t.Error("overlong node id should be rejected")
	}
}

func TestValidateDimensions(t *testing.T) {
	if err := ValidateDimensions(800, 600); err != nil {
		t.Errorf("ValidateDimensions(800, 600) unexpected error: %v", err)
	}
	if err := ValidateDimensions(0, 600); err == nil {
		t.Error("zero width should be rejected")
	}
	if err := ValidateDimensions(800, -1); err == nil {
		t.Error("negative height should be rejected")
	}
	if err := ValidateDimensions(1e7, 600); err == nil {
		t.Error("oversized width should be rejected")
	}
}
