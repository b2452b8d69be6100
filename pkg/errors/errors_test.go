package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "graph %s is malformed", "a.json")
	want := "INVALID_GRAPH: graph a.json is malformed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := stderrors.New("unexpected EOF")
	wrapped := Wrap(ErrCodeStorage, cause, "save workspace %s", "w1")
	if !strings.Contains(wrapped.Error(), "unexpected EOF") {
		t.Errorf("wrapped Error() = %q, missing cause", wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "flush")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	// Codes survive further wrapping with %w.
	outer := fmt.Errorf("handling request: %w", err)
	if !Is(outer, ErrCodeStorage) {
		t.Error("Is should find the code through fmt wrapping")
	}
	if GetCode(outer) != ErrCodeStorage {
		t.Errorf("GetCode = %s, want STORAGE_ERROR", GetCode(outer))
	}
}

func TestIsAndGetCodeOnForeignErrors(t *testing.T) {
	plain := stderrors.New("plain")
	if Is(plain, ErrCodeStorage) {
		t.Error("Is matched a plain error")
	}
	if GetCode(plain) != "" {
		t.Errorf("GetCode on plain error = %q, want empty", GetCode(plain))
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeNotFound, "document %s does not exist", "d1")
	if got := UserMessage(err); got != "document d1 does not exist" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}

func TestValidateWorkspaceID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"Simple", "workspace-1", true},
		{"UUID", "b5ae2531-7f3c-4f1a-9271-0a7dd6dd9f2e", true},
		{"Empty", "", false},
		{"TooLong", strings.Repeat("a", 129), false},
		{"MaxLength", strings.Repeat("a", 128), true},
		{"Slash", "a/b", false},
		{"Backslash", `a\b`, false},
		{"Traversal", "..secret", false},
		{"ControlChar", "a\x00b", false},
		{"Newline", "a\nb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkspaceID(tt.id)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateWorkspaceID(%q) = %v, want valid=%v", tt.id, err, tt.valid)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("code = %s, want INVALID_INPUT", GetCode(err))
			}
		})
	}
}

func TestValidateChallengeFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		valid    bool
	}{
		{"Simple", "first.toml", true},
		{"Empty", "", false},
		{"Path", "dir/first.toml", false},
		{"Hidden", ".first.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChallengeFilename(tt.filename)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateChallengeFilename(%q) = %v, want valid=%v", tt.filename, err, tt.valid)
			}
		})
	}
}
