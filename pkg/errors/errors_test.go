package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew_Formatting(t *testing.T) {
	err := New(ErrCodeInvalidLevel, "invalid summary level: %q", "full")

	want := `INVALID_LEVEL: invalid summary level: "full"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(ErrCodeFileNotFound, cause, "read module %s", "a.py")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true through Unwrap")
	}
	want := "FILE_NOT_FOUND: read module a.py: disk on fire"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs_MatchesCodeThroughWrapping(t *testing.T) {
	inner := New(ErrCodeInvalidRules, "bad pattern")
	outer := fmt.Errorf("loading config: %w", inner)

	if !Is(outer, ErrCodeInvalidRules) {
		t.Error("Is(outer, ErrCodeInvalidRules) = false, want true")
	}
	if Is(outer, ErrCodeInvalidLevel) {
		t.Error("Is(outer, ErrCodeInvalidLevel) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidRules) {
		t.Error("Is(plain error, code) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInternal)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "content is not text")); got != "content is not text" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q, want error string", got)
	}
}
