package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNodeNotFound, "no node with that key")

	if err.Code != ErrCodeNodeNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeNodeNotFound)
	}
	if err.Message != "no node with that key" {
		t.Errorf("Message = %q", err.Message)
	}
	if len(err.Stack) == 0 {
		t.Error("expected captured stack frames")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeIndexOutOfRange, "index %d out of range [0,%d)", 5, 3)

	want := "index 5 out of range [0,3)"
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("disk full")
	err := Wrap(underlying, ErrCodeJournalWrite, "failed to append entry")

	if !stderrors.Is(err, underlying) {
		t.Error("wrapped error should match errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, should contain underlying message", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWithContext(t *testing.T) {
	err := New(ErrCodeRoleNotConfigured, "role missing").
		WithContext("role", "supporting").
		WithContext("pane", "detail-pane")

	s := err.Error()
	if !strings.Contains(s, "role: supporting") {
		t.Errorf("Error() = %q, missing role context", s)
	}
	if !strings.Contains(s, "pane: detail-pane") {
		t.Errorf("Error() = %q, missing pane context", s)
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeTransitionState, "commit while idle")

	if !IsCode(err, ErrCodeTransitionState) {
		t.Error("IsCode should match")
	}
	if IsCode(err, ErrCodeInternal) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("IsCode(nil) should be false")
	}
	if IsCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("IsCode on a plain error should be false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotATab, "x")); got != ErrCodeNotATab {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeNotATab)
	}
	if got := GetCode(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want %q", got, ErrCodeInternal)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	trace := err.StackTrace()

	if !strings.Contains(trace, "Stack trace:") {
		t.Errorf("StackTrace() = %q", trace)
	}
}
