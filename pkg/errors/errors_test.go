package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidData, "test message: %s", "value")

	if err.Code != ErrCodeInvalidData {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidData)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_DATA: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	if err.Details != nil {
		t.Errorf("Details = %v, want nil", err.Details)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeExportFailed, cause, "failed to generate")

	if err.Code != ErrCodeExportFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExportFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if got := err.Details["cause"]; got != "underlying error" {
		t.Errorf("Details[cause] = %v, want %q", got, "underlying error")
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeNotImplemented, "pdf export is not implemented").
		WithDetail("plannedWork", "paginated renderer").
		WithDetail("format", "pdf")

	if len(err.Details) != 2 {
		t.Fatalf("len(Details) = %d, want 2", len(err.Details))
	}
	if err.Details["plannedWork"] != "paginated renderer" {
		t.Errorf("plannedWork = %v", err.Details["plannedWork"])
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidData, "test"),
			code:     ErrCodeInvalidData,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidData, "test"),
			code:     ErrCodeUnsupportedFormat,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeExportFailed, New(ErrCodeInvalidData, "inner"), "outer"),
			code:     ErrCodeExportFailed,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      wrapf(New(ErrCodeNotFound, "missing")),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidData,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidData,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnsupportedFormat, "test"),
			expected: ErrCodeUnsupportedFormat,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAs(t *testing.T) {
	if _, ok := As(errors.New("plain")); ok {
		t.Error("As(plain) = true, want false")
	}
	e, ok := As(wrapf(New(ErrCodeInvalidConfig, "bad")))
	if !ok || e.Code != ErrCodeInvalidConfig {
		t.Errorf("As() = %v, %v", e, ok)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidData, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

type wrapper struct{ err error }

func (w wrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapper) Unwrap() error { return w.err }

func wrapf(err error) error { return wrapper{err: err} }
