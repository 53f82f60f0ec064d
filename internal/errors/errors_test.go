package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{"message only", NotFound("missing"), "missing"},
		{"default message", New(ErrCodeTimeout, ""), "Request timed out. Please try again."},
		{"with cause", Wrap(errors.New("dial tcp"), ErrCodeUnavailable, "store down"), "store down: dial tcp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(cause, ErrCodeInternal, "")
	if err.Message != publicMessages[ErrCodeInternal] {
		t.Errorf("Message = %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap should preserve the cause")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestCodeOfAndFieldOf(t *testing.T) {
	err := fmt.Errorf("save: %w", &AppError{Code: ErrCodeValidation, Message: "required", Field: "value"})
	if CodeOf(err) != ErrCodeValidation {
		t.Errorf("CodeOf() = %q", CodeOf(err))
	}
	if FieldOf(err) != "value" {
		t.Errorf("FieldOf() = %q", FieldOf(err))
	}
	if !HasCode(err, ErrCodeValidation) || HasCode(err, ErrCodeConflict) {
		t.Error("HasCode mismatch")
	}
	if CodeOf(errors.New("plain")) != "" || FieldOf(nil) != "" || HasCode(nil, "") {
		t.Error("non-AppError should have no code or field")
	}
}
