package helper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type fakePGError struct {
	state string
	msg   string
}

func (e *fakePGError) SQLState() string { return e.state }
func (e *fakePGError) Error() string    { return e.msg }

func TestMapPGError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unique violation", &fakePGError{state: "23505"}, http.StatusConflict},
		{"exclusion violation", &fakePGError{state: "23P01"}, http.StatusConflict},
		{"fk violation", &fakePGError{state: "23503"}, http.StatusBadRequest},
		{"unmapped sqlstate", &fakePGError{state: "40001", msg: "serialization"}, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := MapPGError(tt.err)
			if code != tt.wantCode {
				t.Fatalf("MapPGError() code = %d, want %d", code, tt.wantCode)
			}
			if msg == "" {
				t.Fatalf("MapPGError() message must not be empty")
			}
		})
	}
}

func TestMapPGError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("create session: %w", &fakePGError{state: "23505", msg: "duplicate key"})
	code, _ := MapPGError(wrapped)
	if code != http.StatusConflict {
		t.Fatalf("wrapped pg error should still map, got code %d", code)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(&fakePGError{state: "23505"}) {
		t.Fatalf("23505 must be reported as duplicate key")
	}
	if IsDuplicateKey(&fakePGError{state: "23503"}) {
		t.Fatalf("23503 is not a duplicate key")
	}
	if IsDuplicateKey(errors.New("boom")) {
		t.Fatalf("non-pg error is not a duplicate key")
	}
	if IsDuplicateKey(nil) {
		t.Fatalf("nil error is not a duplicate key")
	}
}
