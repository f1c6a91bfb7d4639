package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDependency, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("MetadataFor(%s).HTTPStatus = %d, want %d", tc.code, got, tc.status)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code status = %d, want 500", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "snapshot write")
	if err.Unwrap() != cause {
		t.Fatalf("Unwrap did not return the cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("Code = %s, want %s", err.Code(), CodeDependency)
	}
}

func TestAsRecoversTypedError(t *testing.T) {
	typed := New(CodeNotFound, "animal not found")
	wrapped := fmt.Errorf("outer: %w", typed)
	if got := As(wrapped); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to recover typed error from chain")
	}
	if As(fmt.Errorf("plain")) != nil {
		t.Fatalf("As returned non-nil for untyped error")
	}
}
