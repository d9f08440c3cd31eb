package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksWrappedChain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("boom"), ""},
		{"invalid handle", NewInvalidHandleError(" "), CodeInvalidHandle},
		{"network", NewNetworkError("request failed", "http://x", 0, stderrors.New("reset")), CodeNetwork},
		{"not found wrapped", fmt.Errorf("lookup: %w", NewNotFoundError("ada")), CodeNotFound},
		{"extraction", NewExtractionError(ReasonInvalidJSON, stderrors.New("bad")), CodeExtraction},
		{"no such account", NewNoSuchAccountError(), CodeNoSuchAccount},
		{"api", NewAPIError("Iris API error", 500, nil), CodeAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractionReason(t *testing.T) {
	err := fmt.Errorf("extract: %w", NewExtractionError(ReasonNoDataElement, nil))
	if got := ExtractionReason(err); got != ReasonNoDataElement {
		t.Fatalf("expected %q, got %q", ReasonNoDataElement, got)
	}
	if got := ExtractionReason(stderrors.New("other")); got != "" {
		t.Fatalf("expected empty reason, got %q", got)
	}
}

func TestBotErrorUnwrapsCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewNetworkError("request failed", "http://x", 0, cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if err.Error() != "request failed: connection reset" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
