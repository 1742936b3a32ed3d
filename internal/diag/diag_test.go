package diag

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := Errorf(PhaseConstruct, CodeTypeMismatch, "cannot assign %s to %s", "int", "string")
	want := "construct: TYPE_MISMATCH: cannot assign int to string"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestHasCode(t *testing.T) {
	err := Errorf(PhaseCompile, CodeUnsupportedNode, "unsupported node")
	if !HasCode(err, CodeUnsupportedNode) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, CodeTypeMismatch) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeUnsupportedNode) {
		t.Error("HasCode should not match a plain error")
	}
	wrapped := fmt.Errorf("building tree: %w", err)
	if !HasCode(wrapped, CodeUnsupportedNode) {
		t.Error("HasCode should unwrap")
	}
}
