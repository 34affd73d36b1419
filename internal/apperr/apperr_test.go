package apperr

import (
	"fmt"
	"testing"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindUsage, 1},
		{KindGit, 2},
		{KindNotARepo, 3},
		{KindInvariant, 4},
		{KindConflict, 5},
		{KindUnknown, 2},
	}

	for _, tt := range tests {
		if got := tt.kind.ExitCode(); got != tt.want {
			t.Errorf("Kind(%v).ExitCode() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindOfWrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("add failed: %w", Conflict("branch %q already exists", "feature/x"))
	if got := KindOf(err); got != KindConflict {
		t.Errorf("KindOf(wrapped conflict) = %v, want KindConflict", got)
	}
	if got := ExitCode(err); got != 5 {
		t.Errorf("ExitCode(wrapped conflict) = %d, want 5", got)
	}
}

func TestKindOfPlainError(t *testing.T) {
	t.Parallel()

	if got := KindOf(fmt.Errorf("boom")); got != KindUnknown {
		t.Errorf("KindOf(plain error) = %v, want KindUnknown", got)
	}
	if got := ExitCode(fmt.Errorf("boom")); got != 2 {
		t.Errorf("ExitCode(plain error) = %d, want 2", got)
	}
}

func TestConstructorsCarryKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *Error
		want Kind
	}{
		{Usage("u"), KindUsage},
		{Git("g"), KindGit},
		{NotARepo("n"), KindNotARepo},
		{Invariant("i"), KindInvariant},
		{Conflict("c"), KindConflict},
	}

	for _, tt := range tests {
		if tt.err.Kind != tt.want {
			t.Errorf("constructor produced kind %v, want %v", tt.err.Kind, tt.want)
		}
	}
}
