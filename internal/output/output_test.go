package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestPrintln(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf).Println("hello")
	if buf.String() != "hello\n" {
		t.Errorf("Println output = %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := New(&buf).JSON(map[string]any{"ok": true, "branch": "feature/x"})
	if err != nil {
		t.Fatalf("JSON = %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `"ok": true`) || !strings.Contains(got, `"branch": "feature/x"`) {
		t.Errorf("JSON output = %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("JSON output missing trailing newline")
	}
}

func TestWithPrinterRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := WithPrinter(context.Background(), &buf)
	FromContext(ctx).Printf("%d worktrees", 3)
	if buf.String() != "3 worktrees" {
		t.Errorf("round trip output = %q", buf.String())
	}
}

func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	if FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil")
	}
}
