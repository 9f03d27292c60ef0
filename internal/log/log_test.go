package log

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
		now = time.Now
	})
	return &buf
}

func TestLineFormat(t *testing.T) {
	buf := capture(t)
	Info("tasks loaded", "path", "/tmp/my tasks.yaml", "count", 4, "dangling")
	got := strings.TrimSpace(buf.String())
	want := `2025-04-01T09:00:00Z [INFO] tasks loaded path="/tmp/my tasks.yaml" count=4`
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at INFO, got %q", buf.String())
	}
	SetLevel(ParseLevel("error"))
	Info("hidden")
	Error("boom", errors.New("bad"))
	if !strings.Contains(buf.String(), "[ERROR] boom err=bad") || strings.Contains(buf.String(), "hidden") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if ParseLevel("nonsense") != LevelInfo {
		t.Fatalf("unknown levels should map to INFO")
	}
}
