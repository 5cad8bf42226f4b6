package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	img := imageFromPixels(2, 1, P(255, 0, 0), P(255, 0, 0))
	if err := New().Render(io.Discard, img, 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"resolved dimensions", "encoded frame"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("expected log record %q, got %q", want, logs.String())
		}
	}

	SetLogger(nil)
	logs.Reset()
	if err := New().Render(io.Discard, img, 2, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("expected silence after SetLogger(nil), got %q", logs.String())
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("expected the default logger to be disabled")
	}
}
