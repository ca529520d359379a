package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestTextLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Output: &buf}).With(String("run", "a"))
	log.Info(context.Background(), "day complete", Int("day", 3), Float("share", 0.5))
	log.Debug(context.Background(), "hidden")

	out := buf.String()
	for _, want := range []string{"day complete", "run=a", "day=3", "share=0.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatal("debug line should be filtered at info level")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Format: "json", Output: &buf}).Warn(context.Background(), "w", Int("n", 1))
	if !strings.Contains(buf.String(), `"n":1`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}

func TestNoop(t *testing.T) {
	Noop().With(String("k", "v")).Error(context.Background(), "dropped")
}
