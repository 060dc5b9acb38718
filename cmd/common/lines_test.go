package common

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestLineReader_ReadsUntilEOF(t *testing.T) {
	l := NewLineReader(strings.NewReader("one\ntwo\n"))
	ctx := context.Background()

	for _, want := range []string{"one", "two"} {
		got, err := l.Next(ctx)
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
	if _, err := l.Next(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("Next() at end = %v, want io.EOF", err)
	}
}

func TestLineReader_CancelWhileBlocked(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	l := NewLineReader(pr)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Next(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Next() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Next() did not return after cancel")
	}
}
