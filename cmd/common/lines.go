package common

import (
	"bufio"
	"context"
	"io"
)

// LineReader scans lines on its own goroutine so a caller waiting for input
// can give up when its context is cancelled.
type LineReader struct {
	lines chan string
	err   error
}

// NewLineReader starts reading r line by line.
func NewLineReader(r io.Reader) *LineReader {
	l := &LineReader{lines: make(chan string)}
	go func() {
		defer close(l.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			l.lines <- scanner.Text()
		}
		l.err = scanner.Err()
	}()
	return l
}

// Next returns the next line. At end of input it returns io.EOF, or the
// scanner's error if reading failed; when ctx is done it returns ctx.Err().
func (l *LineReader) Next(ctx context.Context) (string, error) {
	select {
	case line, ok := <-l.lines:
		if !ok {
			if l.err != nil {
				return "", l.err
			}
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
