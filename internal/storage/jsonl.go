package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"dexEvents/internal/model"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// JsonlSink writes one event per line.
type JsonlSink struct {
	mu     sync.Mutex
	writer *bufio.Writer
	closer io.Closer
}

// NewJsonlSink truncates and opens path, or wraps stdout for StdoutPath.
func NewJsonlSink(path string) (*JsonlSink, error) {
	if path == "" || path == StdoutPath {
		return NewJsonlWriter(os.Stdout), nil
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return &JsonlSink{writer: bufio.NewWriter(file), closer: file}, nil
}

// NewJsonlWriter writes to w and leaves closing w to the caller.
func NewJsonlWriter(w io.Writer) *JsonlSink {
	return &JsonlSink{writer: bufio.NewWriter(w)}
}

// PutEvents appends a batch of events as JSON lines.
func (s *JsonlSink) PutEvents(events []model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}
		if _, err := s.writer.Write(line); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
		if err := s.writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}
	return nil
}

// Close flushes buffered lines and closes the underlying file, if any.
func (s *JsonlSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
