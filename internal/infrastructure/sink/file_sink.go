package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Victor-armando18/menu-customizer/internal/domain"
)

// FileSink appends submitted lines to a JSON array on disk.
type FileSink struct {
	Path string
	mu   sync.Mutex
}

func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

func (s *FileSink) Submit(ctx context.Context, line domain.SubmittedLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.read()
	if err != nil {
		return err
	}
	lines = append(lines, line)

	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create sink dir: %w", err)
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// Lines returns everything submitted so far.
func (s *FileSink) Lines() ([]domain.SubmittedLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileSink) read() ([]domain.SubmittedLine, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var lines []domain.SubmittedLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return lines, nil
}
