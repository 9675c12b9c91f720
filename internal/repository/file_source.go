package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	drepo "PredVal/internal/domain/repository"
)

// FileLineSource reads inputs from the local filesystem.
type FileLineSource struct{}

// NewFileLineSource creates a file-backed LineSource.
func NewFileLineSource() drepo.LineSource {
	return &FileLineSource{}
}

// ReadLines returns every line of the file, terminators included.
func (s *FileLineSource) ReadLines(ctx context.Context, name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
}
