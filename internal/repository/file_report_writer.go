package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"PredVal/internal/codec"
	drepo "PredVal/internal/domain/repository"
)

// FileReportWriter writes the report body through a temp file and a rename,
// so readers never observe a partial report.
type FileReportWriter struct {
	perm os.FileMode
}

// NewFileReportWriter creates a file-backed ReportWriter.
func NewFileReportWriter() drepo.ReportWriter {
	return &FileReportWriter{perm: 0o644}
}

func (w *FileReportWriter) Write(ctx context.Context, name string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(name)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	// no-op after a successful rename
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(codec.Body(lines)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), w.perm); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
