package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KirkDiggler/nightfall/internal/domain/game"
	"github.com/KirkDiggler/nightfall/internal/errors"
	"github.com/KirkDiggler/nightfall/internal/render"
)

// FileSink writes documents into a single output directory. Files left by a
// previous run are removed first so the directory only ever holds one run.
type FileSink struct {
	dir    string
	logger *zap.Logger
}

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string, logger *zap.Logger) *FileSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{dir: dir, logger: logger}
}

// Deliver implements Sink
func (s *FileSink) Deliver(ctx context.Context, run *game.Run, docs []render.Document) error {
	if run == nil {
		return errors.InvalidArgument("run cannot be nil")
	}
	if s.dir == "" {
		return errors.InvalidArgument("output directory is required")
	}

	if err := s.clear(); err != nil {
		return err
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(s.dir, filepath.Base(doc.Name))
		if err := os.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		s.logger.Debug("wrote document", zap.String("path", path))
	}

	s.logger.Info("documents written",
		zap.String("dir", s.dir),
		zap.Int("count", len(docs)),
		zap.String("run_id", run.ID),
	)
	return nil
}

// clear creates the directory or empties the regular files in it
func (s *FileSink) clear() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear %s: %w", e.Name(), err)
		}
	}
	return nil
}
