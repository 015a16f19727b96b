// Package labelfile names and persists finished label images.
package labelfile

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/banshee-data/labelsmith/internal/config"
	"github.com/banshee-data/labelsmith/internal/fsutil"
	"github.com/banshee-data/labelsmith/internal/security"
	"github.com/banshee-data/labelsmith/internal/timeutil"
)

// Sink writes label images to the output directory as
// label_<fullcode>_<YYYYMMDD_HHMMSS>.png with DPI metadata. Writes are
// all-or-nothing: the PNG is encoded in memory and renamed into place from a
// temp file, so a failure never leaves a partial label on disk.
type Sink struct {
	fs    fsutil.FileSystem
	clock timeutil.Clock
	log   hclog.Logger

	dir string
	dpi int
}

// NewSink creates the output directory if absent and returns a sink bound
// to it.
func NewSink(cfg config.Config, fsys fsutil.FileSystem, clock timeutil.Clock, logger hclog.Logger) (*Sink, error) {
	if err := fsys.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	return &Sink{
		fs:    fsys,
		clock: clock,
		log:   logger,
		dir:   cfg.OutputDir,
		dpi:   cfg.OutputDPI,
	}, nil
}

// WriteLabel persists img and returns the final file path. The full code is
// sanitized before it is embedded in the filename; identifiers are digits by
// construction so this only guards a misconfigured prefix.
func (s *Sink) WriteLabel(img image.Image, fullCode string) (string, error) {
	stamp := s.clock.Now().Format("20060102_150405")
	name := fmt.Sprintf("label_%s_%s.png", security.SanitizeFilename(fullCode), stamp)
	final := filepath.Join(s.dir, name)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode label PNG: %w", err)
	}
	data, err := withDPI(buf.Bytes(), s.dpi)
	if err != nil {
		return "", fmt.Errorf("failed to set PNG resolution: %w", err)
	}

	tmp := final + "." + uuid.NewString() + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write label file: %w", err)
	}
	if err := s.fs.Rename(tmp, final); err != nil {
		s.fs.Remove(tmp)
		return "", fmt.Errorf("failed to finalize label file: %w", err)
	}

	s.log.Debug("label written", "path", final, "bytes", len(data))
	return final, nil
}
