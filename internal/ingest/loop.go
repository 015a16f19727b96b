// Package ingest runs the station loop: read bytes from the scanner, frame
// lines, extract identifiers, compose and persist labels.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/banshee-data/labelsmith/internal/framing"
	"github.com/banshee-data/labelsmith/internal/ident"
)

// Composer builds a label image for an identifier. Implemented by
// labelimg.Composer.
type Composer interface {
	Compose(id string) (image.Image, error)
	FullCode(id string) string
}

// Sink persists a finished label image. Implemented by labelfile.Sink.
type Sink interface {
	WriteLabel(img image.Image, fullCode string) (string, error)
}

// Stats counts what a session saw. Read after Run returns.
type Stats struct {
	LinesSeen     int
	Matched       int
	LabelsWritten int
	OverflowDrops int
}

// Loop drives the strictly sequential read -> frame -> extract -> compose ->
// persist pipeline. One identifier is fully processed before the next read;
// nothing here is concurrent.
type Loop struct {
	framer   *framing.Framer
	composer Composer
	sink     Sink
	log      hclog.Logger

	stats Stats
}

// New returns a loop over the given collaborators.
func New(framer *framing.Framer, composer Composer, sink Sink, logger hclog.Logger) *Loop {
	return &Loop{
		framer:   framer,
		composer: composer,
		sink:     sink,
		log:      logger,
	}
}

// Stats returns the session counters.
func (l *Loop) Stats() Stats { return l.stats }

// Run polls r until ctx is cancelled, r reports EOF (replay sources only;
// a real port times out with zero bytes instead), or a component fails.
//
// Reads returning zero bytes are normal: the port's short read timeout
// expired with no data. Lines without an identifier are expected and only
// debug-logged. Any composer or sink failure terminates the loop with the
// error; there is no retry and no skipping — a supervised station should
// stop and alert rather than silently drop labels. A pending unterminated
// line at cancellation is an incomplete scan and is dropped.
func (l *Loop) Run(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			if l.framer.PendingLen() > 0 {
				l.log.Debug("dropping unterminated partial line", "bytes", l.framer.PendingLen())
			}
			return ctx.Err()
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if perr := l.process(buf[:n]); perr != nil {
				return perr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.log.Info("input stream ended", "stats", fmt.Sprintf("%+v", l.stats))
				return nil
			}
			return fmt.Errorf("serial read failed: %w", err)
		}
	}
}

func (l *Loop) process(chunk []byte) error {
	dropsBefore := l.framer.Dropped()
	lines := l.framer.Append(chunk)
	if drops := l.framer.Dropped() - dropsBefore; drops > 0 {
		l.stats.OverflowDrops += drops
		l.log.Warn("oversized record dropped", "count", drops)
	}

	for _, line := range lines {
		l.stats.LinesSeen++
		id, ok := ident.Extract(line)
		if !ok {
			l.log.Debug("line carries no identifier", "line", line)
			continue
		}
		l.stats.Matched++

		img, err := l.composer.Compose(id)
		if err != nil {
			l.log.Error("label composition failed", "identifier", id, "error", err)
			return err
		}
		path, err := l.sink.WriteLabel(img, l.composer.FullCode(id))
		if err != nil {
			l.log.Error("label write failed", "identifier", id, "error", err)
			return err
		}
		l.stats.LabelsWritten++
		l.log.Info("label written", "identifier", id, "path", path)
	}
	return nil
}
