// Package framing reassembles a raw serial byte stream into
// terminator-delimited lines.
package framing

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPending caps how many unterminated bytes the framer will hold
// before it starts discarding. A scanner that streams garbage without ever
// sending a terminator would otherwise grow the buffer without bound.
const DefaultMaxPending = 64 * 1024

// Framer accumulates bytes until the terminator sequence is seen, then emits
// the decoded, whitespace-trimmed line. It owns the pending buffer; callers
// only feed chunks and consume completed lines.
type Framer struct {
	terminator []byte
	maxPending int

	pending    []byte
	discarding bool
	dropped    int
}

// New returns a Framer splitting on the given terminator sequence.
// maxPending <= 0 selects DefaultMaxPending.
func New(terminator []byte, maxPending int) *Framer {
	if len(terminator) == 0 {
		terminator = []byte{'\r'}
	}
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Framer{
		terminator: append([]byte(nil), terminator...),
		maxPending: maxPending,
	}
}

// Append feeds newly arrived bytes into the framer and returns all lines
// completed by this chunk, in arrival order. A zero-length chunk is a valid
// no-op. The result is independent of how the byte stream is partitioned
// into chunks.
func (f *Framer) Append(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}
	f.pending = append(f.pending, chunk...)

	var lines []string
	for {
		i := bytes.Index(f.pending, f.terminator)
		if i < 0 {
			break
		}
		raw := f.pending[:i]
		rest := f.pending[i+len(f.terminator):]
		switch {
		case f.discarding:
			// The terminator ends the oversized record; it was dropped
			// whole, nothing is emitted for it.
			f.discarding = false
		case len(raw) > f.maxPending:
			// Record exceeded the cap within a single chunk. Dropping it
			// here keeps the emitted sequence independent of chunking.
			f.dropped++
		default:
			lines = append(lines, decodeLine(raw))
		}
		f.pending = append(f.pending[:0], rest...)
	}

	if !f.discarding && len(f.pending) > f.maxPending {
		f.discarding = true
		f.dropped++
	}
	if f.discarding {
		f.trimDiscard()
	}
	return lines
}

// trimDiscard shrinks the pending buffer while a record is being discarded.
// The last len(terminator)-1 bytes are kept so a multi-byte terminator split
// across chunks is still recognised; any kept bytes that turn out not to be
// a terminator prefix are dropped with the record when one is found.
func (f *Framer) trimDiscard() {
	keep := len(f.terminator) - 1
	if keep > len(f.pending) {
		keep = len(f.pending)
	}
	f.pending = append(f.pending[:0], f.pending[len(f.pending)-keep:]...)
}

// Dropped reports how many oversized records have been discarded whole.
func (f *Framer) Dropped() int { return f.dropped }

// PendingLen reports the number of buffered bytes awaiting a terminator.
func (f *Framer) PendingLen() int { return len(f.pending) }

// decodeLine decodes a raw record permissively: bytes that are not valid
// UTF-8 are replaced rather than surfaced as an error, and surrounding
// whitespace is stripped.
func decodeLine(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), string(utf8.RuneError)))
}
