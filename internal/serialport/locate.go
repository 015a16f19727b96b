// Package serialport locates and opens the scanner's serial device.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"go.bug.st/serial"
)

// Port selection failures are configuration errors: they are raised before
// the ingest loop starts and terminate the process.
var (
	ErrNoPorts        = errors.New("no candidate scanner port found")
	ErrAmbiguousPorts = errors.New("multiple candidate scanner ports; set an explicit port override")
)

// candidatePatterns matches device names that plausibly belong to a
// USB-attached scanner. Virtual terminals and pseudo-terminals never match.
var candidatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`),        // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`),        // USB CDC/ACM devices
	regexp.MustCompile(`^cu\.usb.*$`),        // macOS USB serial
	regexp.MustCompile(`^tty\.usbserial.*$`), // macOS FTDI
	regexp.MustCompile(`^COM\d+$`),           // Windows
}

// ListPorts is the port enumeration source; replaced in tests. It defaults
// to go.bug.st/serial's platform enumeration.
type ListPorts func() ([]string, error)

// Enumerate returns the sorted candidate scanner devices visible to list.
func Enumerate(list ListPorts) ([]string, error) {
	if list == nil {
		list = serial.GetPortsList
	}
	all, err := list()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	var candidates []string
	for _, p := range all {
		name := filepath.Base(p)
		for _, pattern := range candidatePatterns {
			if pattern.MatchString(name) {
				candidates = append(candidates, p)
				break
			}
		}
	}
	sort.Strings(candidates)
	return candidates, nil
}

// Locate resolves the scanner device path. An explicit override always wins;
// otherwise exactly one candidate must be present. Zero candidates yields
// ErrNoPorts and more than one yields ErrAmbiguousPorts.
func Locate(override string, list ListPorts) (string, error) {
	if override != "" {
		return override, nil
	}
	candidates, err := Enumerate(list)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", ErrNoPorts
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w: %v", ErrAmbiguousPorts, candidates)
	}
}

// Open opens the device with the given options and applies the read timeout
// so reads are short-timeout polls: a read returning zero bytes means no
// data arrived within the window, not end of stream.
func Open(path string, opts Options, readTimeout time.Duration) (io.ReadCloser, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", path, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", path, err)
	}
	return port, nil
}
