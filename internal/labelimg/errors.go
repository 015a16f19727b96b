package labelimg

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPayload is returned when a barcode is requested for an empty
	// full code.
	ErrEmptyPayload = errors.New("barcode payload is empty")

	// ErrUnsupportedChar is returned when the payload contains bytes the
	// Code 128 caption cannot carry (non-printable or non-ASCII).
	ErrUnsupportedChar = errors.New("barcode payload contains unsupported characters")

	// ErrBarcodeOverflow is returned when the rendered barcode block does
	// not fit the label canvas. Overly long identifiers are rejected, never
	// truncated or scaled.
	ErrBarcodeOverflow = errors.New("barcode does not fit label canvas")
)

// RenderError reports a failure producing the barcode raster.
type RenderError struct {
	Payload string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render barcode for %q: %v", e.Payload, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ComposeError reports a failure assembling the label image.
type ComposeError struct {
	Stage string
	Err   error
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("failed to compose label at %s: %v", e.Stage, e.Err)
}

func (e *ComposeError) Unwrap() error { return e.Err }
