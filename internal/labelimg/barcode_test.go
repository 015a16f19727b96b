package labelimg

import (
	"errors"
	"testing"

	"github.com/boombuler/barcode/code128"

	"github.com/banshee-data/labelsmith/internal/fsutil"
)

var testParams = BarcodeParams{
	ModuleWidth: 3,
	BarHeight:   60,
	QuietZone:   2,
	CaptionGap:  4,
	CaptionPad:  8,
}

func TestRenderBarcodeGeometry(t *testing.T) {
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 24)
	if err != nil {
		t.Fatalf("loadFace() error: %v", err)
	}

	const payload = "UK123456"
	img, err := renderBarcode(payload, testParams, face)
	if err != nil {
		t.Fatalf("renderBarcode() error: %v", err)
	}

	symbol, err := code128.Encode(payload)
	if err != nil {
		t.Fatalf("code128.Encode() error: %v", err)
	}
	modules := symbol.Bounds().Dx()
	quiet := testParams.QuietZone * testParams.ModuleWidth
	symWidth := modules*testParams.ModuleWidth + 2*quiet

	if img.Bounds().Dx() < symWidth {
		t.Errorf("width = %d, want >= symbol width %d", img.Bounds().Dx(), symWidth)
	}
	wantMinHeight := testParams.BarHeight + testParams.CaptionGap + testParams.CaptionPad
	if img.Bounds().Dy() <= wantMinHeight {
		t.Errorf("height = %d, want > %d (bars + caption)", img.Bounds().Dy(), wantMinHeight)
	}
}

func TestRenderBarcodeTwoTone(t *testing.T) {
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 24)
	if err != nil {
		t.Fatal(err)
	}
	img, err := renderBarcode("UK999999999999", testParams, face)
	if err != nil {
		t.Fatalf("renderBarcode() error: %v", err)
	}
	for _, v := range img.Pix {
		if v != 0x00 && v != 0xFF {
			t.Fatalf("found gray level %#x, raster must be strictly two-tone", v)
		}
	}
}

// TestRenderBarcodeRoundTrip reads the module sequence back out of the
// rendered pixels and checks it equals the canonical Code 128 encoding of
// the payload: symbol -> raster -> symbol recovers the same bars.
func TestRenderBarcodeRoundTrip(t *testing.T) {
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 24)
	if err != nil {
		t.Fatal(err)
	}

	for _, payload := range []string{"UK123456", "UK123456789012", "UK999999"} {
		img, err := renderBarcode(payload, testParams, face)
		if err != nil {
			t.Fatalf("renderBarcode(%q) error: %v", payload, err)
		}
		symbol, err := code128.Encode(payload)
		if err != nil {
			t.Fatal(err)
		}

		quiet := testParams.QuietZone * testParams.ModuleWidth
		midBar := testParams.BarHeight / 2
		for x := 0; x < symbol.Bounds().Dx(); x++ {
			wantSet := moduleSet(symbol.At(x, 0))
			for dx := 0; dx < testParams.ModuleWidth; dx++ {
				gotSet := img.GrayAt(quiet+x*testParams.ModuleWidth+dx, midBar).Y == 0x00
				if gotSet != wantSet {
					t.Fatalf("payload %q module %d px %d: set=%v, want %v",
						payload, x, dx, gotSet, wantSet)
				}
			}
		}

		// Quiet zones stay blank.
		for x := 0; x < quiet; x++ {
			if img.GrayAt(x, midBar).Y != 0xFF {
				t.Fatalf("payload %q: left quiet zone not blank at x=%d", payload, x)
			}
		}
	}
}

func TestRenderBarcodeCaptionCentered(t *testing.T) {
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 24)
	if err != nil {
		t.Fatal(err)
	}
	img, err := renderBarcode("UK123456", testParams, face)
	if err != nil {
		t.Fatal(err)
	}

	top := testParams.BarHeight + testParams.CaptionGap
	left, right := -1, -1
	for y := top; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if img.GrayAt(x, y).Y == 0x00 {
				if left == -1 || x < left {
					left = x
				}
				if x > right {
					right = x
				}
			}
		}
	}
	if left == -1 {
		t.Fatal("no caption glyphs found beneath the bars")
	}
	center := (left + right) / 2
	want := img.Bounds().Dx() / 2
	if center < want-3 || center > want+3 {
		t.Errorf("caption center = %d, want %d +-3", center, want)
	}
}

func TestRenderBarcodeSymbolCenteredUnderWideCaption(t *testing.T) {
	// A large caption face with 1px modules makes the caption wider than
	// the symbol; the bars must be centered over it, not left-anchored.
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 64)
	if err != nil {
		t.Fatal(err)
	}
	p := BarcodeParams{
		ModuleWidth: 1,
		BarHeight:   20,
		QuietZone:   0,
		CaptionGap:  4,
		CaptionPad:  8,
	}

	const payload = "UK123456"
	img, err := renderBarcode(payload, p, face)
	if err != nil {
		t.Fatalf("renderBarcode() error: %v", err)
	}
	symbol, err := code128.Encode(payload)
	if err != nil {
		t.Fatal(err)
	}
	symWidth := symbol.Bounds().Dx() * p.ModuleWidth
	if img.Bounds().Dx() <= symWidth {
		t.Fatalf("width = %d, want > symbol width %d for a wide caption", img.Bounds().Dx(), symWidth)
	}

	midBar := p.BarHeight / 2
	left, right := -1, -1
	for x := 0; x < img.Bounds().Dx(); x++ {
		if img.GrayAt(x, midBar).Y == 0x00 {
			if left == -1 {
				left = x
			}
			right = x
		}
	}
	if left == -1 {
		t.Fatal("no bars found in the bar region")
	}
	leftGap := left
	rightGap := img.Bounds().Dx() - 1 - right
	if diff := leftGap - rightGap; diff < -1 || diff > 1 {
		t.Errorf("bars not centered: left gap %d, right gap %d", leftGap, rightGap)
	}
	if got := right - left + 1; got != symWidth {
		t.Errorf("bar run spans %d px, want %d", got, symWidth)
	}
}

func TestRenderBarcodeErrors(t *testing.T) {
	face, err := loadFace(fsutil.NewMemoryFileSystem(), "", defaultRegularTTF(), 24)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"empty payload", "", ErrEmptyPayload},
		{"control character", "UK123\x01", ErrUnsupportedChar},
		{"non-ascii", "UKé123456", ErrUnsupportedChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderBarcode(tt.payload, testParams, face)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("renderBarcode(%q) error = %v, want %v", tt.payload, err, tt.wantErr)
			}
			var re *RenderError
			if !errors.As(err, &re) {
				t.Errorf("error %v is not a *RenderError", err)
			}
		})
	}
}
