package labelimg

import (
	"image"
	"image/color"

	"github.com/boombuler/barcode/code128"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// BarcodeParams are the fixed raster parameters for the Code 128 block.
// They are configuration constants, never caller-supplied per render.
type BarcodeParams struct {
	ModuleWidth int // px per Code 128 module
	BarHeight   int // px
	QuietZone   int // modules of blank margin each side
	CaptionGap  int // px between bars and caption baseline box
	CaptionPad  int // px below caption
}

// renderBarcode produces the monochrome barcode block: the Code 128 symbol
// for payload with the payload text centered beneath it. The raster is
// strictly two-tone, 0x00 for bars and glyphs, 0xFF for background.
func renderBarcode(payload string, p BarcodeParams, caption font.Face) (*image.Gray, error) {
	if payload == "" {
		return nil, &RenderError{Payload: payload, Err: ErrEmptyPayload}
	}
	for _, r := range payload {
		if r < 0x20 || r > 0x7e {
			return nil, &RenderError{Payload: payload, Err: ErrUnsupportedChar}
		}
	}

	symbol, err := code128.Encode(payload)
	if err != nil {
		return nil, &RenderError{Payload: payload, Err: err}
	}

	modules := symbol.Bounds().Dx()
	quiet := p.QuietZone * p.ModuleWidth
	symWidth := modules*p.ModuleWidth + 2*quiet

	metrics := caption.Metrics()
	capHeight := (metrics.Ascent + metrics.Descent).Ceil()
	capWidth := font.MeasureString(caption, payload).Ceil()

	width := symWidth
	if capWidth > width {
		width = capWidth
	}
	height := p.BarHeight + p.CaptionGap + capHeight + p.CaptionPad

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	// The encoder yields one pixel per module; integer-scale each set
	// module to ModuleWidth columns of full-height bar. When the caption
	// measures wider than the symbol the bars are centered above it so the
	// block stays symmetric.
	barX0 := (width - symWidth) / 2
	for x := 0; x < modules; x++ {
		if !moduleSet(symbol.At(x, 0)) {
			continue
		}
		for dx := 0; dx < p.ModuleWidth; dx++ {
			col := barX0 + quiet + x*p.ModuleWidth + dx
			for y := 0; y < p.BarHeight; y++ {
				img.SetGray(col, y, color.Gray{Y: 0x00})
			}
		}
	}

	capX := (width - capWidth) / 2
	d := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: caption,
		Dot:  fixed.P(capX, p.BarHeight+p.CaptionGap+metrics.Ascent.Ceil()),
	}
	d.DrawString(payload)

	// Glyph rendering is antialiased; threshold the caption area back to
	// two tones so the raster stays strictly monochrome.
	for y := p.BarHeight; y < height; y++ {
		for x := 0; x < width; x++ {
			if img.GrayAt(x, y).Y < 0x80 {
				img.SetGray(x, y, color.Gray{Y: 0x00})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}

	return img, nil
}

// moduleSet reports whether the encoder painted this module as a bar.
func moduleSet(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}
