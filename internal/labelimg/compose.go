// Package labelimg turns a scan identifier into the print-ready label
// raster: fixed header text, logo artwork and a Code 128 barcode block laid
// out on a fixed-size white canvas.
package labelimg

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/banshee-data/labelsmith/internal/config"
	"github.com/banshee-data/labelsmith/internal/fsutil"
)

// Composer builds label images. Construction loads and pre-scales every
// static asset (two font faces, three logos) so per-identifier composition
// touches no disk and two composes of the same identifier are
// pixel-identical.
type Composer struct {
	cfg config.Config

	headerFace  font.Face
	regularFace font.Face
	captionFace font.Face

	logoPrimary image.Image
	logoWEEE    image.Image
	logoCE      image.Image
}

// NewComposer loads fonts and logo artwork per cfg. A missing or unreadable
// asset fails construction with a ComposeError; the station refuses to start
// rather than discover the problem on the first scan.
func NewComposer(cfg config.Config, fsys fsutil.FileSystem) (*Composer, error) {
	c := &Composer{cfg: cfg}

	var err error
	if c.headerFace, err = loadFace(fsys, cfg.FontBoldPath, defaultBoldTTF(), cfg.HeaderSize1); err != nil {
		return nil, &ComposeError{Stage: "bold font", Err: err}
	}
	if c.regularFace, err = loadFace(fsys, cfg.FontRegularPath, defaultRegularTTF(), cfg.HeaderSize2); err != nil {
		return nil, &ComposeError{Stage: "regular font", Err: err}
	}
	if c.captionFace, err = loadFace(fsys, cfg.FontRegularPath, defaultRegularTTF(), cfg.CaptionSize); err != nil {
		return nil, &ComposeError{Stage: "caption font", Err: err}
	}

	if c.logoPrimary, err = loadLogo(fsys, cfg.LogoPrimaryPath, cfg.LogoPrimaryWidth); err != nil {
		return nil, &ComposeError{Stage: "primary logo", Err: err}
	}
	if c.logoWEEE, err = loadLogo(fsys, cfg.LogoWEEEPath, cfg.LogoWEEEWidth); err != nil {
		return nil, &ComposeError{Stage: "WEEE logo", Err: err}
	}
	if c.logoCE, err = loadLogo(fsys, cfg.LogoCEPath, cfg.LogoCEWidth); err != nil {
		return nil, &ComposeError{Stage: "CE logo", Err: err}
	}

	return c, nil
}

// loadLogo decodes a PNG and resizes it to the target width, preserving
// aspect ratio with Catmull-Rom resampling.
func loadLogo(fsys fsutil.FileSystem, path string, widthPx int) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo %s: %w", path, err)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo %s: %w", path, err)
	}
	if src.Bounds().Dx() == widthPx {
		return src, nil
	}

	ratio := float64(widthPx) / float64(src.Bounds().Dx())
	heightPx := int(float64(src.Bounds().Dy()) * ratio)
	if heightPx < 1 {
		heightPx = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// FullCode returns the barcode payload and caption for an identifier.
func (c *Composer) FullCode(id string) string {
	return c.cfg.Prefix + id
}

// Compose produces the complete label for the identifier: exactly
// LabelWidth x LabelHeight pixels, white background, header top-left,
// primary logo top-right, logo pair bottom-right, barcode block bottom-left.
// The barcode is placed, never scaled; a block that does not fit the canvas
// is rejected with a ComposeError.
func (c *Composer) Compose(id string) (image.Image, error) {
	cfg := c.cfg
	canvas := image.NewRGBA(image.Rect(0, 0, cfg.LabelWidth, cfg.LabelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(canvas, c.headerFace, cfg.HeaderLine1, cfg.Margin, cfg.Margin)
	drawText(canvas, c.regularFace, cfg.HeaderLine2, cfg.Margin, cfg.Margin+cfg.HeaderOffset)

	// Primary logo flush top-right.
	paste(canvas, c.logoPrimary,
		cfg.LabelWidth-c.logoPrimary.Bounds().Dx()-cfg.Margin,
		cfg.Margin)

	// Logo pair flush bottom-right, aligned to the taller of the two.
	weeeH := c.logoWEEE.Bounds().Dy()
	ceH := c.logoCE.Bounds().Dy()
	pairH := max(weeeH, ceH)
	pairW := c.logoWEEE.Bounds().Dx() + cfg.LogoPairGap + c.logoCE.Bounds().Dx()
	pairX := cfg.LabelWidth - pairW - cfg.Margin
	pairY := cfg.LabelHeight - pairH - cfg.Margin
	paste(canvas, c.logoWEEE, pairX, pairY)
	paste(canvas, c.logoCE, pairX+c.logoWEEE.Bounds().Dx()+cfg.LogoPairGap, pairY)

	// Barcode block flush bottom-left.
	fullCode := c.FullCode(id)
	block, err := renderBarcode(fullCode, BarcodeParams{
		ModuleWidth: cfg.ModuleWidth,
		BarHeight:   cfg.BarHeight,
		QuietZone:   cfg.QuietZone,
		CaptionGap:  cfg.CaptionGap,
		CaptionPad:  cfg.CaptionPad,
	}, c.captionFace)
	if err != nil {
		return nil, &ComposeError{Stage: "barcode", Err: err}
	}
	if block.Bounds().Dx()+2*cfg.Margin > cfg.LabelWidth ||
		block.Bounds().Dy()+2*cfg.Margin > cfg.LabelHeight {
		return nil, &ComposeError{Stage: "barcode placement", Err: ErrBarcodeOverflow}
	}
	barY := cfg.LabelHeight - block.Bounds().Dy() - cfg.Margin
	draw.Draw(canvas,
		image.Rect(cfg.Margin, barY, cfg.Margin+block.Bounds().Dx(), barY+block.Bounds().Dy()),
		block, image.Point{}, draw.Src)

	return canvas, nil
}

// drawText draws s with its glyph box anchored at the given top-left
// position, matching the layout convention the sticker was specified in.
func drawText(dst draw.Image, face font.Face, s string, x, y int) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// paste composites src onto dst at (x, y) honouring src's alpha channel.
func paste(dst draw.Image, src image.Image, x, y int) {
	r := image.Rect(x, y, x+src.Bounds().Dx(), y+src.Bounds().Dy())
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}
