package labelimg

import (
	"fmt"

	"codeberg.org/go-fonts/liberation/liberationsansbold"
	"codeberg.org/go-fonts/liberation/liberationsansregular"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/banshee-data/labelsmith/internal/fsutil"
)

// loadFace builds a fixed-size face from the font file at path, or from the
// embedded fallback TTF when path is empty. sizePx is the em size in pixels
// (the face is built at 72 DPI so points equal pixels).
func loadFace(fsys fsutil.FileSystem, path string, fallback []byte, sizePx int) (font.Face, error) {
	ttf := fallback
	if path != "" {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		ttf = data
	}
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build font face: %w", err)
	}
	return face, nil
}

// Embedded defaults: Liberation Sans is metric-compatible with the Arial
// faces the sticker was designed around.
func defaultBoldTTF() []byte    { return liberationsansbold.TTF }
func defaultRegularTTF() []byte { return liberationsansregular.TTF }
