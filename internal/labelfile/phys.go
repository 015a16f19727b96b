package labelfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/banshee-data/labelsmith/internal/units"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ihdrEnd is the offset of the first byte after the IHDR chunk: 8 signature
// bytes + 4 length + 4 type + 13 data + 4 CRC. The PNG spec requires IHDR
// to be the first chunk, so a pHYs chunk inserted here is always valid.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// withDPI splices a pHYs chunk carrying the given resolution into an
// encoded PNG. image/png does not write physical-dimension metadata itself.
func withDPI(data []byte, dpi int) ([]byte, error) {
	if len(data) < ihdrEnd || !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("data is not an encoded PNG")
	}
	if string(data[12:16]) != "IHDR" {
		return nil, fmt.Errorf("PNG does not start with IHDR chunk")
	}

	ppm := units.PixelsPerMetre(dpi)

	// length(4) + "pHYs"(4) + x ppm(4) + y ppm(4) + unit(1) + CRC(4)
	chunk := make([]byte, 21)
	binary.BigEndian.PutUint32(chunk[0:4], 9)
	copy(chunk[4:8], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:12], ppm)
	binary.BigEndian.PutUint32(chunk[12:16], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:21], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}
