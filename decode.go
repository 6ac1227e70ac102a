package dot2shader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/png"
	"io"
	"io/ioutil"

	_ "golang.org/x/image/bmp"
)

// Magic numbers of containers we recognize but do not support. Anything
// else that fails to decode is reported as malformed input instead.
var unsupportedMagic = [][]byte{
	{0xff, 0xd8},             // JPEG
	[]byte("RIFF"),           // WebP
	[]byte("II*\x00"),        // TIFF, little-endian
	[]byte("MM\x00*"),        // TIFF, big-endian
	{0x00, 0x00, 0x01, 0x00}, // ICO
}

func recognizedContainer(data []byte) bool {
	for _, magic := range unsupportedMagic {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	return false
}

// DecodeBytes decodes a PNG, BMP, or GIF image into a PixelArt. The alpha
// channel is dropped; each distinct 24-bit color is assigned the next
// palette index the first time it is seen.
func DecodeBytes(data []byte) (*PixelArt, error) {
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if err == image.ErrFormat && recognizedContainer(data) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("dot2shader: %w", err)
	}

	b := m.Bounds()
	width, height := b.Dx(), b.Dy()

	rgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)

	col2idx := make(map[uint32]uint32)
	palette := make([]uint32, 0, 16)
	buffer := make([]uint32, width*height)
	for p := range buffer {
		pix := rgba.Pix[p*4:]
		c := uint32(pix[0])<<16 | uint32(pix[1])<<8 | uint32(pix[2])
		idx, ok := col2idx[c]
		if !ok {
			idx = uint32(len(palette))
			col2idx[c] = idx
			palette = append(palette, c)
		}
		buffer[p] = idx
	}

	return &PixelArt{
		palette: palette,
		buffer:  buffer,
		width:   width,
		height:  height,
	}, nil
}

// Decode reads an image from r and decodes it as per DecodeBytes.
func Decode(r io.Reader) (*PixelArt, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}
