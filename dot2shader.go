/*
Package dot2shader converts small indexed-color raster images into GLSL
shader source code that reconstructs them from a compact, bit-packed
representation.

An image is decoded once into a PixelArt value; every distinct 24-bit color
becomes a palette entry in first-occurrence order and every pixel becomes a
palette index. The glsl subpackage turns a PixelArt and a display
configuration into shader text.
*/
package dot2shader

import (
	"errors"
	"math/bits"
)

// ErrUnsupportedFormat is returned when the input is a recognized image
// container other than PNG, BMP, or GIF.
var ErrUnsupportedFormat = errors.New("dot2shader: supported image formats are PNG, BMP, and GIF")

var errPaletteIndex = errors.New("dot2shader: palette index out of range")

// PixelArt is an indexed-color image: an ordered palette of distinct 24-bit
// colors and one palette index per pixel, row-major from the top-left
// corner. A PixelArt is immutable once constructed.
type PixelArt struct {
	palette []uint32
	buffer  []uint32
	width   int
	height  int
}

// New constructs a PixelArt from an existing palette and index buffer. Every
// buffer entry must address a palette entry and the buffer must hold exactly
// width*height indices.
func New(palette, buffer []uint32, width, height int) (*PixelArt, error) {
	if len(palette) == 0 {
		return nil, errors.New("dot2shader: empty palette")
	}
	if len(buffer) != width*height {
		return nil, errors.New("dot2shader: buffer length does not match size")
	}
	for _, i := range buffer {
		if i >= uint32(len(palette)) {
			return nil, errPaletteIndex
		}
	}
	return &PixelArt{
		palette: append([]uint32(nil), palette...),
		buffer:  append([]uint32(nil), buffer...),
		width:   width,
		height:  height,
	}, nil
}

// Palette returns the distinct colors present in the image, in
// first-occurrence order. The returned slice must not be modified.
func (p *PixelArt) Palette() []uint32 {
	return p.palette
}

// Buffer returns the per-pixel palette indices, row-major from the top-left
// corner. The returned slice must not be modified.
func (p *PixelArt) Buffer() []uint32 {
	return p.buffer
}

// Width returns the image width in pixels.
func (p *PixelArt) Width() int {
	return p.width
}

// Height returns the image height in pixels.
func (p *PixelArt) Height() int {
	return p.height
}

// BitWidth returns the number of bits needed to encode one palette index,
// rounded up to a power of two so that a 32-bit word always holds a whole
// number of indices. A single-color palette still needs one bit.
func (p *PixelArt) BitWidth() int {
	m := len(p.palette) - 1
	if m < 1 {
		m = 1
	}
	n := bits.Len(uint(m))
	if n&(n-1) != 0 {
		n = 1 << bits.Len(uint(n))
	}
	return n
}

// Compressible reports whether the index buffer can be bit-packed, which
// requires every index to fit in at most 16 bits.
func (p *PixelArt) Compressible() bool {
	return len(p.palette) < 1<<16
}

// SwapPaletteIndices returns a copy of p with palette entries i and j
// exchanged and every buffer reference to either index rewritten, so the
// copy renders identically.
func (p *PixelArt) SwapPaletteIndices(i, j int) (*PixelArt, error) {
	if i < 0 || i >= len(p.palette) || j < 0 || j >= len(p.palette) {
		return nil, errPaletteIndex
	}
	palette := append([]uint32(nil), p.palette...)
	palette[i], palette[j] = palette[j], palette[i]
	buffer := append([]uint32(nil), p.buffer...)
	for k, v := range buffer {
		switch int(v) {
		case i:
			buffer[k] = uint32(j)
		case j:
			buffer[k] = uint32(i)
		}
	}
	return &PixelArt{
		palette: palette,
		buffer:  buffer,
		width:   p.width,
		height:  p.height,
	}, nil
}
