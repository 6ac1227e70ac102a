package dot2shader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int, colors []color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		img.SetNRGBA(i%width, i/width, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
)

func TestDecodeBytes(t *testing.T) {
	data := encodePNG(t, 2, 2, []color.NRGBA{red, red, green, blue})

	art, err := DecodeBytes(data)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0xff0000, 0x00ff00, 0x0000ff}, art.Palette())
	assert.Equal(t, []uint32{0, 0, 1, 2}, art.Buffer())
	assert.Equal(t, 2, art.Width())
	assert.Equal(t, 2, art.Height())
}

func TestDecodeDeterministic(t *testing.T) {
	data := encodePNG(t, 3, 2, []color.NRGBA{blue, green, green, red, blue, red})

	first, err := DecodeBytes(data)
	require.NoError(t, err)
	second, err := DecodeBytes(data)
	require.NoError(t, err)

	assert.Equal(t, first.Palette(), second.Palette())
	assert.Equal(t, first.Buffer(), second.Buffer())
}

func TestDecodeDropsAlpha(t *testing.T) {
	transparent := red
	transparent.A = 0x10
	data := encodePNG(t, 2, 1, []color.NRGBA{red, transparent})

	art, err := DecodeBytes(data)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0xff0000}, art.Palette())
	assert.Equal(t, []uint32{0, 0}, art.Buffer())
}

func TestDecodeReader(t *testing.T) {
	data := encodePNG(t, 1, 1, []color.NRGBA{red})

	art, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xff0000}, art.Palette())
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	// A JPEG header; recognized container, unsupported format.
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

	_, err := DecodeBytes(jpeg)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := DecodeBytes([]byte("certainly not an image"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))

	// A truncated PNG is a decode error, not an unsupported format.
	data := encodePNG(t, 2, 2, []color.NRGBA{red, red, green, blue})
	_, err = DecodeBytes(data[:len(data)/2])
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestBitWidth(t *testing.T) {
	tables := []struct {
		paletteLen int
		bitWidth   int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 4},
		{16, 4},
		{17, 8},
		{256, 8},
		{257, 16},
		{65535, 16},
		{65536, 16},
		{65537, 32},
	}
	for _, table := range tables {
		art := &PixelArt{palette: make([]uint32, table.paletteLen)}
		assert.Equal(t, table.bitWidth, art.BitWidth(), "palette length %d", table.paletteLen)
	}
}

func TestCompressible(t *testing.T) {
	art := &PixelArt{palette: make([]uint32, 65535)}
	assert.True(t, art.Compressible())

	art = &PixelArt{palette: make([]uint32, 65536)}
	assert.False(t, art.Compressible())
}

func TestNew(t *testing.T) {
	art, err := New([]uint32{1, 2, 3}, []uint32{0, 0, 1, 2}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, art.Palette())

	_, err = New([]uint32{1, 2}, []uint32{0, 2}, 2, 1)
	assert.Error(t, err)

	_, err = New([]uint32{1, 2}, []uint32{0, 1, 0}, 2, 1)
	assert.Error(t, err)

	_, err = New(nil, nil, 0, 0)
	assert.Error(t, err)
}

func TestSwapPaletteIndices(t *testing.T) {
	art, err := New([]uint32{0xff0000, 0x00ff00, 0x0000ff}, []uint32{0, 0, 1, 2}, 2, 2)
	require.NoError(t, err)

	swapped, err := art.SwapPaletteIndices(0, 2)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0x0000ff, 0x00ff00, 0xff0000}, swapped.Palette())
	assert.Equal(t, []uint32{2, 2, 1, 0}, swapped.Buffer())

	// Every pixel still renders the same color.
	for i := range art.Buffer() {
		assert.Equal(t, art.Palette()[art.Buffer()[i]], swapped.Palette()[swapped.Buffer()[i]])
	}

	// The original is untouched.
	assert.Equal(t, []uint32{0xff0000, 0x00ff00, 0x0000ff}, art.Palette())
	assert.Equal(t, []uint32{0, 0, 1, 2}, art.Buffer())

	_, err = art.SwapPaletteIndices(0, 3)
	assert.Error(t, err)
	_, err = art.SwapPaletteIndices(-1, 0)
	assert.Error(t, err)
}
