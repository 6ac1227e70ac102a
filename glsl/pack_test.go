package glsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/dot2shader"
)

func TestFlipRows(t *testing.T) {
	buffer := []uint32{0, 1, 2, 3, 4, 5}
	assert.Equal(t, []uint32{4, 5, 2, 3, 0, 1}, flipRows(buffer, 2))
	assert.Equal(t, []uint32{3, 4, 5, 0, 1, 2}, flipRows(buffer, 3))
	assert.Equal(t, []uint32{5, 4, 3, 2, 1, 0}, flipRows(buffer, 1))
}

func TestPackWords(t *testing.T) {
	// Four 2-bit values plus twelve zeros of padding in one word.
	indices := []uint32{0, 0, 1, 2}

	// First value at bit 0: 0 | 0<<2 | 1<<4 | 2<<6.
	assert.Equal(t, []uint32{144}, packWords(indices, 2, true))

	// First value in the highest bits used: (1<<2 | 2) << 24.
	assert.Equal(t, []uint32{100663296}, packWords(indices, 2, false))
}

// unpackWords applies the decode-time shift/mask formula emitted into the
// shader, reproducing the original index sequence.
func unpackWords(words []uint32, bitWidth int, reverseEachChunk bool, n int) []uint32 {
	chunkSize := 32 / bitWidth
	mask := uint32(1)<<bitWidth - 1
	out := make([]uint32, n)
	for i := range out {
		pos := i % chunkSize
		shift := pos * bitWidth
		if !reverseEachChunk {
			shift = (chunkSize - 1 - pos) * bitWidth
		}
		out[i] = words[i/chunkSize] >> shift & mask
	}
	return out
}

func TestPackUnpackInverse(t *testing.T) {
	paletteLens := []int{1, 2, 3, 4, 16, 17, 256, 257, 65535}
	for _, paletteLen := range paletteLens {
		palette := make([]uint32, paletteLen)
		for i := range palette {
			palette[i] = uint32(i)
		}

		// A length that is not a multiple of any chunk size, to
		// exercise the zero padding.
		indices := make([]uint32, 37)
		for i := range indices {
			indices[i] = uint32(i*7) % uint32(paletteLen)
		}
		art, err := dot2shader.New(palette, indices, 37, 1)
		require.NoError(t, err)

		bitWidth := art.BitWidth()
		for _, reverseEachChunk := range []bool{true, false} {
			words := packWords(indices, bitWidth, reverseEachChunk)
			got := unpackWords(words, bitWidth, reverseEachChunk, len(indices))
			assert.Equal(t, indices, got, "palette length %d, reverseEachChunk %v", paletteLen, reverseEachChunk)
		}
	}
}
