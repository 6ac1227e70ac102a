package glsl

// flipRows returns buffer with its pixel rows in reverse order, so the
// first row of the result is the bottom row of the image.
func flipRows(buffer []uint32, width int) []uint32 {
	out := make([]uint32, 0, len(buffer))
	for i := len(buffer); i > 0; i -= width {
		out = append(out, buffer[i-width:i]...)
	}
	return out
}

// packWords folds runs of 32/bitWidth indices into single 32-bit words,
// zero-padding the final run. With reverseEachChunk the run's first index
// lands in the low-order bits (decode shift: position*bitWidth); without it
// the first index lands in the highest bits used (decode shift:
// (chunkSize-1-position)*bitWidth).
func packWords(indices []uint32, bitWidth int, reverseEachChunk bool) []uint32 {
	chunkSize := 32 / bitWidth
	words := make([]uint32, 0, (len(indices)+chunkSize-1)/chunkSize)
	chunk := make([]uint32, chunkSize)
	for start := 0; start < len(indices); start += chunkSize {
		end := start + chunkSize
		if end > len(indices) {
			end = len(indices)
		}
		n := copy(chunk, indices[start:end])
		for i := n; i < chunkSize; i++ {
			chunk[i] = 0
		}
		var word uint32
		if reverseEachChunk {
			for i := chunkSize - 1; i >= 0; i-- {
				word = word<<bitWidth | chunk[i]
			}
		} else {
			for i := 0; i < chunkSize; i++ {
				word = word<<bitWidth | chunk[i]
			}
		}
		words = append(words, word)
	}
	return words
}
