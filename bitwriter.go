package dds

import "fmt"

// bitWriter packs fields LSB-first into a fixed-size block. Each field starts
// at the bit right after the previous one; there is no padding. The buffer
// must start zeroed.
type bitWriter struct {
	buf []byte
	pos int // next free bit
}

func newBitWriter(buf []byte) *bitWriter {
	return &bitWriter{buf: buf}
}

// writeBits appends the low width bits of value. Writing past the end of the
// buffer is a caller bug and panics.
func (w *bitWriter) writeBits(value uint32, width int) {
	if width < 0 || width > 32 {
		panic(fmt.Sprintf("dds: bit field width %d out of range", width))
	}
	if w.pos+width > len(w.buf)*8 {
		panic(fmt.Sprintf("dds: bit field overflows %d-byte block at bit %d (+%d)", len(w.buf), w.pos, width))
	}

	for width > 0 {
		byteOff := w.pos >> 3
		shift := w.pos & 7
		n := min(8-shift, width)
		mask := uint32(1)<<n - 1

		w.buf[byteOff] |= byte((value & mask) << shift)

		value >>= n
		width -= n
		w.pos += n
	}
}

// bitsWritten reports the cursor position.
func (w *bitWriter) bitsWritten() int {
	return w.pos
}
