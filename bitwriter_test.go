package dds

import (
	"bytes"
	"testing"
)

func TestBitWriterPacksLSBFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields [][2]uint32 // value, width
		want   []byte
	}{
		{name: "single-bit", fields: [][2]uint32{{1, 1}}, want: []byte{0x01, 0x00}},
		{name: "mode6-tag", fields: [][2]uint32{{1 << 6, 7}, {1, 1}}, want: []byte{0xc0, 0x00}},
		{name: "cross-byte", fields: [][2]uint32{{0x7, 3}, {0x1ff, 9}}, want: []byte{0xff, 0x0f}},
		{name: "truncates-value", fields: [][2]uint32{{0xff, 4}}, want: []byte{0x0f, 0x00}},
		{name: "zero-width", fields: [][2]uint32{{0xff, 0}, {0x1, 2}}, want: []byte{0x01, 0x00}},
		{name: "full-16", fields: [][2]uint32{{0xbeef, 16}}, want: []byte{0xef, 0xbe}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := make([]byte, 2)
			w := newBitWriter(buf)
			total := 0
			for _, f := range tc.fields {
				w.writeBits(f[0], int(f[1]))
				total += int(f[1])
			}
			if w.bitsWritten() != total {
				t.Fatalf("bitsWritten() = %d, want %d", w.bitsWritten(), total)
			}
			if !bytes.Equal(buf, tc.want) {
				t.Fatalf("buf = % x, want % x", buf, tc.want)
			}
		})
	}
}

func TestBitWriterPanicsOnOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		preBits int
		width   int
	}{
		{name: "past-end", preBits: 62, width: 3},
		{name: "full", preBits: 64, width: 1},
		{name: "negative-width", width: -1},
		{name: "too-wide", width: 33},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := newBitWriter(make([]byte, 8))
			for n := tc.preBits; n > 0; n -= min(n, 32) {
				w.writeBits(0, min(n, 32))
			}

			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			w.writeBits(0, tc.width)
		})
	}
}

func TestBitWriterFillsBlockExactly(t *testing.T) {
	t.Parallel()

	buf := make([]byte, BC7BlockSize)
	w := newBitWriter(buf)
	for i := 0; i < 4; i++ {
		w.writeBits(0xffffffff, 32)
	}
	if w.bitsWritten() != 128 {
		t.Fatalf("bitsWritten() = %d, want 128", w.bitsWritten())
	}
	for i, b := range buf {
		if b != 0xff {
			t.Fatalf("byte %d = %#x, want 0xff", i, b)
		}
	}
}
