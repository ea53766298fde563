package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	t.Parallel()

	data := make([]byte, 128*1024)
	for i := range data {
		data[i] = byte((i*31 + 7) & 0xff)
	}

	block, err := compressBlock(data)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if block.Magic != BlockMagicLZ4 {
		t.Fatalf("magic = %q, want LZ4", block.Magic)
	}

	// decompressBlock expects the body as stored: size prefix, then chunks
	var body bytes.Buffer
	if err := writeBlockData(&body, block); err != nil {
		t.Fatalf("writeBlockData: %v", err)
	}
	stored := &eddsBlock{Magic: block.Magic, Size: block.Size, Data: body.Bytes()}
	if int(block.Size) != body.Len() {
		t.Fatalf("table size %d != body %d", block.Size, body.Len())
	}

	out, err := decompressBlock(stored, len(data))
	if err != nil {
		t.Fatalf("decompressBlock: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round-trip mismatch")
	}
}

func TestCompressBlockFallsBackToCopy(t *testing.T) {
	t.Parallel()

	small := make([]byte, minCompressSize-1)
	block, err := compressBlock(small)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if block.Magic != BlockMagicCOPY {
		t.Fatalf("small input: magic = %q, want COPY", block.Magic)
	}

	// xorshift noise does not compress
	noise := make([]byte, 8*1024)
	x := uint32(2463534242)
	for i := range noise {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		noise[i] = byte(x)
	}
	block, err = compressBlock(noise)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if block.Magic != BlockMagicCOPY || !bytes.Equal(block.Data, noise) {
		t.Fatalf("noise: magic = %q, want COPY", block.Magic)
	}
}

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestWriteEDDSRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		img       *image.NRGBA
		format    Format
		compress  bool
		wantMagic string
	}{
		{name: "small-copy", img: testImage(4, 4), format: FormatRGBA32, compress: true, wantMagic: BlockMagicCOPY},
		{name: "large-lz4", img: solidImage(64, 64, color.NRGBA{R: 10, G: 20, B: 30, A: 255}), format: FormatBGRA32, compress: true, wantMagic: BlockMagicLZ4},
		{name: "large-no-compress", img: solidImage(64, 64, color.NRGBA{A: 255}), format: FormatRGBA32, compress: false, wantMagic: BlockMagicCOPY},
		{name: "dxt5-lz4", img: solidImage(128, 128, color.NRGBA{R: 200, A: 128}), format: FormatDXT5, compress: true, wantMagic: BlockMagicLZ4},
		{name: "bc7-dx10", img: testImage(8, 8), format: FormatBC7, compress: true, wantMagic: BlockMagicCOPY},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			payload, err := EncodePayload(tc.img, tc.format, nil)
			if err != nil {
				t.Fatalf("EncodePayload: %v", err)
			}

			var buf bytes.Buffer
			w, h := tc.img.Rect.Dx(), tc.img.Rect.Dy()
			if err := WriteEDDS(&buf, tc.format, w, h, payload, tc.compress); err != nil {
				t.Fatalf("WriteEDDS: %v", err)
			}

			raw := buf.Bytes()
			if got := binary.LittleEndian.Uint32(raw[36:]); got != 0x31464e45 {
				t.Fatalf("reserved marker = %#x", got)
			}
			if got := string(raw[HeaderSize(tc.format) : HeaderSize(tc.format)+4]); got != tc.wantMagic {
				t.Fatalf("block magic = %q, want %q", got, tc.wantMagic)
			}

			f, err := Read(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !f.EDDS || f.BlockMagic != tc.wantMagic {
				t.Fatalf("EDDS = %v, BlockMagic = %q", f.EDDS, f.BlockMagic)
			}
			if f.Format != tc.format || f.Width != w || f.Height != h {
				t.Fatalf("got %s %dx%d, want %s %dx%d", f.Format, f.Width, f.Height, tc.format, w, h)
			}
			if !bytes.Equal(f.Payload, payload) {
				t.Fatalf("payload mismatch")
			}
		})
	}
}

func TestWriteEDDSPayloadSizeMismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteEDDS(&buf, FormatDXT1, 4, 4, make([]byte, 7), true)
	if !errors.Is(err, ErrPayloadSizeMismatch) {
		t.Fatalf("expected %v, got %v", ErrPayloadSizeMismatch, err)
	}
}

func TestReadBlockTableEntryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "short-magic", data: []byte("LZ"), wantErr: ErrBlockTableMagicRead},
		{name: "short-size", data: []byte("COPY\x01"), wantErr: ErrBlockTableSizeRead},
		{name: "unknown-magic", data: []byte("ZSTD\x00\x00\x00\x00"), wantErr: ErrBlockTableUnknownMagic},
		{name: "negative-size", data: []byte("COPY\xff\xff\xff\xff"), wantErr: ErrBlockTableInvalidSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := readBlockTableEntry(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDecompressBlockErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		block    *eddsBlock
		expected int
		wantErr  error
	}{
		{name: "copy-size", block: &eddsBlock{Magic: BlockMagicCOPY, Data: make([]byte, 3)}, expected: 4, wantErr: ErrCopySizeMismatch},
		{name: "unknown-magic", block: &eddsBlock{Magic: "ZSTD"}, expected: 4, wantErr: ErrUnknownBlockMagic},
		{name: "lz4-no-size", block: &eddsBlock{Magic: BlockMagicLZ4, Data: []byte{1, 0}}, expected: 4, wantErr: ErrChunkStreamTruncated},
		{name: "lz4-size-mismatch", block: &eddsBlock{Magic: BlockMagicLZ4, Data: []byte{8, 0, 0, 0}}, expected: 4, wantErr: ErrDecodedSizeMismatch},
		{name: "lz4-no-chunk", block: &eddsBlock{Magic: BlockMagicLZ4, Data: []byte{4, 0, 0, 0}}, expected: 4, wantErr: ErrChunkHeaderRead},
		{name: "lz4-bad-flags", block: &eddsBlock{Magic: BlockMagicLZ4, Data: []byte{4, 0, 0, 0, 1, 0, 0, 0x01, 0}}, expected: 4, wantErr: ErrUnknownLZ4Flags},
		{name: "lz4-chunk-overrun", block: &eddsBlock{Magic: BlockMagicLZ4, Data: []byte{4, 0, 0, 0, 9, 0, 0, 0x80, 0}}, expected: 4, wantErr: ErrInvalidChunkSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := decompressBlock(tc.block, tc.expected)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWriteWithOptionsEDDSFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test_dxt5.edds")
	img := solidImage(16, 16, color.NRGBA{R: 100, G: 50, B: 25, A: 255})

	err := WriteWithOptions(img, path, &WriteOptions{
		Format:   FormatDXT5,
		EDDS:     true,
		Compress: true,
	})
	if err != nil {
		t.Fatalf("WriteWithOptions: %v", err)
	}

	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if f.Width != 16 || f.Height != 16 || f.Format != FormatDXT5 || !f.EDDS {
		t.Fatalf("unexpected file: %s %dx%d edds=%v", f.Format, f.Width, f.Height, f.EDDS)
	}
	if len(f.Payload) != FormatDXT5.PayloadSize(16, 16) {
		t.Fatalf("payload = %d bytes", len(f.Payload))
	}
}

func TestReadEDDSRejectsOversizedBlock(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDDS(&buf, FormatDXT1, 4, 4, make([]byte, 8), false); err != nil {
		t.Fatalf("WriteEDDS: %v", err)
	}
	valid := buf.Bytes()
	tableOff := HeaderSize(FormatDXT1)

	withEntry := func(magic string, size uint32) []byte {
		data := bytes.Clone(valid)
		copy(data[tableOff:], magic)
		binary.LittleEndian.PutUint32(data[tableOff+4:], size)
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "copy-huge", data: withEntry(BlockMagicCOPY, 0x7fffffff), wantErr: ErrBlockTableInvalidSize},
		{name: "copy-one-extra", data: withEntry(BlockMagicCOPY, 9), wantErr: ErrBlockTableInvalidSize},
		{name: "lz4-huge", data: withEntry(BlockMagicLZ4, 0x7fffffff), wantErr: ErrBlockTableInvalidSize},
		{name: "truncated-body", data: valid[:len(valid)-1], wantErr: ErrBlockBodyRead},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Read(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}
