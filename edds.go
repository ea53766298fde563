package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	// payloads below this size are always stored as COPY
	minCompressSize = 1024
	// compressed output must be at most this fraction of the input
	maxCompressRatio = 0.85
	lastChunkFlag    = 0x80
)

// eddsBlock is one EDDS block body with its table entry.
type eddsBlock struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

// WriteEDDS writes an already encoded payload framed as EDDS: the DDS headers
// with the Enfusion reserved marker, a one-entry block table and the block
// body. compress=false always stores a COPY block.
func WriteEDDS(w io.Writer, format Format, width, height int, payload []byte, compress bool) error {
	hdr, dx10, err := newHeader(format, width, height)
	if err != nil {
		return err
	}
	if expected := format.PayloadSize(width, height); len(payload) != expected {
		return fmt.Errorf("%w: %s %dx%d: expected %d, got %d", ErrPayloadSizeMismatch, format, width, height, expected, len(payload))
	}
	hdr.Reserved1 = enfusionReserved1()

	block, err := newEDDSBlock(payload, compress)
	if err != nil {
		return err
	}

	if err := writeHeaders(w, hdr, dx10); err != nil {
		return err
	}
	if _, err := w.Write([]byte(block.Magic)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockMagic, err)
	}
	if err := binary.Write(w, binary.LittleEndian, block.Size); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockSize, err)
	}

	return writeBlockData(w, block)
}

func newEDDSBlock(data []byte, compress bool) (*eddsBlock, error) {
	if compress {
		return compressBlock(data)
	}

	size, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}
	return &eddsBlock{Magic: BlockMagicCOPY, Size: size, Data: data}, nil
}

// writeBlockData writes the block payload (no table entry).
func writeBlockData(w io.Writer, block *eddsBlock) error {
	if block.Magic == BlockMagicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, block.UncompressedSize); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteUncompressedSize, err)
		}
		if _, err := w.Write(block.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteChunkStream, err)
		}
		return nil
	}
	if _, err := w.Write(block.Data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteBlockPayload, err)
	}
	return nil
}

// compressBlock compresses raw data into an LZ4 chunk stream, or falls back
// to COPY when the data is small or does not compress well.
func compressBlock(data []byte) (*eddsBlock, error) {
	uncompressedSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}
	copyBlock := &eddsBlock{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}

	if len(data) < minCompressSize {
		return copyBlock, nil
	}

	var chunkStream bytes.Buffer
	compressBuf := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for start := 0; start < len(data); start += ChunkSize {
		end := min(start+ChunkSize, len(data))
		src := data[start:end]

		cn, err := lz4.CompressBlockHC(src, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(src))*maxCompressRatio {
			return copyBlock, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		var flags byte
		if end == len(data) {
			flags = lastChunkFlag
		}
		chunkStream.Write([]byte{byte(cn), byte(cn >> 8), byte(cn >> 16), flags})
		chunkStream.Write(compressBuf[:cn])
	}

	compressed := chunkStream.Bytes()
	total := 4 + len(compressed)
	if float64(total) > float64(len(data))*maxCompressRatio {
		return copyBlock, nil
	}

	size, err := i32FromInt(total)
	if err != nil {
		return nil, fmt.Errorf("%w: %d bytes", ErrCompressedDataTooLarge, total)
	}

	return &eddsBlock{
		Magic:            BlockMagicLZ4,
		Size:             size,
		UncompressedSize: uncompressedSize,
		Data:             compressed,
	}, nil
}

// lz4Dict is the rolling 64 KiB window shared by consecutive chunks.
type lz4Dict struct {
	buf  [ChunkSize]byte
	size int
}

func (d *lz4Dict) bytes() []byte {
	return d.buf[:d.size]
}

// push appends decoded output, keeping only the most recent window.
func (d *lz4Dict) push(decoded []byte) {
	if len(decoded) >= len(d.buf) {
		copy(d.buf[:], decoded[len(decoded)-len(d.buf):])
		d.size = len(d.buf)
		return
	}

	if avail := len(d.buf) - d.size; len(decoded) > avail {
		shift := len(decoded) - avail
		copy(d.buf[:], d.buf[shift:d.size])
		d.size -= shift
	}
	copy(d.buf[d.size:], decoded)
	d.size += len(decoded)
}

// decompressBlock inflates an EDDS block body into raw data.
// block.Data holds the body as stored: for LZ4 blocks that is the
// uncompressed size followed by the chunk stream.
func decompressBlock(block *eddsBlock, expectedSize int) ([]byte, error) {
	switch block.Magic {
	case BlockMagicCOPY:
		if len(block.Data) != expectedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedSize, len(block.Data))
		}
		out := make([]byte, len(block.Data))
		copy(out, block.Data)
		return out, nil
	case BlockMagicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}

	if len(block.Data) < 4 {
		return nil, fmt.Errorf("%w: missing uncompressed size", ErrChunkStreamTruncated)
	}
	targetSize := int(binary.LittleEndian.Uint32(block.Data[:4]))
	if targetSize != expectedSize {
		return nil, fmt.Errorf("%w: expected %d, header says %d", ErrDecodedSizeMismatch, expectedSize, targetSize)
	}

	var dict lz4Dict
	target := make([]byte, targetSize)
	outIdx := 0
	r := bytes.NewReader(block.Data[4:])

	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkHeaderRead, err)
		}

		cSize := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^lastChunkFlag != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkDataRead, err)
		}

		remaining := targetSize - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := target[outIdx : outIdx+min(ChunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict.bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		dict.push(dst[:n])
		outIdx += n

		if flags&lastChunkFlag != 0 {
			break
		}
	}

	if outIdx != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, outIdx)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}

// readBlockTableEntry reads one EDDS block table entry.
func readBlockTableEntry(r io.Reader) (string, int32, error) {
	var magicBytes [4]byte
	if _, err := io.ReadFull(r, magicBytes[:]); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrBlockTableMagicRead, err)
	}

	var size int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrBlockTableSizeRead, err)
	}

	magic := string(magicBytes[:])
	if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
		return "", 0, fmt.Errorf("%w: %q", ErrBlockTableUnknownMagic, magic)
	}
	if size < 0 {
		return "", 0, fmt.Errorf("%w: %d", ErrBlockTableInvalidSize, size)
	}

	return magic, size, nil
}

// maxBlockBodySize is the largest body a block table entry may declare for
// a payload of expected bytes.
func maxBlockBodySize(magic string, expected int) int {
	if magic == BlockMagicCOPY {
		return expected
	}
	chunks := max(1, (expected+ChunkSize-1)/ChunkSize)
	return 4 + chunks*4 + lz4.CompressBlockBound(ChunkSize)*chunks
}

// readBlockBody reads a block body of the size given by its table entry.
// The body grows with the data actually read, so a bogus size on a short
// stream fails without allocating it up front.
func readBlockBody(r io.Reader, magic string, size int32) (*eddsBlock, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, magic, err)
	}
	if len(data) != int(size) {
		return nil, fmt.Errorf("%w: %s: %d of %d bytes", ErrBlockBodyRead, magic, len(data), size)
	}

	return &eddsBlock{Magic: magic, Size: size, Data: data}, nil
}
