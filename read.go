package dds

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/bcn"
)

// File is a parsed DDS or EDDS file. Pixel data is not decoded.
type File struct {
	// Format is the registry format matching the headers, or FormatUnknown.
	Format Format
	// FormatLabel names what the headers declare (FourCC, DXGI code or
	// pixel layout), also for unknown formats.
	FormatLabel string

	Width             int
	Height            int
	Flags             uint32
	PitchOrLinearSize uint32
	MipMapCount       uint32
	PixelFormat       bcn.DDSPixelFormat

	// DXGIFormat is set when the file has a DX10 extension header.
	DXGIFormat uint32
	HasDX10    bool

	// EDDS is set for Enfusion files; BlockMagic is the stored block kind.
	EDDS       bool
	BlockMagic string

	// Payload holds the bytes after the headers (EDDS blocks inflated).
	Payload []byte
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read parses the headers and payload of a DDS or EDDS stream.
func Read(r io.Reader) (*File, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	format, label := detectFormat(header, dx10)
	file := &File{
		Format:            format,
		FormatLabel:       label,
		Width:             int(header.Width),
		Height:            int(header.Height),
		Flags:             header.Flags,
		PitchOrLinearSize: header.PitchOrLinearSize,
		MipMapCount:       header.MipMapCount,
		PixelFormat:       header.PixelFormat,
		EDDS:              header.Reserved1 == enfusionReserved1(),
	}
	if dx10 != nil {
		file.HasDX10 = true
		file.DXGIFormat = uint32(dx10.DXGIFormat)
	}

	expected := format.PayloadSize(file.Width, file.Height)

	if file.EDDS {
		payload, magic, err := readEDDSPayload(r, expected)
		if err != nil {
			return nil, err
		}
		file.Payload, file.BlockMagic = payload, magic
		return file, nil
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPayload, err)
	}
	if expected >= 0 && len(payload) != expected {
		return nil, fmt.Errorf("%w: %s: expected %d, got %d", ErrPayloadSizeMismatch, format, expected, len(payload))
	}
	file.Payload = payload

	return file, nil
}

// readEDDSPayload reads the single block table entry and body and inflates
// it. An unknown format (expected < 0) only works for COPY blocks and LZ4
// blocks whose stored size is trusted.
func readEDDSPayload(r io.Reader, expected int) ([]byte, string, error) {
	magic, size, err := readBlockTableEntry(r)
	if err != nil {
		return nil, "", err
	}
	if expected >= 0 && int(size) > maxBlockBodySize(magic, expected) {
		return nil, "", fmt.Errorf("%w: %s block of %d bytes for a %d byte payload", ErrBlockTableInvalidSize, magic, size, expected)
	}

	block, err := readBlockBody(r, magic, size)
	if err != nil {
		return nil, "", err
	}

	if expected < 0 {
		expected = len(block.Data)
		if magic == BlockMagicLZ4 && len(block.Data) >= 4 {
			expected = int(binary.LittleEndian.Uint32(block.Data[:4]))
		}
	}

	payload, err := decompressBlock(block, expected)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecompressBlock, err)
	}

	return payload, magic, nil
}
