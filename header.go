package dds

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/woozymasta/bcn"
)

const (
	// DX10HeaderSize is the size of the DDS_HEADER_DXT10 extension.
	DX10HeaderSize = 20

	// D3D10_RESOURCE_DIMENSION_TEXTURE2D
	resourceDimensionTexture2D = 3
)

// HeaderSize returns the number of bytes WriteHeader emits for format.
func HeaderSize(format Format) int {
	n := int(4 + bcn.DDSHeaderSize)
	if format.NeedsDX10() {
		n += DX10HeaderSize
	}
	return n
}

// WriteHeader writes the DDS magic, the fixed header and, when the format
// needs it, the DX10 extension header.
func WriteHeader(w io.Writer, format Format, width, height int) error {
	hdr, dx10, err := newHeader(format, width, height)
	if err != nil {
		return err
	}

	return writeHeaders(w, hdr, dx10)
}

// newHeader validates the image size and builds both headers.
func newHeader(format Format, width, height int) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	w32, h32, err := headerDimensions(width, height)
	if err != nil {
		return nil, nil, err
	}

	return makeDDSHeader(format, w32, h32)
}

func writeHeaders(w io.Writer, hdr *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(w, hdr); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}
	if dx10 != nil {
		if err := binary.Write(w, binary.LittleEndian, dx10); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteDX10Header, err)
		}
	}

	return nil
}
