package dds

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"
)

// Format identifies one entry of the fixed output format registry.
type Format int

// Registry formats, in the order the fixture set emits them.
const (
	FormatUnknown Format = iota
	FormatRGBA32
	FormatBGRA32
	FormatRGB565
	FormatR8
	FormatRG8
	FormatAlpha8
	FormatR16
	FormatR16F
	FormatRG16F
	FormatRGBA16F
	FormatR32F
	FormatRG32F
	FormatRGBA32F
	FormatDXT1
	FormatDXT5
	FormatBC4
	FormatBC5
	FormatBC7
	FormatBC6H
	FormatRGBA32DX10
	FormatPalette4
	FormatPalette8

	formatCount
)

// D3DFMT codes stored directly in the FourCC field for float formats.
const (
	d3dfmtR16F          = 111
	d3dfmtG16R16F       = 112
	d3dfmtA16B16G16R16F = 113
	d3dfmtR32F          = 114
	d3dfmtG32R32F       = 115
	d3dfmtA32B32G32R32F = 116
)

// DXGI_FORMAT values used by the DX10 extension header.
const (
	DXGIFormatR8G8B8A8UNorm = 28
	DXGIFormatBC6HUF16      = 95
	DXGIFormatBC7UNorm      = 98
)

var (
	fourCCDXT1 = makeFourCC('D', 'X', 'T', '1')
	fourCCDXT5 = makeFourCC('D', 'X', 'T', '5')
	fourCCATI1 = makeFourCC('A', 'T', 'I', '1')
	fourCCATI2 = makeFourCC('A', 'T', 'I', '2')
)

// formatInfo is the header and payload description of one registry format.
type formatInfo struct {
	name     string
	dxgiName string

	pfFlags  uint32
	fourCC   uint32
	bitCount uint32
	masks    [4]uint32 // R, G, B, A
	dxgi     uint32    // non-zero selects the DX10 extension header

	pixelSize int  // bytes per pixel for raw formats
	blockSize int  // bytes per 4x4 block for compressed formats
	linear    bool // LINEARSIZE instead of PITCH
}

var formatTable = [formatCount]formatInfo{
	FormatRGBA32: {
		name: "rgba32", dxgiName: "R8G8B8A8_UNORM",
		pfFlags: uint32(bcn.DDSPFRGB | bcn.DDSPFAlphaPixels), bitCount: 32,
		masks:     [4]uint32{0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000},
		pixelSize: 4,
	},
	FormatBGRA32: {
		name: "bgra32", dxgiName: "B8G8R8A8_UNORM",
		pfFlags: uint32(bcn.DDSPFRGB | bcn.DDSPFAlphaPixels), bitCount: 32,
		masks:     [4]uint32{0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000},
		pixelSize: 4,
	},
	FormatRGB565: {
		name: "rgb565", dxgiName: "B5G6R5_UNORM",
		pfFlags: uint32(bcn.DDSPFRGB), bitCount: 16,
		masks:     [4]uint32{0xf800, 0x07e0, 0x001f, 0},
		pixelSize: 2,
	},
	FormatR8: {
		name: "r8", dxgiName: "R8_UNORM",
		pfFlags: uint32(bcn.DDSPFLuminance), bitCount: 8,
		masks:     [4]uint32{0xff, 0, 0, 0},
		pixelSize: 1,
	},
	FormatRG8: {
		name: "rg8", dxgiName: "R8G8_UNORM",
		pfFlags: uint32(bcn.DDSPFLuminance), bitCount: 16,
		masks:     [4]uint32{0x00ff, 0, 0, 0xff00},
		pixelSize: 2,
	},
	FormatAlpha8: {
		name: "alpha8", dxgiName: "A8_UNORM",
		pfFlags: uint32(bcn.DDSPFAlpha), bitCount: 8,
		masks:     [4]uint32{0, 0, 0, 0xff},
		pixelSize: 1,
	},
	FormatR16: {
		name: "r16", dxgiName: "R16_UNORM",
		pfFlags: uint32(bcn.DDSPFLuminance), bitCount: 16,
		masks:     [4]uint32{0xffff, 0, 0, 0},
		pixelSize: 2,
	},
	FormatR16F: {
		name: "r16f", dxgiName: "R16_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtR16F,
		pixelSize: 2, linear: true,
	},
	FormatRG16F: {
		name: "rg16f", dxgiName: "R16G16_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtG16R16F,
		pixelSize: 4, linear: true,
	},
	FormatRGBA16F: {
		name: "rgba16f", dxgiName: "R16G16B16A16_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtA16B16G16R16F,
		pixelSize: 8, linear: true,
	},
	FormatR32F: {
		name: "r32f", dxgiName: "R32_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtR32F,
		pixelSize: 4, linear: true,
	},
	FormatRG32F: {
		name: "rg32f", dxgiName: "R32G32_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtG32R32F,
		pixelSize: 8, linear: true,
	},
	FormatRGBA32F: {
		name: "rgba32f", dxgiName: "R32G32B32A32_FLOAT",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: d3dfmtA32B32G32R32F,
		pixelSize: 16, linear: true,
	},
	FormatDXT1: {
		name: "dxt1", dxgiName: "BC1_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: fourCCDXT1,
		blockSize: BC1BlockSize, linear: true,
	},
	FormatDXT5: {
		name: "dxt5", dxgiName: "BC3_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: fourCCDXT5,
		blockSize: BC3BlockSize, linear: true,
	},
	FormatBC4: {
		name: "bc4", dxgiName: "BC4_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: fourCCATI1,
		blockSize: BC4BlockSize, linear: true,
	},
	FormatBC5: {
		name: "bc5", dxgiName: "BC5_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: fourCCATI2,
		blockSize: BC5BlockSize, linear: true,
	},
	FormatBC7: {
		name: "bc7", dxgiName: "BC7_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: bcn.DDSFourCCDX10, dxgi: DXGIFormatBC7UNorm,
		blockSize: BC7BlockSize, linear: true,
	},
	FormatBC6H: {
		name: "bc6h", dxgiName: "BC6H_UF16",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: bcn.DDSFourCCDX10, dxgi: DXGIFormatBC6HUF16,
		blockSize: BC6HBlockSize, linear: true,
	},
	FormatRGBA32DX10: {
		name: "rgba32_dx10", dxgiName: "R8G8B8A8_UNORM",
		pfFlags: uint32(bcn.DDSPFFourCC), fourCC: bcn.DDSFourCCDX10, dxgi: DXGIFormatR8G8B8A8UNorm,
		pixelSize: 4, linear: true,
	},
	FormatPalette4: {
		name: "palette4", dxgiName: "PALETTE4",
		bitCount: 4,
	},
	FormatPalette8: {
		name: "palette8", dxgiName: "PALETTE8",
		bitCount: 8,
	},
}

// Formats returns every registry format in emission order.
func Formats() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := FormatRGBA32; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}

// ParseFormat looks a format up by its short name (case-insensitive),
// e.g. "dxt1" or "rgba32_dx10".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f := FormatRGBA32; f < formatCount; f++ {
		if formatTable[f].name == name {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

func (f Format) valid() bool {
	return f > FormatUnknown && f < formatCount
}

func (f Format) info() *formatInfo {
	if !f.valid() {
		return &formatInfo{name: "unknown", dxgiName: "UNKNOWN"}
	}
	return &formatTable[f]
}

// String returns the short registry name.
func (f Format) String() string {
	return f.info().name
}

// DXGIName returns the GPU format name the file represents.
func (f Format) DXGIName() string {
	return f.info().dxgiName
}

// IsCompressed reports whether the payload is a sequence of 4x4 blocks.
func (f Format) IsCompressed() bool {
	return f.info().blockSize > 0
}

// IsIndexed reports whether the payload is a palette table plus indices.
func (f Format) IsIndexed() bool {
	return f == FormatPalette4 || f == FormatPalette8
}

// NeedsDX10 reports whether the header carries the DX10 extension.
func (f Format) NeedsDX10() bool {
	return f.info().dxgi != 0
}

// BlockSize returns the encoded size of one 4x4 block, or 0 for
// uncompressed formats.
func (f Format) BlockSize() int {
	return f.info().blockSize
}

// IndexBits returns 4 or 8 for palette formats and 0 otherwise.
func (f Format) IndexBits() int {
	if !f.IsIndexed() {
		return 0
	}
	return int(f.info().bitCount)
}

// PayloadSize returns the number of bytes following the headers for an
// image of the given size, or -1 for an unknown format.
func (f Format) PayloadSize(width, height int) int {
	info := f.info()
	switch {
	case !f.valid():
		return -1
	case info.blockSize > 0:
		return blockCount(width, height) * info.blockSize
	case f.IsIndexed():
		return indexedPayloadSize(f.IndexBits(), width*height)
	default:
		return width * height * info.pixelSize
	}
}

// pitchOrLinearSize returns the header's dwPitchOrLinearSize.
func (f Format) pitchOrLinearSize(width, height int) int {
	info := f.info()
	switch {
	case info.blockSize > 0:
		return blockCount(width, height) * info.blockSize
	case f == FormatPalette4:
		return (width + 1) / 2
	case f == FormatPalette8:
		return width
	case info.linear:
		return width * height * info.pixelSize
	default:
		return width * info.pixelSize
	}
}

// blockCount returns the number of 4x4 blocks covering the image; a
// dimension below 4 still takes one block.
func blockCount(width, height int) int {
	return max(1, (width+3)/4) * max(1, (height+3)/4)
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

func intToFourCC(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

// enfusionReserved1 is the reserved header area of EDDS files.
func enfusionReserved1() [11]uint32 {
	return [11]uint32{
		0,
		0x31464e45, // "ENF1"
		0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
}

// makeDDSHeader builds the fixed header and, for DX10 formats, the extension
// header. Depth is 0 and the mip count 1 for every format.
func makeDDSHeader(format Format, width, height uint32) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	if !format.valid() {
		return nil, nil, ErrInvalidFormat
	}
	info := format.info()

	size, err := u32FromInt(format.pitchOrLinearSize(int(width), int(height)))
	if err != nil {
		return nil, nil, err
	}

	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat)
	if size > 0 {
		if info.linear || info.blockSize > 0 {
			flags |= uint32(bcn.DDSFlagLinearSize)
		} else {
			flags |= uint32(bcn.DDSFlagPitch)
		}
	}

	hdr := &bcn.DDSHeader{
		Size:              bcn.DDSHeaderSize,
		Flags:             flags,
		Height:            height,
		Width:             width,
		PitchOrLinearSize: size,
		Depth:             0,
		MipMapCount:       1,
		Caps:              uint32(bcn.DDSCapsTexture),
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = info.pfFlags
	hdr.PixelFormat.FourCC = info.fourCC
	hdr.PixelFormat.RGBBitCount = info.bitCount
	hdr.PixelFormat.RBitMask = info.masks[0]
	hdr.PixelFormat.GBitMask = info.masks[1]
	hdr.PixelFormat.BBitMask = info.masks[2]
	hdr.PixelFormat.ABitMask = info.masks[3]

	if info.dxgi == 0 {
		return hdr, nil, nil
	}

	return hdr, &bcn.DDSHeaderDX10{
		DXGIFormat:        info.dxgi,
		ResourceDimension: resourceDimensionTexture2D,
		ArraySize:         1,
	}, nil
}

// detectFormat maps parsed headers back onto the registry.
func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (Format, string) {
	pf := header.PixelFormat

	if dx10 != nil {
		dxgi := uint32(dx10.DXGIFormat)
		for f := FormatRGBA32; f < formatCount; f++ {
			if formatTable[f].dxgi != 0 && formatTable[f].dxgi == dxgi {
				return f, fmt.Sprintf("DXGI %d", dxgi)
			}
		}
		return FormatUnknown, fmt.Sprintf("DXGI %d", dxgi)
	}

	if (pf.Flags & uint32(bcn.DDSPFFourCC)) != 0 {
		for f := FormatRGBA32; f < formatCount; f++ {
			info := &formatTable[f]
			if info.dxgi == 0 && info.fourCC != 0 && info.fourCC == pf.FourCC {
				return f, fourCCLabel(pf.FourCC)
			}
		}
		return FormatUnknown, fourCCLabel(pf.FourCC)
	}

	for f := FormatRGBA32; f < formatCount; f++ {
		info := &formatTable[f]
		if info.fourCC != 0 {
			continue
		}
		if pf.Flags == info.pfFlags && pf.RGBBitCount == info.bitCount &&
			pf.RBitMask == info.masks[0] && pf.GBitMask == info.masks[1] &&
			pf.BBitMask == info.masks[2] && pf.ABitMask == info.masks[3] {
			return f, strings.ToUpper(info.name)
		}
	}

	return FormatUnknown, "UNKNOWN"
}

// fourCCLabel renders printable codes as text and D3DFMT numbers as decimal.
func fourCCLabel(v uint32) string {
	if v < 256 {
		return fmt.Sprintf("D3DFMT %d", v)
	}
	return intToFourCC(v)
}
