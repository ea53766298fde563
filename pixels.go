package dds

import (
	"encoding/binary"
	"image"
	"math"
)

// unorm returns v/255 the way the float formats store it: computed in
// double precision, then narrowed.
func unorm(v uint8) float64 {
	return float64(v) / 255.0
}

// encodeRaw serializes every pixel of img in row-major order for an
// uncompressed or float format.
func encodeRaw(img *image.NRGBA, format Format) []byte {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, format.PayloadSize(width, height))

	for y := 0; y < height; y++ {
		off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < width; x++ {
			p := img.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			out = appendPixel(out, format, p[0], p[1], p[2], p[3])
		}
	}

	return out
}

// appendPixel appends one pixel in the layout of format.
func appendPixel(out []byte, format Format, r, g, b, a uint8) []byte {
	switch format {
	case FormatRGBA32, FormatRGBA32DX10:
		return append(out, r, g, b, a)
	case FormatBGRA32:
		return append(out, b, g, r, a)
	case FormatRGB565:
		return binary.LittleEndian.AppendUint16(out, packRGB565(r, g, b))
	case FormatR8:
		return append(out, r)
	case FormatRG8:
		return append(out, r, g)
	case FormatAlpha8:
		return append(out, a)
	case FormatR16:
		return binary.LittleEndian.AppendUint16(out, uint16(r)*257)
	case FormatR16F:
		return appendHalf(out, r)
	case FormatRG16F:
		return appendHalf(out, r, g)
	case FormatRGBA16F:
		return appendHalf(out, r, g, b, a)
	case FormatR32F:
		return appendFloat(out, r)
	case FormatRG32F:
		return appendFloat(out, r, g)
	case FormatRGBA32F:
		return appendFloat(out, r, g, b, a)
	default:
		panic("dds: appendPixel called with non-raw format " + format.String())
	}
}

func appendHalf(out []byte, ch ...uint8) []byte {
	for _, v := range ch {
		out = binary.LittleEndian.AppendUint16(out, HalfBits(float32(unorm(v))))
	}
	return out
}

func appendFloat(out []byte, ch ...uint8) []byte {
	for _, v := range ch {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(float32(unorm(v))))
	}
	return out
}
