package dds

import (
	"encoding/binary"
	"image/color"
)

// BC1BlockSize is the encoded size of one BC1/DXT1 block.
const BC1BlockSize = 8

// packRGB565 truncates an 8-bit color to 5:6:5.
func packRGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// unpackRGB565 expands a 5:6:5 color back to 8 bits per channel.
func unpackRGB565(v uint16) rgb {
	r := uint32(v>>11) & 0x1f
	g := uint32(v>>5) & 0x3f
	b := uint32(v) & 0x1f
	return rgb{uint8(r * 255 / 31), uint8(g * 255 / 63), uint8(b * 255 / 31)}
}

// EncodeBC1 encodes the RGB channels of a block as BC1 (DXT1). Source alpha
// is ignored and the block always uses the opaque 4-color mode, so the first
// endpoint is never smaller than the second.
func EncodeBC1(b Block) [BC1BlockSize]byte {
	high, low := lumaEndpoints(&b)
	c0 := packRGB565(high.R, high.G, high.B)
	c1 := packRGB565(low.R, low.G, low.B)

	if c0 < c1 {
		c0, c1 = c1, c0
	}
	if c0 == c1 {
		c0 = max(c0, 1)
		if c0 == c1 {
			c1 = 0
		}
	}

	pal := palette4(unpackRGB565(c0), unpackRGB565(c1))

	var indices uint32
	for i, p := range b {
		idx := nearestRGB(rgbOf(p), &pal)
		indices |= uint32(idx) << (uint(i) * 2)
	}

	var out [BC1BlockSize]byte
	binary.LittleEndian.PutUint16(out[0:2], c0)
	binary.LittleEndian.PutUint16(out[2:4], c1)
	binary.LittleEndian.PutUint32(out[4:8], indices)
	return out
}

func rgbOf(c color.NRGBA) rgb {
	return rgb{c.R, c.G, c.B}
}
