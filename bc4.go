package dds

// BC4BlockSize is the encoded size of one BC4 (ATI1) block, and of the alpha
// half of a BC3 block.
const BC4BlockSize = 8

// BC3BlockSize is the encoded size of one BC3/DXT5 block.
const BC3BlockSize = BC4BlockSize + BC1BlockSize

// BC5BlockSize is the encoded size of one BC5 (ATI2) block.
const BC5BlockSize = 2 * BC4BlockSize

// EncodeBC4 encodes a single-channel block as BC4 using the 8-level mode.
//
// A flat block is written as both endpoints followed by zero indices.
func EncodeBC4(b ScalarBlock) [BC4BlockSize]byte {
	a0, a1 := rangeEndpoints(&b)

	var out [BC4BlockSize]byte
	out[0], out[1] = a0, a1
	if a0 == a1 {
		return out
	}

	pal := palette8(a0, a1)

	var bits uint64
	for i, v := range b {
		bits |= uint64(nearestScalar(v, &pal)) << (uint(i) * 3)
	}
	for i := 0; i < 6; i++ {
		out[2+i] = byte(bits >> (uint(i) * 8))
	}

	return out
}

// EncodeBC3 encodes a block as BC3 (DXT5): a BC4 alpha block followed by a
// BC1 color block.
func EncodeBC3(b Block) [BC3BlockSize]byte {
	var out [BC3BlockSize]byte
	alpha := EncodeBC4(b.Channel(3))
	color := EncodeBC1(b)
	copy(out[:BC4BlockSize], alpha[:])
	copy(out[BC4BlockSize:], color[:])
	return out
}

// EncodeBC5 encodes the red and green channels as two BC4 blocks.
func EncodeBC5(b Block) [BC5BlockSize]byte {
	var out [BC5BlockSize]byte
	red := EncodeBC4(b.Channel(0))
	green := EncodeBC4(b.Channel(1))
	copy(out[:BC4BlockSize], red[:])
	copy(out[BC4BlockSize:], green[:])
	return out
}
