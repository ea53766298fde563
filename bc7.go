package dds

// BC7BlockSize is the encoded size of one BC7 block.
const BC7BlockSize = 16

const (
	bc7Mode6Tag      = 1 << 6 // mode 6: six zero bits, then a one
	bc7ModeBits      = 7
	bc7EndpointBits  = 7
	bc7AnchorBits    = 3
	bc7IndexBits     = 4
	bc7AnchorMaxIdx  = 1<<bc7AnchorBits - 1
	bc7IndexMaxValue = 1<<bc7IndexBits - 1
)

// bc7Endpoint is one mode 6 endpoint: 7 bits per channel plus a shared p-bit.
type bc7Endpoint struct {
	v [4]uint8
	p uint8
}

// newBC7Endpoint splits an 8-bit RGBA endpoint. The p-bit is the low bit of
// red; the low bits of the other channels are dropped.
func newBC7Endpoint(c [4]uint8) bc7Endpoint {
	var e bc7Endpoint
	for ch := range c {
		e.v[ch] = c[ch] >> 1
	}
	e.p = c[0] & 1
	return e
}

// expand rebuilds the 8-bit endpoint the decoder will see.
func (e bc7Endpoint) expand() [4]uint8 {
	var c [4]uint8
	for ch := range e.v {
		c[ch] = e.v[ch]<<1 | e.p
	}
	return c
}

// EncodeBC7 encodes a block as BC7 mode 6 (one subset, 4-bit indices).
//
// Endpoint 0 is the per-channel minimum and endpoint 1 the per-channel
// maximum. The p-bit of each endpoint follows its red channel instead of
// being searched over all channels, which costs up to one step of
// precision on green, blue and alpha.
//
// The mode field is six zero bits followed by a one, so byte 0 carries 0x40
// in its low seven bits. Fixture generators that stored the value 1 there
// instead produced mode 0 blocks; their files differ from this encoder's
// output in that byte only.
func EncodeBC7(b Block) [BC7BlockSize]byte {
	high, low := channelRangeEndpoints(&b)
	e0, e1 := newBC7Endpoint(low), newBC7Endpoint(high)

	pal := palette16(e0.expand(), e1.expand())

	var idx [BlockPixels]uint8
	for i, p := range b {
		idx[i] = nearestRGBA([4]uint8{p.R, p.G, p.B, p.A}, &pal)
	}

	// The anchor index is stored with its top bit implied zero. Swapping the
	// endpoints mirrors the palette, so 15-i selects the same color.
	if idx[0] > bc7AnchorMaxIdx {
		e0, e1 = e1, e0
		for i := range idx {
			idx[i] = bc7IndexMaxValue - idx[i]
		}
	}

	var out [BC7BlockSize]byte
	w := newBitWriter(out[:])
	w.writeBits(bc7Mode6Tag, bc7ModeBits)
	for ch := 0; ch < 4; ch++ {
		w.writeBits(uint32(e0.v[ch]), bc7EndpointBits)
		w.writeBits(uint32(e1.v[ch]), bc7EndpointBits)
	}
	w.writeBits(uint32(e0.p), 1)
	w.writeBits(uint32(e1.p), 1)
	w.writeBits(uint32(idx[0]), bc7AnchorBits)
	for _, v := range idx[1:] {
		w.writeBits(uint32(v), bc7IndexBits)
	}

	return out
}
