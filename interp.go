package dds

// rgb is an 8-bit color without alpha, used by the BC1 palette.
type rgb [3]uint8

// palette4 builds the opaque BC1 palette: c0, c1, 2/3*c0+1/3*c1, 1/3*c0+2/3*c1.
func palette4(c0, c1 rgb) [4]rgb {
	p := [4]rgb{c0, c1}
	for ch := 0; ch < 3; ch++ {
		a, b := int(c0[ch]), int(c1[ch])
		p[2][ch] = uint8((2*a + b + 1) / 3)
		p[3][ch] = uint8((a + 2*b + 1) / 3)
	}
	return p
}

// palette8 builds the 8-level BC4 palette. a0 must be greater than a1;
// equal endpoints are handled by the caller.
func palette8(a0, a1 uint8) [8]uint8 {
	if a0 <= a1 {
		panic("dds: palette8 needs a0 > a1")
	}

	p := [8]uint8{a0, a1}
	for i := 0; i < 6; i++ {
		p[i+2] = uint8(((6-i)*int(a0) + (i+1)*int(a1) + 3) / 7)
	}
	return p
}

// palette16 builds the 16-entry BC7 palette per channel, entry 0 being e0
// and entry 15 being e1.
func palette16(e0, e1 [4]uint8) [16][4]uint8 {
	var p [16][4]uint8
	for k := 0; k < 16; k++ {
		for ch := 0; ch < 4; ch++ {
			p[k][ch] = uint8(((15-k)*int(e0[ch]) + k*int(e1[ch]) + 7) / 15)
		}
	}
	return p
}
