package dds

import "image/color"

// luma returns the Rec. 601 weighted brightness of c.
// Each product is rounded on its own (no FMA fusion).
func luma(c color.NRGBA) float64 {
	r := float64(0.299 * float64(c.R))
	g := float64(0.587 * float64(c.G))
	b := float64(0.114 * float64(c.B))
	return r + g + b
}

// lumaEndpoints returns the brightest and darkest samples of the block.
// Ties keep the first sample in scan order.
func lumaEndpoints(b *Block) (high, low color.NRGBA) {
	hi, lo := 0, 0
	hiL, loL := luma(b[0]), luma(b[0])
	for i := 1; i < len(b); i++ {
		l := luma(b[i])
		if l > hiL {
			hi, hiL = i, l
		}
		if l < loL {
			lo, loL = i, l
		}
	}
	return b[hi], b[lo]
}

// rangeEndpoints returns the largest and smallest value of the block.
func rangeEndpoints(b *ScalarBlock) (high, low uint8) {
	high, low = b[0], b[0]
	for _, v := range b[1:] {
		high = max(high, v)
		low = min(low, v)
	}
	return high, low
}

// channelRangeEndpoints applies rangeEndpoints to every channel of the block
// independently.
func channelRangeEndpoints(b *Block) (high, low [4]uint8) {
	for c := 0; c < 4; c++ {
		ch := b.Channel(c)
		high[c], low[c] = rangeEndpoints(&ch)
	}
	return high, low
}
