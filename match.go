package dds

// nearestRGB returns the palette index closest to c by squared RGB distance.
// The lowest index wins ties.
func nearestRGB(c rgb, p *[4]rgb) uint8 {
	best, bestDist := 0, -1
	for i := range p {
		d := 0
		for ch := 0; ch < 3; ch++ {
			diff := int(c[ch]) - int(p[i][ch])
			d += diff * diff
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// nearestScalar returns the palette index closest to v.
func nearestScalar(v uint8, p *[8]uint8) uint8 {
	best, bestDist := 0, -1
	for i, e := range p {
		diff := int(v) - int(e)
		if d := diff * diff; bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// nearestRGBA returns the palette index closest to c over all four channels.
func nearestRGBA(c [4]uint8, p *[16][4]uint8) uint8 {
	best, bestDist := 0, -1
	for i := range p {
		d := 0
		for ch := 0; ch < 4; ch++ {
			diff := int(c[ch]) - int(p[i][ch])
			d += diff * diff
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
