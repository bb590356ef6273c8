package blurhash

import "math"

// encodeDC packs the average colour as 0xRRGGBB.
func encodeDC(dc triplet) int {
	r := int(ToGamma(dc[0]))
	g := int(ToGamma(dc[1]))
	b := int(ToGamma(dc[2]))
	return r<<16 | g<<8 | b
}

// quantizeScale picks the AC normalisation. It returns the header digit in
// [0, 82] and the maximum actually used for quantisation.
func quantizeScale(ac []triplet) (int, float64) {
	if len(ac) == 0 {
		return 0, 1
	}
	var actual float64
	for _, c := range ac {
		for _, v := range c {
			actual = math.Max(actual, math.Abs(v))
		}
	}
	q := int(clamp(math.Floor(float64(actual*166)-0.5), 0, 82))
	return q, float64(q+1) / 166
}

// encodeAC packs one AC component as three base-19 digits in [0, 6859).
func encodeAC(c triplet, maximum float64) int {
	r := quantAC(c[0], maximum)
	g := quantAC(c[1], maximum)
	b := quantAC(c[2], maximum)
	return r*19*19 + g*19 + b
}

func quantAC(v, maximum float64) int {
	s := signPow(v/maximum, 0.5)
	return int(clamp(math.Floor(float64(s*9)+9.5), 0, 18))
}

func signPow(v, exp float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), exp), v)
}
