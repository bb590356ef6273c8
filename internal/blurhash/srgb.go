package blurhash

import "math"

// toLinearTable maps every 8-bit sRGB value to linear light.
// 256 × 8 bytes = 2 KB, filled once at init.
var toLinearTable [256]float64

func init() {
	for i := 0; i < 256; i++ {
		toLinearTable[i] = srgbToLinear(uint8(i))
	}
}

// ToLinear converts an 8-bit gamma-encoded channel to linear light in [0, 1].
func ToLinear(v uint8) float64 {
	return toLinearTable[v]
}

// ToGamma converts linear light back to an 8-bit sRGB channel.
// Input is clamped to [0, 1]; rounding is add-0.5-and-truncate.
//
// The float64() conversions stop the compiler from fusing multiply-add
// pairs (arm64, ppc64le, s390x); hashes must match other encoders exactly.
func ToGamma(v float64) uint8 {
	v = clamp(v, 0, 1)
	if v <= 0.0031308 {
		return uint8(float64(v*12.92*255) + 0.5)
	}
	t := float64(math.Pow(v, 1/2.4)*1.055) - 0.055
	return uint8(float64(t*255) + 0.5)
}

func srgbToLinear(b uint8) float64 {
	v := float64(b) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
