package blurhash

import (
	"math"
	"testing"
)

func TestToGamma_RoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		if got := ToGamma(ToLinear(uint8(v))); got != uint8(v) {
			t.Errorf("ToGamma(ToLinear(%d)) = %d", v, got)
		}
	}
}

func TestToLinear_Endpoints(t *testing.T) {
	if got := ToLinear(0); got != 0 {
		t.Errorf("ToLinear(0) = %v", got)
	}
	if got := ToLinear(255); math.Abs(got-1) > 1e-12 {
		t.Errorf("ToLinear(255) = %v", got)
	}
	// 10/255 ≈ 0.0392 sits on the linear segment.
	if got, want := ToLinear(10), 10.0/255/12.92; got != want {
		t.Errorf("ToLinear(10) = %v, want %v", got, want)
	}
}

func TestToLinear_Monotonic(t *testing.T) {
	for v := 1; v < 256; v++ {
		if ToLinear(uint8(v)) <= ToLinear(uint8(v-1)) {
			t.Fatalf("not increasing at %d", v)
		}
	}
}

func TestToGamma_Clamps(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{-0.0001, 0},
		{0, 0},
		{1, 255},
		{1.5, 255},
		{0.5, 188},
	}
	for _, tt := range tests {
		if got := ToGamma(tt.in); got != tt.want {
			t.Errorf("ToGamma(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
