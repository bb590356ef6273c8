package blurhash

import (
	"errors"
	"image/color"
	"testing"
)

func TestComponents(t *testing.T) {
	tests := []struct {
		hash   string
		nx, ny int
	}{
		{"000000", 1, 1},
		{"1~Lqe9~q", 2, 1},
		{"LjF=ad3Ba|xuzONLfQnTeqf7fQf7", 4, 3},
	}
	for _, tt := range tests {
		nx, ny, err := Components(tt.hash)
		if err != nil {
			t.Fatalf("%q: %v", tt.hash, err)
		}
		if nx != tt.nx || ny != tt.ny {
			t.Errorf("%q: got %dx%d, want %dx%d", tt.hash, nx, ny, tt.nx, tt.ny)
		}
	}
}

func TestAverageColor(t *testing.T) {
	hash, err := Encode(solidImg(3, 3, color.NRGBA{200, 100, 50, 255}), 1, 1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := AverageColor(hash)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if got != [3]uint8{200, 100, 50} {
		t.Errorf("got %v, want [200 100 50]", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		hash string
		ok   bool
	}{
		{"dc_only", "000000", true},
		{"4x3", "LjF=ad3Ba|xuzONLfQnTeqf7fQf7", true},
		{"short", "00000", false},
		{"empty", "", false},
		{"truncated_ac", "LjF=ad3Ba|xuzONLfQnTeqf7fQ", false},
		{"bad_char", "LjF=ad3Ba|xuzONLfQnTeqf7fQ\"7", false},
		{"size_flag_overflow", "~00000", false},
		{"dc_overflow", "00~~~~", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.hash)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidHash) {
				t.Errorf("got %v, want ErrInvalidHash", err)
			}
		})
	}
}
