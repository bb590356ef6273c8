// Package blurhash encodes images as BlurHash strings: a truncated 2-D DCT
// of the image in linear light, quantised and packed into base-83 text.
//
// Output is byte-compatible with the reference encoders:
//   - sRGB transfer function with add-0.5-and-truncate rounding
//   - components in j-major order, DC first
//   - per-image AC scale chosen from the largest AC magnitude
//
// Encoding is deterministic: the worker count never changes the result.
package blurhash

import (
	"errors"
	"fmt"
	"image"
)

// MaxComponents is the largest number of components along either axis.
const MaxComponents = 9

var (
	// ErrInvalidComponents is returned when nx or ny is outside [1, 9].
	ErrInvalidComponents = errors.New("blurhash: component count out of range [1, 9]")
	// ErrEmptyImage is returned for images with zero width or height.
	ErrEmptyImage = errors.New("blurhash: image has no pixels")
	// ErrInvalidHash is returned by the hash inspection functions.
	ErrInvalidHash = errors.New("blurhash: invalid hash")
)

// Encoder holds optional encoding settings. The zero value encodes
// sequentially and logs nothing.
type Encoder struct {
	// Workers bounds how many components are evaluated concurrently.
	// Values <= 1 evaluate them on the calling goroutine.
	Workers int

	// Logf receives debug diagnostics when non-nil.
	Logf func(format string, args ...any)
}

// Encode computes the BlurHash of img with nx × ny components.
func Encode(img image.Image, nx, ny int) (string, error) {
	var e Encoder
	return e.Encode(img, nx, ny)
}

// EncodedLen returns the hash length for an nx × ny component grid.
func EncodedLen(nx, ny int) int {
	const sizeFlag, scaleFlag, dc = 1, 1, 4
	return sizeFlag + scaleFlag + dc + (nx*ny-1)*2
}

// Encode computes the BlurHash of img with nx × ny components.
func (e *Encoder) Encode(img image.Image, nx, ny int) (string, error) {
	if nx < 1 || nx > MaxComponents || ny < 1 || ny > MaxComponents {
		return "", fmt.Errorf("%w: got %dx%d", ErrInvalidComponents, nx, ny)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return "", ErrEmptyImage
	}

	li := linearize(img)
	factors := components(li, nx, ny, e.Workers)
	dc, ac := factors[0], factors[1:]

	hash := make([]byte, 0, EncodedLen(nx, ny))
	hash = AppendBase83(hash, (nx-1)+(ny-1)*9, 1)

	scale, maximum := quantizeScale(ac)
	hash = AppendBase83(hash, scale, 1)
	e.logf("%dx%d image, %dx%d components, ac maximum %.6f (flag %d)",
		li.w, li.h, nx, ny, maximum, scale)

	hash = AppendBase83(hash, encodeDC(dc), 4)
	for _, c := range ac {
		hash = AppendBase83(hash, encodeAC(c, maximum), 2)
	}
	return string(hash), nil
}

func (e *Encoder) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}
