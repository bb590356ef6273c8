// Package imgload opens and decodes source images for hashing.
package imgload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrIO reports a file that could not be opened or read.
	ErrIO = errors.New("could not read image")
	// ErrDecode reports unrecognised or corrupt image data.
	ErrDecode = errors.New("could not load image")
	// ErrFormat reports an unknown format hint.
	ErrFormat = errors.New("could not load given format")
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders maps a format hint to its decoder. Keys are lower case and
// accept the usual extension aliases.
var decoders = map[string]decodeFunc{
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"jpeg": jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"tiff": tiff.Decode,
	"webp": webp.Decode,
}

// Options controls decoding.
type Options struct {
	// Format forces a decoder ("png", "jpeg", ...). Empty sniffs the data.
	Format string
	// AutoOrient applies the EXIF orientation tag. Ignored when Format is set.
	AutoOrient bool
}

// NormalizeFormat maps a format hint or file extension to a canonical name.
func NormalizeFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(s, "."))
	if _, ok := decoders[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
	switch f {
	case "jpg":
		f = "jpeg"
	case "tif":
		f = "tiff"
	}
	return f, nil
}

// Load reads and decodes the image at path.
func Load(path string, opts Options) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return Decode(data, opts)
}

// Decode decodes an in-memory image.
func Decode(data []byte, opts Options) (image.Image, error) {
	if opts.Format != "" {
		f, err := NormalizeFormat(opts.Format)
		if err != nil {
			return nil, err
		}
		img, err := decoders[f](bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
		}
		return img, nil
	}

	if opts.AutoOrient {
		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// HasAlpha reports whether any pixel is less than fully opaque.
func HasAlpha(img image.Image) bool {
	switch src := img.(type) {
	case *image.NRGBA:
		return anyTranslucent(src.Pix, src.Stride, src.Rect)
	case *image.RGBA:
		return anyTranslucent(src.Pix, src.Stride, src.Rect)
	case *image.YCbCr, *image.Gray:
		return false
	default:
		bounds := img.Bounds()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if a < 0xffff {
					return true
				}
			}
		}
		return false
	}
}

// anyTranslucent scans the alpha bytes of a 4-byte-per-pixel buffer row by
// row. A sub-image shares its parent's Pix, so only rect is visited.
func anyTranslucent(pix []byte, stride int, rect image.Rectangle) bool {
	rowLen := rect.Dx() * 4
	for y := 0; y < rect.Dy(); y++ {
		off := y * stride
		row := pix[off : off+rowLen]
		for i := 3; i < len(row); i += 4 {
			if row[i] < 255 {
				return true
			}
		}
	}
	return false
}
