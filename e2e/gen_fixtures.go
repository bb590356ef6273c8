//go:build ignore

// gen_fixtures creates small test images for the E2E smoke test, one per
// supported container plus the reference black/white pixels.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type fixture struct {
	name   string
	img    image.Image
	encode func(io.Writer, image.Image) error
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	fixtures := []fixture{
		{"black.png", solid(1, 1, color.NRGBA{0, 0, 0, 255}), png.Encode},
		{"white.png", solid(1, 1, color.NRGBA{255, 255, 255, 255}), png.Encode},
		{"banner.jpg", gradient(400, 225), encodeJPEG},
		{"cards/card-1.png", gradient(200, 150), png.Encode},
		{"cards/card-2.bmp", gradient(150, 200), bmp.Encode},
		{"scan.tiff", gradient(64, 64), encodeTIFF},
		{"logo.png", alphaGradient(100, 100), png.Encode},
		{"icon.gif", gradient(32, 32), encodeGIF},
	}

	for _, f := range fixtures {
		if err := write(filepath.Join(dir, f.name), f.img, f.encode); err != nil {
			fmt.Fprintf(os.Stderr, "[gen_fixtures] %s: %v\n", f.name, err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func encodeGIF(w io.Writer, img image.Image) error {
	return gif.Encode(w, img, nil)
}

func write(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
