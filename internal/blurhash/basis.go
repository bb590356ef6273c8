package blurhash

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// triplet is a linear-light (R, G, B) value.
type triplet [3]float64

// linearImage holds the pixel grid as interleaved linear RGB, row-major.
// Alpha is dropped here.
type linearImage struct {
	w, h int
	rgb  []float64
}

// linearize converts an image to linear light via the sRGB lookup table.
func linearize(img image.Image) *linearImage {
	src := toNRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	li := &linearImage{w: w, h: h, rgb: make([]float64, w*h*3)}

	pix := src.Pix
	bY := b.Min.Y - src.Rect.Min.Y
	bX4 := (b.Min.X - src.Rect.Min.X) * 4
	di := 0
	for y := 0; y < h; y++ {
		off := (bY+y)*src.Stride + bX4
		for x := 0; x < w; x++ {
			li.rgb[di] = toLinearTable[pix[off]]
			li.rgb[di+1] = toLinearTable[pix[off+1]]
			li.rgb[di+2] = toLinearTable[pix[off+2]]
			off += 4
			di += 3
		}
	}
	return li
}

// toNRGBA returns img as non-premultiplied 8-bit RGBA.
// NRGBA input is used in place; everything else is converted by imaging.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}

// cosTable returns cos(π·k·p/size) for k in [0, n) and p in [0, size),
// laid out as n rows of size entries.
func cosTable(n, size int) []float64 {
	t := make([]float64, n*size)
	for k := 0; k < n; k++ {
		base := k * size
		for p := 0; p < size; p++ {
			t[base+p] = math.Cos(math.Pi * float64(k) * float64(p) / float64(size))
		}
	}
	return t
}

// components evaluates all nx·ny basis functions. The result is ordered
// j-major (index j*nx + i), so factors[0] is DC and the rest are AC in
// wire order. Up to workers components are computed concurrently.
func components(li *linearImage, nx, ny, workers int) []triplet {
	cosX := cosTable(nx, li.w)
	cosY := cosTable(ny, li.h)
	factors := make([]triplet, nx*ny)

	if workers <= 1 || len(factors) == 1 {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				factors[j*nx+i] = li.component(cosX, cosY, i, j)
			}
		}
		return factors
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for k := range factors {
		k := k // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			i, j := k%nx, k/nx
			factors[k] = li.component(cosX, cosY, i, j)
			return nil
		})
	}
	g.Wait() // closures never fail
	return factors
}

// component returns the linear-colour average of the image weighted by
// basis (i, j). Pixels are summed row-major; conversions block FMA fusion.
func (li *linearImage) component(cosX, cosY []float64, i, j int) triplet {
	norm := 2.0
	if i == 0 && j == 0 {
		norm = 1
	}
	w, h := li.w, li.h
	cx := cosX[i*w : (i+1)*w]
	cy := cosY[j*h : (j+1)*h]

	var r, g, b float64
	off := 0
	for y := 0; y < h; y++ {
		fy := cy[y]
		for x := 0; x < w; x++ {
			basis := float64(norm*cx[x]) * fy
			r += float64(basis * li.rgb[off])
			g += float64(basis * li.rgb[off+1])
			b += float64(basis * li.rgb[off+2])
			off += 3
		}
	}

	scale := 1 / (float64(w) * float64(h))
	return triplet{r * scale, g * scale, b * scale}
}
