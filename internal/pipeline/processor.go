package pipeline

import (
	"fmt"
	"os"

	"github.com/AnyUserName/imgblr-cli/internal/blurhash"
	"github.com/AnyUserName/imgblr-cli/internal/hasher"
	"github.com/AnyUserName/imgblr-cli/internal/imgload"
	"github.com/AnyUserName/imgblr-cli/internal/manifest"
	"github.com/disintegration/imaging"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// processImage handles a single source image: read, fingerprint, decode,
// optional downsize, blurhash.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	data, err := os.ReadFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("read %s: %w", src.RelPath, err)
		return result
	}

	// AutoOrient goes through the sniffing decoder, which reads EXIF.
	opts := imgload.Options{Format: src.Format}
	if p.cfg.AutoOrient {
		opts = imgload.Options{AutoOrient: true}
	}
	img, err := imgload.Decode(data, opts)
	if err != nil && opts.Format != "" {
		// Extension may lie about the container; fall back to sniffing.
		img, err = imgload.Decode(data, imgload.Options{})
	}
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		result.err = fmt.Errorf("decode %s: empty image", src.RelPath)
		return result
	}

	prof := p.cfg.Profile
	nx, ny := prof.Components(origW, origH)

	hashImg := img
	if dw, dh, ok := prof.Downsize(origW, origH); ok {
		hashImg = imaging.Resize(img, dw, dh, imaging.Lanczos)
		p.logf("resize: %s %dx%d -> %dx%d", src.Key, origW, origH, dw, dh)
	}

	enc := blurhash.Encoder{Logf: p.debugf}
	hash, err := enc.Encode(hashImg, nx, ny)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}
	avg, err := blurhash.AverageColor(hash)
	if err != nil {
		result.err = fmt.Errorf("blurhash %s: %w", src.RelPath, err)
		return result
	}

	result.asset = manifest.Asset{
		Original: manifest.OriginalInfo{
			Path:     src.RelPath,
			Width:    origW,
			Height:   origH,
			Format:   src.Format,
			Size:     int64(len(data)),
			Hash:     hasher.Sum(data),
			HasAlpha: imgload.HasAlpha(img),
		},
		BlurHash:    hash,
		Components:  [2]int{nx, ny},
		AspectRatio: float64(origW) / float64(origH),
		AvgColor:    &avg,
	}
	return result
}
