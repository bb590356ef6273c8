package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AnyUserName/imgblr-cli/internal/imgload"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Format is the canonical format name (png, jpeg, gif, bmp, tiff, webp).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// ScanImages walks the input directory and returns all image sources,
// sorted by key. Hidden directories are skipped. Two files that map to the
// same key (a.png and a.jpg) are an error.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		format, err := imgload.NormalizeFormat(ext)
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, ext)),
			Format:  format,
			Size:    info.Size(),
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Key != sources[j].Key {
			return sources[i].Key < sources[j].Key
		}
		return sources[i].RelPath < sources[j].RelPath
	})
	for i := 1; i < len(sources); i++ {
		if sources[i].Key == sources[i-1].Key {
			return nil, fmt.Errorf("duplicate asset key %q (%s, %s)",
				sources[i].Key, sources[i-1].RelPath, sources[i].RelPath)
		}
	}
	return sources, nil
}
