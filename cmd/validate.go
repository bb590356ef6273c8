package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgblr-cli/internal/blurhash"
	"github.com/AnyUserName/imgblr-cli/internal/hasher"
	"github.com/AnyUserName/imgblr-cli/internal/imgload"
	"github.com/AnyUserName/imgblr-cli/internal/manifest"
	"github.com/AnyUserName/imgblr-cli/internal/profile"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
)

var validateDeep bool

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest and check that source files are unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateDeep, "deep", false, "re-encode every source and compare hashes")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	errs := validateManifest(m, filepath.Dir(manifestPath), validateDeep)

	w := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Manifest is valid")
		fmt.Fprintf(w, "  ✓ %d assets, all sources present and unchanged\n", m.Stats.TotalAssets)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

// sourceRoot resolves base_path against the manifest directory.
func sourceRoot(m *manifest.Manifest, manifestDir string) string {
	base := filepath.FromSlash(m.BasePath)
	if filepath.IsAbs(base) {
		return base
	}
	return filepath.Join(manifestDir, base)
}

func validateManifest(m *manifest.Manifest, manifestDir string, deep bool) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	root := sourceRoot(m, manifestDir)
	keys := make([]string, 0, len(m.Assets))
	for k := range m.Assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		asset := m.Assets[key]

		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		if asset.AspectRatio <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid aspect ratio %.4f", key, asset.AspectRatio))
		}

		if err := blurhash.Validate(asset.BlurHash); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
		} else {
			nx, ny, _ := blurhash.Components(asset.BlurHash)
			if [2]int{nx, ny} != asset.Components {
				errs = append(errs, fmt.Sprintf("asset %q: components %v, hash encodes %dx%d",
					key, asset.Components, nx, ny))
			}
		}

		if asset.Original.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing source path", key))
			continue
		}
		fullPath := filepath.Join(root, filepath.FromSlash(asset.Original.Path))
		sum, err := hasher.SumFile(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: source not readable: %s", key, asset.Original.Path))
			continue
		}
		if asset.Original.Hash != "" && sum != asset.Original.Hash {
			errs = append(errs, fmt.Sprintf("asset %q: source changed: manifest=%s, disk=%s",
				key, asset.Original.Hash, sum))
			continue
		}

		if deep {
			if msg := reencode(m, asset, fullPath); msg != "" {
				errs = append(errs, fmt.Sprintf("asset %q: %s", key, msg))
			}
		}
	}

	if m.Stats.TotalAssets != len(m.Assets) {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, len(m.Assets)))
	}

	return errs
}

// reencode hashes the source again with the recorded settings and returns
// a message when the result differs.
func reencode(m *manifest.Manifest, asset manifest.Asset, path string) string {
	var opts imgload.Options
	prof := profile.Get(m.Profile)
	prof.MaxDim = 0
	if m.BuildInfo != nil {
		prof.MaxDim = m.BuildInfo.MaxDim
		opts.AutoOrient = m.BuildInfo.AutoOrient
	}

	img, err := imgload.Load(path, opts)
	if err != nil {
		return err.Error()
	}
	b := img.Bounds()
	if dw, dh, ok := prof.Downsize(b.Dx(), b.Dy()); ok {
		img = imaging.Resize(img, dw, dh, imaging.Lanczos)
	}

	hash, err := blurhash.Encode(img, asset.Components[0], asset.Components[1])
	if err != nil {
		return err.Error()
	}
	if hash != asset.BlurHash {
		return fmt.Sprintf("blurhash mismatch: manifest=%s, computed=%s", asset.BlurHash, hash)
	}
	return ""
}
