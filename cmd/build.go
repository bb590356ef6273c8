package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/imgblr-cli/internal/manifest"
	"github.com/AnyUserName/imgblr-cli/internal/pipeline"
	"github.com/AnyUserName/imgblr-cli/internal/profile"
	"github.com/spf13/cobra"
)

const defaultManifestName = "imgblr.manifest.json"

var (
	buildOut        string
	buildProfile    string
	buildWorkers    int
	buildX          string
	buildY          string
	buildAutoOrient bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Hash every image in a directory and write a manifest",
	Long: `Scans the input directory for images (png, jpg, jpeg, gif, bmp, tif,
tiff, webp), computes a BlurHash for each and writes a manifest keyed by
the relative path without extension.

Profiles: ` + strings.Join(profile.Names(), ", ") + `.
A manifest path ending in .zst is written zstd-compressed.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringVarP(&buildOut, "out", "o", defaultManifestName, "manifest output path")
	f.StringVarP(&buildProfile, "profile", "p", "default", "hashing profile")
	f.IntVarP(&buildWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	f.StringVarP(&buildX, "x-components", "x", "", "x components (overrides profile)")
	f.StringVarP(&buildY, "y-components", "y", "", "y components (overrides profile)")
	f.BoolVar(&buildAutoOrient, "auto-orient", false, "apply EXIF orientation before hashing")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOut, err := filepath.Abs(buildOut)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := profile.Get(buildProfile)
	if buildX != "" {
		if prof.X, err = parseComponents(buildX, "x"); err != nil {
			return err
		}
		prof.Adaptive = false
	}
	if buildY != "" {
		if prof.Y, err = parseComponents(buildY, "y"); err != nil {
			return err
		}
		prof.Adaptive = false
	}

	// Source paths are stored relative to base_path, itself relative to
	// the manifest when possible.
	basePath, err := filepath.Rel(filepath.Dir(absOut), absInput)
	if err != nil {
		basePath = absInput
	}
	basePath = filepath.ToSlash(basePath)

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOut)
	logVerbose("profile: %s (%dx%d, max_dim=%d, adaptive=%v)",
		prof.Name, prof.X, prof.Y, prof.MaxDim, prof.Adaptive)

	if err := os.MkdirAll(filepath.Dir(absOut), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:   absInput,
		BasePath:   basePath,
		Profile:    prof,
		Workers:    buildWorkers,
		AutoOrient: buildAutoOrient,
		Verbose:    verbose,
		Log:        cmd.ErrOrStderr(),
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteFile(m, absOut); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printBuildReport(cmd.OutOrStdout(), m, absOut, time.Since(start))
	return nil
}

func printBuildReport(w io.Writer, m *manifest.Manifest, path string, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║              imgblr build complete               ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════╝")
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Assets:      %d\n", s.TotalAssets)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Profile:     %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)

	// Longest hashes first: they cost the most bytes in the page.
	if len(m.Assets) > 0 {
		keys := make([]string, 0, len(m.Assets))
		for k := range m.Assets {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := m.Assets[keys[i]], m.Assets[keys[j]]
			if len(a.BlurHash) != len(b.BlurHash) {
				return len(a.BlurHash) > len(b.BlurHash)
			}
			return keys[i] < keys[j]
		})
		n := min(len(keys), 10)
		fmt.Fprintf(w, "  Top %d by hash length:\n", n)
		for _, k := range keys[:n] {
			a := m.Assets[k]
			fmt.Fprintf(w, "    %-40s %dx%d  %s\n",
				truncKey(k, 40), a.Components[0], a.Components[1], a.BlurHash)
		}
		fmt.Fprintln(w)
	}

	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  Manifest:    %s (%s)\n", filepath.Base(path), formatBytes(info.Size()))
		fmt.Fprintln(w)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
