package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/imgblr-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <dir_or_manifest>",
	Short: "Display statistics for a manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := resolveManifestPath(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	printStats(cmd.OutOrStdout(), m)
	return nil
}

// resolveManifestPath accepts a manifest file or a directory holding
// imgblr.manifest.json (or its .zst form).
func resolveManifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{defaultManifestName, defaultManifestName + manifest.CompressedSuffix} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", defaultManifestName, path)
}

func printStats(w io.Writer, m *manifest.Manifest) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Manifest version: %d\n", m.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", m.GeneratedAt)
	fmt.Fprintf(w, "  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.MaxDim > 0 {
			fmt.Fprintf(w, "  Downsized to:     %dpx\n", m.BuildInfo.MaxDim)
		}
	}
	fmt.Fprintln(w)

	s := m.Stats
	fmt.Fprintf(w, "  Total assets:     %d\n", s.TotalAssets)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed sources:   %d\n", s.Failed)
	}

	var hashBytes int
	for _, a := range m.Assets {
		hashBytes += len(a.BlurHash)
	}
	if len(m.Assets) > 0 {
		fmt.Fprintf(w, "  Hash payload:     %s (avg %.1f chars)\n",
			formatBytes(int64(hashBytes)), float64(hashBytes)/float64(len(m.Assets)))
	}
	fmt.Fprintln(w)

	// Per-format breakdown.
	formatCount := map[string]int{}
	for _, a := range m.Assets {
		formatCount[a.Original.Format]++
	}
	formats := make([]string, 0, len(formatCount))
	for f := range formatCount {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	fmt.Fprintln(w, "  Format breakdown:")
	for _, f := range formats {
		fmt.Fprintf(w, "    %-6s  %4d files\n", f, formatCount[f])
	}
	fmt.Fprintln(w)

	// Per-grid breakdown.
	gridCount := map[[2]int]int{}
	for _, a := range m.Assets {
		gridCount[a.Components]++
	}
	grids := make([][2]int, 0, len(gridCount))
	for g := range gridCount {
		grids = append(grids, g)
	}
	sort.Slice(grids, func(i, j int) bool {
		if grids[i][0] != grids[j][0] {
			return grids[i][0] < grids[j][0]
		}
		return grids[i][1] < grids[j][1]
	})
	fmt.Fprintln(w, "  Component grids:")
	for _, g := range grids {
		fmt.Fprintf(w, "    %dx%d  %4d assets\n", g[0], g[1], gridCount[g])
	}

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.BlurHash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q missing blurhash", key))
		}
		if a.Original.HasAlpha {
			warnings = append(warnings, fmt.Sprintf("asset %q has alpha; placeholder ignores transparency", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, msg := range warnings {
			fmt.Fprintf(w, "    ⚠ %s\n", msg)
		}
	}
	fmt.Fprintln(w)
}
