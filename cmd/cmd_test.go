package cmd

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/imgblr-cli/internal/imgload"
	"github.com/AnyUserName/imgblr-cli/internal/manifest"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	verbose = false
	encodeFormat, encodeX, encodeY, encodeWorkers, encodeAutoOrient = "", "4", "3", 0, false
	buildOut, buildProfile, buildWorkers, buildX, buildY, buildAutoOrient = defaultManifestName, "default", 0, "", "", false
	validateDeep = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 32 % 256), uint8(y * 40 % 256), 128, 255})
		}
	}
	return img
}

// ─── encode ──────────────────────────────────────────────────

func TestEncode_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.png")
	writePNG(t, path, gradient(8, 6))

	out, err := execute(t, path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "LjF=ad3Ba|xuzONLfQnTeqf7fQf7\n" {
		t.Errorf("got %q", out)
	}
}

func TestEncode_Flags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "black.bin")
	writePNG(t, path, solid(1, 1, color.NRGBA{0, 0, 0, 255}))

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-x", "1", "-y", "1", "-f", "png"}, "000000\n"},
		// Zero clamps up to one component.
		{[]string{"-x", "0", "-y", "0"}, "000000\n"},
		{[]string{"-x", "2", "-y", "1", "-j", "4"}, "100000fQ\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, append(tt.args, path)...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if out != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, out, tt.want)
		}
	}
}

func TestEncode_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, solid(2, 2, color.NRGBA{9, 9, 9, 255}))

	if _, err := execute(t, "-x", "four", path); !errors.Is(err, ErrArgument) {
		t.Errorf("non-numeric x: got %v, want ErrArgument", err)
	} else if !strings.Contains(err.Error(), "x components should be a number") {
		t.Errorf("message: %v", err)
	}
	if _, err := execute(t, "-y", "-2", path); !errors.Is(err, ErrArgument) {
		t.Errorf("negative y: got %v, want ErrArgument", err)
	}
	if _, err := execute(t, "-f", "psd", path); !errors.Is(err, ErrArgument) {
		t.Errorf("unknown format: got %v, want ErrArgument", err)
	}
	if _, err := execute(t, filepath.Join(dir, "missing.png")); !errors.Is(err, imgload.ErrIO) {
		t.Errorf("missing file: got %v, want ErrIO", err)
	}
	if _, err := execute(t, "-f", "gif", path); !errors.Is(err, imgload.ErrDecode) {
		t.Errorf("wrong decoder: got %v, want ErrDecode", err)
	}
}

func TestParseComponents(t *testing.T) {
	tests := map[string]int{"0": 1, "1": 1, "4": 4, "9": 9, "10": 9, "250": 9}
	for in, want := range tests {
		got, err := parseComponents(in, "x")
		if err != nil {
			t.Errorf("%q: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %d, want %d", in, got, want)
		}
	}
	for _, bad := range []string{"", "x", "-1", "3.5"} {
		if _, err := parseComponents(bad, "y"); !errors.Is(err, ErrArgument) {
			t.Errorf("%q: got %v, want ErrArgument", bad, err)
		}
	}
}

// ─── build / stats / validate ────────────────────────────────

func buildFixture(t *testing.T, manifestName string, extra ...string) (inDir, manifestPath string) {
	t.Helper()
	root := t.TempDir()
	inDir = filepath.Join(root, "images")
	writePNG(t, filepath.Join(inDir, "banner.png"), gradient(8, 6))
	writePNG(t, filepath.Join(inDir, "cards", "card.png"), gradient(120, 90))
	manifestPath = filepath.Join(root, "out", manifestName)

	args := append([]string{"build", inDir, "-o", manifestPath}, extra...)
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "imgblr build complete") {
		t.Errorf("report missing:\n%s", out)
	}
	return inDir, manifestPath
}

func TestBuild_ManifestContents(t *testing.T) {
	_, manifestPath := buildFixture(t, "imgblr.manifest.json")

	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.BasePath != "../images" {
		t.Errorf("base_path: got %q", m.BasePath)
	}
	if got := m.Assets["banner"].BlurHash; got != "LjF=ad3Ba|xuzONLfQnTeqf7fQf7" {
		t.Errorf("banner: got %q", got)
	}
	if a := m.Assets["cards/card"]; a.Original.Path != "cards/card.png" || a.Components != [2]int{4, 3} {
		t.Errorf("card: got %+v", a)
	}
}

func TestBuild_ComponentOverride(t *testing.T) {
	_, manifestPath := buildFixture(t, "m.json", "-p", "adaptive", "-x", "2", "-y", "2")
	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for key, a := range m.Assets {
		if a.Components != [2]int{2, 2} || len(a.BlurHash) != 12 {
			t.Errorf("%s: got %v %q", key, a.Components, a.BlurHash)
		}
	}
}

func TestValidate_Clean(t *testing.T) {
	for _, name := range []string{"imgblr.manifest.json", "imgblr.manifest.json.zst"} {
		t.Run(name, func(t *testing.T) {
			_, manifestPath := buildFixture(t, name, "-p", "fast")
			out, err := execute(t, "validate", "--deep", manifestPath)
			if err != nil {
				t.Fatalf("validate: %v\n%s", err, out)
			}
			if !strings.Contains(out, "Manifest is valid") {
				t.Errorf("got:\n%s", out)
			}
		})
	}
}

func TestValidate_DetectsChanges(t *testing.T) {
	inDir, manifestPath := buildFixture(t, "imgblr.manifest.json")

	// Modify a source and corrupt a hash.
	writePNG(t, filepath.Join(inDir, "banner.png"), solid(8, 6, color.NRGBA{1, 2, 3, 255}))
	m, err := manifest.ReadFile(manifestPath)
	if err != nil {
		t.Fatal(err)
	}
	card := m.Assets["cards/card"]
	card.BlurHash = card.BlurHash[:len(card.BlurHash)-2]
	m.Assets["cards/card"] = card
	if err := manifest.WriteFile(m, manifestPath); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "validate", manifestPath)
	if err == nil {
		t.Fatalf("expected validation failure:\n%s", out)
	}
	if !strings.Contains(out, `asset "banner": source changed`) {
		t.Errorf("source change not reported:\n%s", out)
	}
	if !strings.Contains(out, `asset "cards/card": blurhash: invalid hash`) {
		t.Errorf("bad hash not reported:\n%s", out)
	}
}

func TestStats(t *testing.T) {
	_, manifestPath := buildFixture(t, "imgblr.manifest.json.zst")

	out, err := execute(t, "stats", filepath.Dir(manifestPath))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"Total assets:     2", "png        2 files", "4x3     2 assets"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
