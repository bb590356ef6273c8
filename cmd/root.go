package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/AnyUserName/imgblr-cli/internal/blurhash"
	"github.com/AnyUserName/imgblr-cli/internal/imgload"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

// ErrArgument marks invalid command-line values.
var ErrArgument = errors.New("invalid argument")

var (
	encodeFormat     string
	encodeX          string
	encodeY          string
	encodeWorkers    int
	encodeAutoOrient bool
)

var rootCmd = &cobra.Command{
	Use:   "imgblr [flags] <input>",
	Short: "Generates a blurhash from an input image",
	Long: `imgblr — computes a BlurHash placeholder for an image.

The hash is a short base-83 string holding a low-frequency DCT of the
image colours; see https://blurha.sh for decoders.

Use "imgblr build" to hash a whole directory into a manifest.`,
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEncode,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgblr %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	f := rootCmd.Flags()
	f.StringVarP(&encodeFormat, "format", "f", "", "input format (png, jpeg, gif, bmp, tiff, webp); detected if empty")
	f.StringVarP(&encodeX, "x-components", "x", "4", "number of components on the x axis, clamped to [1, 9]")
	f.StringVarP(&encodeY, "y-components", "y", "3", "number of components on the y axis, clamped to [1, 9]")
	f.IntVarP(&encodeWorkers, "workers", "j", 0, "parallel component workers (0 = NumCPU)")
	f.BoolVar(&encodeAutoOrient, "auto-orient", false, "apply EXIF orientation before hashing")
}

func runEncode(cmd *cobra.Command, args []string) error {
	nx, err := parseComponents(encodeX, "x")
	if err != nil {
		return err
	}
	ny, err := parseComponents(encodeY, "y")
	if err != nil {
		return err
	}
	if encodeFormat != "" {
		if _, err := imgload.NormalizeFormat(encodeFormat); err != nil {
			return fmt.Errorf("%w: %w", ErrArgument, err)
		}
	}

	img, err := imgload.Load(args[0], imgload.Options{
		Format:     encodeFormat,
		AutoOrient: encodeAutoOrient,
	})
	if err != nil {
		return err
	}

	workers := encodeWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logVerbose("input: %s (%dx%d), components %dx%d, workers %d",
		args[0], img.Bounds().Dx(), img.Bounds().Dy(), nx, ny, workers)

	enc := blurhash.Encoder{Workers: workers, Logf: logVerbose}
	hash, err := enc.Encode(img, nx, ny)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// parseComponents parses a component count and clamps it to [1, 9].
// Zero is lifted to one; the encoder has no zero-component form.
func parseComponents(s, axis string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: the number of %s components should be a number, got %q", ErrArgument, axis, s)
	}
	return min(max(n, 1), blurhash.MaxComponents), nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgblr] "+format+"\n", args...)
	}
}
