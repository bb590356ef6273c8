package manifest

// Manifest is the top-level output of an imgblr build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers    int  `json:"workers"`
	MaxDim     int  `json:"max_dim,omitempty"` // downsize bound applied before hashing
	AutoOrient bool `json:"auto_orient,omitempty"`
}

// Asset describes a single source image and its placeholder.
type Asset struct {
	Original    OriginalInfo `json:"original"`
	BlurHash    string       `json:"blurhash"`
	Components  [2]int       `json:"components"`          // [nx, ny]
	AspectRatio float64      `json:"aspect_ratio"`        // width / height
	AvgColor    *[3]uint8    `json:"avg_color,omitempty"` // [R,G,B] from the DC term
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Path     string `json:"path"` // relative to base_path
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	Hash     string `json:"hash"` // xxhash64 of the file, 16 hex chars
	HasAlpha bool   `json:"has_alpha"`
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes int64 `json:"total_input_bytes"`
	TotalAssets     int   `json:"total_assets"`
	Failed          int   `json:"failed,omitempty"` // sources that could not be hashed
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
