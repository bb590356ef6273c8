package pipeline

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgblr-cli/internal/manifest"
	"github.com/AnyUserName/imgblr-cli/internal/profile"
)

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir   string
	BasePath   string // recorded in the manifest; defaults to InputDir
	Profile    profile.Profile
	Workers    int
	AutoOrient bool
	Verbose    bool
	Log        io.Writer // diagnostics sink; defaults to os.Stderr
}

// Pipeline orchestrates batch hashing.
type Pipeline struct {
	cfg Config
	mu  sync.Mutex // serializes writes to cfg.Log
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	if cfg.BasePath == "" {
		cfg.BasePath = cfg.InputDir
	}
	return &Pipeline{cfg: cfg}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	p.logf("found %d images, profile %s, %d workers", len(sources), p.cfg.Profile.Name, p.cfg.Workers)

	// Step 2: Process images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			p.logf("processing: %s", s.Key)
			results[idx] = p.processImage(s)
			if results[idx].err == nil {
				p.logf("done: %s %s", s.Key, results[idx].asset.BlurHash)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name, p.cfg.BasePath)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Partial failures are reported, not fatal.
	if len(errs) > 0 {
		for _, e := range errs {
			p.printf("error: %v", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		p.printf("warning: %d of %d images had errors", len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:    p.cfg.Workers,
		MaxDim:     p.cfg.Profile.MaxDim,
		AutoOrient: p.cfg.AutoOrient,
	}
	m.Stats.Failed = len(errs)
	m.ComputeStats()
	return m, nil
}

// printf always writes; logf only with Verbose.
func (p *Pipeline) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.cfg.Log, "[imgblr] "+format+"\n", args...)
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		p.printf(format, args...)
	}
}

func (p *Pipeline) debugf(format string, args ...any) {
	p.logf("debug: "+format, args...)
}
