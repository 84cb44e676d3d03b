package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pcbdrill/pkg/cache"
	"github.com/matzehuels/pcbdrill/pkg/circuit"
	"github.com/matzehuels/pcbdrill/pkg/drill"
	"github.com/matzehuels/pcbdrill/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-type default TTLs when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// summary is the cached, format-independent part of a Result.
type summary struct {
	Elements int               `json:"elements"`
	Skipped  int               `json:"skipped"`
	Tools    []drill.ToolUsage `json:"tools"`
}

// Execute runs decode → assemble → render on input with caching.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: cache.Hash(input)}

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, result.InputHash, opts); ok {
			opts.Logger.Debug("served from cache", "input", short(result.InputHash), "formats", opts.Formats)
			return cached, nil
		}
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Conversion().OnDecodeStart(ctx, len(input))
	elems, err := circuit.Decode(input)
	result.Stats.DecodeTime = time.Since(decodeStart)
	observability.Conversion().OnDecodeComplete(ctx, len(elems), result.Stats.DecodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Stats.ElementCount = len(elems)

	opts.Logger.Debug("decoded circuit",
		"elements", len(elems),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Assemble
	assembleStart := time.Now()
	observability.Conversion().OnAssembleStart(ctx, len(elems))
	assembled := drill.Assemble(elems, opts.DrillOptions())
	result.Stats.AssembleTime = time.Since(assembleStart)
	observability.Conversion().OnAssembleComplete(ctx, len(assembled.Tools), assembled.Skipped, result.Stats.AssembleTime)
	result.Tools = assembled.Tools
	result.Skipped = assembled.Skipped

	if assembled.Skipped > 0 {
		opts.Logger.Warn("skipped holes without a diameter", "count", assembled.Skipped)
	}
	opts.Logger.Info("assembled drill program",
		"tools", len(assembled.Tools),
		"commands", assembled.Program.Len(),
		"duration", result.Stats.AssembleTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Conversion().OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(assembled.Program, opts.Formats)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Conversion().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	r.store(ctx, result, opts)
	return result, nil
}

// Assemble decodes input and returns the assembled program without
// rendering or caching.
func (r *Runner) Assemble(input []byte, opts Options) (drill.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return drill.Result{}, fmt.Errorf("invalid options: %w", err)
	}
	elems, err := circuit.Decode(input)
	if err != nil {
		return drill.Result{}, fmt.Errorf("decode: %w", err)
	}
	return drill.Assemble(elems, opts.DrillOptions()), nil
}

// lookup returns a Result when the summary and every requested artifact
// are cached.
func (r *Runner) lookup(ctx context.Context, inputHash string, opts Options) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.DrillKey(inputHash, opts.DrillKeyOpts()))
	if err != nil {
		opts.Logger.Warn("cache read failed", "error", err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "drill")
		return nil, false
	}
	var s summary
	if err := json.Unmarshal(data, &s); err != nil {
		observability.Cache().OnCacheMiss(ctx, "drill")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "drill")

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, _ := r.Cache.Get(ctx, r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format)))
		if !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}

	return &Result{
		InputHash: inputHash,
		Artifacts: artifacts,
		Tools:     s.Tools,
		Skipped:   s.Skipped,
		Stats:     Stats{ElementCount: s.Elements},
		CacheInfo: CacheInfo{Hit: true},
	}, true
}

// store writes the summary and artifacts. Failures are logged, not returned.
func (r *Runner) store(ctx context.Context, res *Result, opts Options) {
	s := summary{Elements: res.Stats.ElementCount, Skipped: res.Skipped, Tools: res.Tools}
	if data, err := json.Marshal(s); err == nil {
		r.set(ctx, "drill", r.Keyer.DrillKey(res.InputHash, opts.DrillKeyOpts()), data, r.ttl(cache.TTLDrill), opts.Logger)
	}
	for format, data := range res.Artifacts {
		r.set(ctx, "artifact", r.Keyer.ArtifactKey(res.InputHash, opts.ArtifactKeyOpts(format)), data, r.ttl(cache.TTLArtifact), opts.Logger)
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, logger *log.Logger) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "key", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
