// Package pipeline provides the conversion pipeline shared by the CLI and
// the HTTP API.
//
// A run takes raw circuit JSON through three stages:
//
//  1. Decode: parse the element array (package circuit)
//  2. Assemble: build the drill program (package drill)
//  3. Render: serialize the program into each requested format
//
// Results are cached per input hash and option set, so repeated requests
// for the same board skip all three stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{
//	    IncludePlated: true,
//	    Formats:       []string{pipeline.FormatDrill},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	drl := result.Artifacts[pipeline.FormatDrill]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pcbdrill/pkg/cache"
	"github.com/matzehuels/pcbdrill/pkg/drill"
	"github.com/matzehuels/pcbdrill/pkg/errors"
)

// Format constants for output formats.
const (
	FormatDrill = "drl"  // Excellon text
	FormatJSON  = "json" // JSON command list
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDrill: true,
	FormatJSON:  true,
}

// Options contains all configuration for a conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	IncludePlated bool     `json:"include_plated"`
	FlipY         bool     `json:"flip_y,omitempty"`
	Generator     string   `json:"generator,omitempty"`
	Formats       []string `json:"formats,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"` // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// InputHash is the SHA-256 of the raw input.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Tools summarizes per-tool usage in definition order.
	Tools []drill.ToolUsage

	// Skipped counts hole elements without a resolvable diameter.
	Skipped int

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount int
	DecodeTime   time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports whether the run was served from cache.
type CacheInfo struct {
	Hit bool // summary and every artifact came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// SetDefaults fills unset fields. IncludePlated is left alone: its zero
// value is a meaningful choice.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDrill}
	}
	if o.Generator == "" {
		o.Generator = drill.DefaultGenerator
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// ValidateAndSetDefaults applies defaults and validates the result.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateGenerator(o.Generator); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	o.validated = true
	return nil
}

// DrillOptions returns the assembler options.
func (o *Options) DrillOptions() drill.Options {
	return drill.Options{
		IncludePlated: o.IncludePlated,
		FlipY:         o.FlipY,
		Generator:     o.Generator,
		Now:           o.Now,
	}
}

// DrillKeyOpts returns cache key options for the tool summary.
func (o *Options) DrillKeyOpts() cache.DrillKeyOpts {
	return cache.DrillKeyOpts{
		IncludePlated: o.IncludePlated,
		FlipY:         o.FlipY,
		Generator:     o.Generator,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{DrillKeyOpts: o.DrillKeyOpts(), Format: format}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
