package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pcbdrill/pkg/config"
	"github.com/matzehuels/pcbdrill/pkg/errors"
	pcbio "github.com/matzehuels/pcbdrill/pkg/io"
	"github.com/matzehuels/pcbdrill/pkg/pipeline"
)

// convertOpts holds the flags of the convert command.
type convertOpts struct {
	output    string
	formats   string
	plated    bool
	flipY     bool
	generator string
	noCache   bool
	refresh   bool
	jobs      int
}

// convertResult is the outcome of converting one input file.
type convertResult struct {
	input   string
	outputs []string
	result  *pipeline.Result
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert circuit JSON files to Excellon drill files",
		Long: `Convert circuit JSON files to Excellon drill files.

Each input board.json is written next to itself as board.drl. With
--format json the drill program is also written as a JSON command list
(board.commands.json). Several files are converted concurrently.`,
		Example: `  pcbdrill convert board.json
  pcbdrill convert --plated=false -o npth.drl board.json
  pcbdrill convert -f drl,json boards/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("plated") {
				opts.plated = cfg.Drill.IncludePlated
			}
			if !cmd.Flags().Changed("flip-y") {
				opts.flipY = cfg.Drill.FlipY
			}
			if opts.generator == "" {
				opts.generator = cfg.Drill.Generator
			}
			return c.runConvert(cmd.Context(), cfg, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input and format only)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatDrill, "output formats: drl, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.plated, "plated", true, "drill plated holes and vias")
	cmd.Flags().BoolVar(&opts.flipY, "flip-y", false, "negate Y coordinates")
	cmd.Flags().StringVar(&opts.generator, "generator", "", "generator name written to the header")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "files converted in parallel")

	return cmd
}

// runConvert converts every input and reports the written files.
func (c *CLI) runConvert(ctx context.Context, cfg config.Config, inputs []string, opts convertOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.output != "" {
		if len(inputs) > 1 || len(formats) > 1 {
			return errors.New(errors.ErrCodeInvalidInput, "--output requires a single input file and a single format")
		}
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}
	for _, in := range inputs {
		if err := errors.ValidateInputFile(in); err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
	}
	if err := checkOutputPaths(inputs, formats, opts.output); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	results := make([]convertResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.jobs, 1))
	for i, in := range inputs {
		g.Go(func() error {
			res, err := c.convertFile(gctx, runner, in, formats, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		printSuccess("Converted %s", r.input)
		for _, out := range r.outputs {
			printFile(out)
		}
		printStats(r.result.Tools, r.result.CacheInfo.Hit)
		if r.result.Skipped > 0 {
			printWarning("%d hole(s) without a diameter were skipped", r.result.Skipped)
		}
	}
	prog.done(fmt.Sprintf("Converted %d file(s)", len(inputs)))
	return nil
}

// convertFile runs the pipeline on one input and writes its artifacts.
func (c *CLI) convertFile(ctx context.Context, runner *pipeline.Runner, input string, formats []string, opts convertOpts) (convertResult, error) {
	logger := fileLogger(ctx, input)

	data, err := pcbio.ReadFile(input)
	if err != nil {
		return convertResult{}, err
	}

	res, err := runner.Execute(ctx, data, pipeline.Options{
		IncludePlated: opts.plated,
		FlipY:         opts.flipY,
		Generator:     opts.generator,
		Formats:       formats,
		Refresh:       opts.refresh,
		Logger:        logger,
	})
	if err != nil {
		return convertResult{}, err
	}

	out := convertResult{input: input, result: res}
	for _, format := range formats {
		path := outputPath(input, format, opts.output)
		if err := pcbio.WriteFile(path, res.Artifacts[format]); err != nil {
			return convertResult{}, err
		}
		logger.Debug("wrote artifact", "format", format, "path", path, "bytes", len(res.Artifacts[format]))
		out.outputs = append(out.outputs, path)
	}
	return out, nil
}

// outputPath returns where the artifact of format for input is written.
func outputPath(input, format, output string) string {
	if output != "" {
		return output
	}
	return pcbio.DerivePath(input, formatExt(format))
}

// checkOutputPaths rejects inputs whose artifacts would be written to the
// same file, since they are converted concurrently.
func checkOutputPaths(inputs, formats []string, output string) error {
	seen := make(map[string]string, len(inputs)*len(formats))
	for _, in := range inputs {
		for _, format := range formats {
			path := filepath.Clean(outputPath(in, format, output))
			if prev, ok := seen[path]; ok {
				return errors.New(errors.ErrCodeInvalidInput, "%s and %s both write %s", prev, in, path)
			}
			seen[path] = in
		}
	}
	return nil
}

// formatExt maps an output format to its file extension.
func formatExt(format string) string {
	if format == pipeline.FormatJSON {
		return pcbio.ExtJSON
	}
	return pcbio.ExtExcellon
}
