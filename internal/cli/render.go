package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: "html", "json", "dot", "svg"
	title    string   // page title for HTML output
	width    float64  // frame width in pixels
	height   float64  // frame height in pixels
	seed     int64    // random seed for reproducible placement
	maxTicks int      // simulation tick budget
	refresh  bool     // recompute even when a cached layout exists
	noCache  bool     // disable the layout cache entirely
}

// renderCommand creates the render command for exporting graph visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph to HTML, SVG, PNG, DOT, or JSON",
		Long:  `Render settles the layout and exports it in one or more formats. The default HTML output is a self-contained interactive page; SVG and DOT are static exports for documents and tooling.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title for HTML output")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for reproducible placement")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 0, "simulation tick budget")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	g, err := loadGraph(input)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}

	runOpts := pipelineOptions(cfg)
	runOpts.Formats = opts.formats
	runOpts.Title = opts.title
	runOpts.Refresh = opts.refresh
	runOpts.Logger = loggerFromContext(ctx)
	if opts.width > 0 {
		runOpts.Width = opts.width
	}
	if opts.height > 0 {
		runOpts.Height = opts.height
	}
	if opts.seed != 0 {
		runOpts.Seed = opts.seed
	}
	if opts.maxTicks > 0 {
		runOpts.MaxTicks = opts.maxTicks
	}

	prog := newProgress(loggerFromContext(ctx))
	sp := newSpinnerWithContext(ctx, "Rendering")
	sp.Start()
	result, err := runner.Execute(ctx, g, runOpts)
	sp.Stop()
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	prog.done("render complete")

	printSuccess("Rendered in %s", (result.Stats.LayoutTime + result.Stats.RenderTime).Round(time.Millisecond))
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.LayoutHit)

	if len(opts.formats) == 1 {
		format := opts.formats[0]
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", format, err)
		}
		printFile(path)
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", format, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output already
// carries a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
