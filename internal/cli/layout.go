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

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output   string  // output file path ("-" for stdout)
	width    float64 // frame width in pixels
	height   float64 // frame height in pixels
	seed     int64   // random seed for reproducible placement
	maxTicks int     // simulation tick budget
	refresh  bool    // recompute even when a cached layout exists
	noCache  bool    // disable the layout cache entirely
}

// layoutCommand creates the layout command for settling node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute settled node positions for a graph",
		Long:  `Layout runs the force simulation to completion and writes the settled positions as JSON. Results are cached by graph content and physics parameters, so repeated runs are instant.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with .layout.json, \"-\" for stdout)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for reproducible placement")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", 0, "simulation tick budget")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, input string, opts *layoutOpts) error {
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
	runOpts.Formats = []string{pipeline.FormatJSON}
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
	sp := newSpinnerWithContext(ctx, "Settling layout")
	sp.Start()
	result, err := runner.Execute(ctx, g, runOpts)
	sp.Stop()
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	prog.done("layout settled")

	data := result.Artifacts[pipeline.FormatJSON]
	if opts.output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}

	printSuccess("Layout settled in %s", result.Stats.LayoutTime.Round(time.Millisecond))
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.LayoutHit)
	printFile(path)
	return nil
}
