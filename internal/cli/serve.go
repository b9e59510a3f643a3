package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/config"
	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/server"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address, overrides config
	title   string // page title for the viewer
	noCache bool   // disable the layout cache
}

// serveCommand creates the serve command for the embedded viewer server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve an interactive viewer for a graph",
		Long:  `Serve starts an HTTP server exposing the interactive viewer page, the graph and layout as JSON, static exports, and snapshot management. The snapshot store is file-based unless a MongoDB URI is configured.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title for the viewer")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the layout cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, input string, opts *serveOpts) error {
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

	snaps, err := newSnapshotStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer snaps.Close()

	runOpts := pipelineOptions(cfg)
	runOpts.Title = opts.title
	runOpts.Logger = loggerFromContext(ctx)

	srv, err := server.New(server.Config{
		Graph:     g,
		Runner:    runner,
		Options:   runOpts,
		Snapshots: snaps,
		Logger:    loggerFromContext(ctx),
	})
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	printInfo("Serving %d nodes, %d links", len(g.Nodes), len(g.Links))
	printKeyValue("address", "http://localhost"+addr)
	printDetail("press ctrl-c to stop")

	return srv.ListenAndServe(ctx, addr)
}

// newSnapshotStore selects the snapshot backend from config. An empty mongo
// URI selects the file store.
func newSnapshotStore(cmd *cobra.Command, cfg config.Config) (store.Store, error) {
	if cfg.Mongo.URI != "" {
		return store.NewMongoStore(cmd.Context(), store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	return store.NewFileStore("")
}
