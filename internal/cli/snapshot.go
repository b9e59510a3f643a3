package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/store"
)

// snapshotCommand creates the snapshot command group for saved graph states.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage saved graph snapshots",
		Long:  `Snapshots pair a graph document with its settled layout under a name, so a session can be restored without re-running the simulation. They live in ~/.config/neurograph/snapshots unless a MongoDB URI is configured.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "save [name] [file]",
		Short: "Settle a graph and save it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshotSave(cmd, args[0], args[1], noCache)
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the layout cache")
	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshotList(cmd)
		},
	}
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print a snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshotShow(cmd, args[0])
		},
	}
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshotDelete(cmd, args[0])
		},
	}
}

func (c *CLI) openSnapshotStore(cmd *cobra.Command) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return newSnapshotStore(cmd, cfg)
}

func (c *CLI) runSnapshotSave(cmd *cobra.Command, name, input string, noCache bool) error {
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
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return err
	}

	runOpts := pipelineOptions(cfg)
	runOpts.Logger = loggerFromContext(ctx)

	sp := newSpinnerWithContext(ctx, "Settling layout")
	sp.Start()
	result, err := runner.Execute(ctx, g, runOpts)
	sp.Stop()
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	snap, err := store.NewSnapshot(name, result.Graph, result.Layout)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	snaps, err := newSnapshotStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer snaps.Close()

	if err := snaps.Save(ctx, snap); err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	printSuccess("Saved snapshot %q", name)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.LayoutHit)
	printNextStep("Restore it", appName+" snapshot show "+name)
	return nil
}

func (c *CLI) runSnapshotList(cmd *cobra.Command) error {
	snaps, err := c.openSnapshotStore(cmd)
	if err != nil {
		return err
	}
	defer snaps.Close()

	list, err := snaps.List(cmd.Context())
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	if len(list) == 0 {
		printInfo("No snapshots saved")
		printNextStep("Save one", appName+" snapshot save <name> <file>")
		return nil
	}

	for _, snap := range list {
		printKeyValue(snap.Name, snap.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func (c *CLI) runSnapshotShow(cmd *cobra.Command, name string) error {
	snaps, err := c.openSnapshotStore(cmd)
	if err != nil {
		return err
	}
	defer snaps.Close()

	snap, err := snaps.Get(cmd.Context(), name)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func (c *CLI) runSnapshotDelete(cmd *cobra.Command, name string) error {
	snaps, err := c.openSnapshotStore(cmd)
	if err != nil {
		return err
	}
	defer snaps.Close()

	if err := snaps.Delete(cmd.Context(), name); err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}
	printSuccess("Deleted snapshot %q", name)
	return nil
}
