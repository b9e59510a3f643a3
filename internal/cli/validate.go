package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/errors"
	"github.com/mrk0244/NeuroGraph-Drug-Interaction-Predictor/pkg/graph"
)

// validateCommand creates the validate command for checking graph documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a graph document",
		Long:  `Validate checks a JSON graph document for structural problems: duplicate node IDs, links pointing at unknown nodes, and unrecognized entity groups.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(path string) error {
	g, err := loadGraph(path)
	if err != nil {
		printError("%s", errs.UserMessage(err))
		return err
	}

	types := map[string]int{}
	for _, n := range g.Nodes {
		types[n.Type]++
	}

	printSuccess("Graph is valid")
	printStats(len(g.Nodes), len(g.Links), false)
	for _, t := range []string{graph.TypeDrug, graph.TypeProtein, graph.TypeSideEffect} {
		if count := types[t]; count > 0 {
			printDetail("%d %s", count, t)
		}
	}
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, path))
	return nil
}
