package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlkit/smoke/internal/config"
	"github.com/mlkit/smoke/internal/suite"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	BinDir  string
	DataDir string
	Filter  string
}

// suitePlan is the JSON shape of one suite's execution plan.
type suitePlan struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Cases       []casePlan `json:"cases"`
}

type casePlan struct {
	Seq     int      `json:"seq"`
	Label   string   `json:"label"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	env := config.FromEnv()
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [suite.yaml...]",
		Short: "Print the execution plan without running it",
		Long: `Print the execution plan without running anything.

Shows every case of the built-in toolkit suite (or of the given suite
files) in execution order, with the exact command line each case would
invoke. The plan for a given set of flags is stable across runs.

Exit codes:
  0 - Plan printed
  2 - Command error (unreadable suite, bad --filter pattern)

Examples:
  smoke list
  smoke list --bin-dir ./bin --data-dir ./data
  smoke list --filter "*discretise*" --format json
  smoke list extras.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BinDir, "bin-dir", env.BinDir, "directory holding the toolkit binaries (empty: resolve via PATH)")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", env.DataDir, "directory holding the dataset files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "list only cases whose label matches this glob")

	return cmd
}

func runList(opts *ListOptions, args []string, cmd *cobra.Command) error {
	sources, err := resolveSuites(args, suite.Paths{BinDir: opts.BinDir, DataDir: opts.DataDir})
	if err != nil {
		return err
	}
	sources, err = filterSuites(sources, opts.Filter)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		plans := make([]suitePlan, 0, len(sources))
		for _, src := range sources {
			plans = append(plans, planOf(src.Suite))
		}
		formatter := &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(),
			Verbose:   opts.Verbose,
		}
		return formatter.Success(plans)
	}

	w := cmd.OutOrStdout()
	for i, src := range sources {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s := src.Suite
		fmt.Fprintf(w, "Suite: %s (%d cases)\n", s.Name, s.Len())
		if s.Description != "" {
			fmt.Fprintf(w, "  %s\n", s.Description)
		}
		fmt.Fprintln(w)
		for j, c := range s.Cases {
			fmt.Fprintf(w, "%4d. %s\n", j+1, c.Label)
			fmt.Fprintf(w, "      %s\n", c.CommandLine())
		}
	}
	return nil
}

func planOf(s suite.Suite) suitePlan {
	plan := suitePlan{
		Name:        s.Name,
		Description: s.Description,
		Cases:       make([]casePlan, 0, s.Len()),
	}
	for i, c := range s.Cases {
		plan.Cases = append(plan.Cases, casePlan{
			Seq:     i,
			Label:   c.Label,
			Command: c.Command,
			Args:    c.Args,
		})
	}
	return plan
}
