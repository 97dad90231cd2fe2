package cmd

import (
	"fmt"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates and returns the clean subcommand for the matryoshka CLI.
// It removes temporary archives retained by zip --keep-temp or left by an
// interrupted run.
func NewCleanCmd() *cobra.Command {
	var (
		token  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "clean FOLDER",
		Short: "Remove retained temporary zip files from a tree",
		Long: `Remove the <name>_<token>.zip files that zip leaves beside every file and
directory when run with --keep-temp, plus any stray FOLDER_<token>.zip next to
FOLDER. Restrict removal to a single run with --token.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tok nest.RunToken
			if token != "" {
				var err error
				if tok, err = nest.ParseRunToken(token); err != nil {
					return &nest.Error{Class: nest.ClassInput, Op: "parse token", Path: token, Err: err}
				}
			}
			var fsys afero.Fs = afero.NewOsFs()
			if dryRun {
				fsys = keepFs{fsys}
			}
			removed, err := nest.Clean(fsys, args[0], tok)
			for _, p := range removed {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "Only remove artifacts of this run token")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without removing it")

	return cmd
}

// keepFs reports removals as done without performing them.
type keepFs struct {
	afero.Fs
}

func (keepFs) Remove(string) error { return nil }
