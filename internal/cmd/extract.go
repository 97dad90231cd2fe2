package cmd

import (
	"fmt"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates and returns the extract subcommand for the matryoshka CLI.
// It unpacks every level of a nested archive back into a directory tree.
func NewExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract ARCHIVE [DEST]",
		Short: "Unpack a nested archive into a directory tree",
		Long: `Unpack a nested archive, recursively, into DEST/<name> where <name> is the
archive's base name without .zip. DEST defaults to the current directory.

Every embedded <file>.zip is unpacked to <file> and every embedded <dir>.zip to
a directory, restoring file modes and modification times. The command refuses
to write over an existing DEST/<name>.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := "."
			if len(args) > 1 {
				dest = args[1]
			}
			target, err := nest.Extract(afero.NewOsFs(), args[0], dest)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
}
