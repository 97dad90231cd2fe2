package cmd

import (
	"fmt"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the matryoshka CLI.
// It previews how much of a tree zip would archive at a given depth.
func NewCountCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count what zip would archive in a directory tree",
		Long: `Count the files and directories that zip would archive.

This walks the tree with the same rules as zip (depth limit, skipped
symlinked directories and leftover temporary archives) without writing
anything. The depth comes from --depth, MATRYOSHKA_DEPTH or the config file,
as for zip.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tally, err := nest.Count(cmdContext(cmd), afero.NewOsFs(), path, cfg.Depth)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Files: %d\n", tally.Files)
			fmt.Fprintf(out, "Directories: %d\n", tally.Dirs)
			fmt.Fprintf(out, "Skipped: %d\n", tally.Skipped)
			fmt.Fprintf(out, "Bytes: %d\n", tally.Bytes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "./", "Path to count files in")
	cmd.Flags().IntP("depth", "d", nest.Unlimited, "Maximum directory traversal depth (-1 for unlimited)")

	return cmd
}
