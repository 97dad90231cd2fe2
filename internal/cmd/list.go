package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewListCmd creates and returns the list subcommand for the matryoshka CLI.
// It prints the tree stored in a nested archive without extracting it.
func NewListCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list ARCHIVE",
		Short: "Print the directory tree inside a nested archive",
		Long: `Decode a nested archive in memory and print the tree it represents,
one entry per line, indented by depth. Directories end with a slash.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := nest.Load(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), root, long)
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show mode, size and modification time")

	return cmd
}

func printTree(w io.Writer, root *nest.Node, long bool) error {
	return root.Walk(func(_ string, n *nest.Node, depth int) error {
		name := n.Name
		if n.Dir {
			name += "/"
		}
		indent := strings.Repeat("  ", depth)
		if !long {
			_, err := fmt.Fprintf(w, "%s%s\n", indent, name)
			return err
		}
		mode := n.Mode.Perm().String()
		if n.Dir {
			mode = "d" + mode[1:]
		}
		_, err := fmt.Fprintf(w, "%s %8d %s %s%s\n", mode, n.Size(), n.Modified.Format("2006-01-02 15:04"), indent, name)
		return err
	})
}
