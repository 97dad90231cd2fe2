package cmd

import (
	"github.com/dendrascience/matryoshka/nest"
	"github.com/dendrascience/matryoshka/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the matryoshka CLI.
// It sets up all subcommands, command groups, and the shared --config flag.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "matryoshka",
		Short: "matryoshka - nested zip archives of directory trees",
		Long: `matryoshka turns a directory tree into nested zip archives, like a set of dolls.

Every file is compressed on its own into <file>.zip, every directory becomes
<dir>.zip holding the archives of its children, and the whole tree ends up as
a single <root>.zip beside the original folder.

Exit Codes:
  0 - Success
  1 - I/O failure while reading the tree or writing archives
  2 - Invalid input (missing root, bad flags or configuration)
  3 - Resource exhaustion (disk full, too many open files, nesting too deep)`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &nest.Error{Class: nest.ClassInput, Op: "flags", Err: err}
	})
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.config/matryoshka/config.toml)")

	groupArchive := "archive"
	groupInspect := "inspect"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchive,
		Title: "Archive Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupInspect,
		Title: "Inspection",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	zipCmd := NewZipCmd()
	extractCmd := NewExtractCmd()
	listCmd := NewListCmd()
	mountCmd := NewMountCmd()
	countCmd := NewCountCmd()
	cleanCmd := NewCleanCmd()

	zipCmd.GroupID = groupArchive
	extractCmd.GroupID = groupArchive
	listCmd.GroupID = groupInspect
	mountCmd.GroupID = groupInspect
	countCmd.GroupID = groupUtilities
	cleanCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(cleanCmd)

	for _, c := range rootCmd.Commands() {
		c.Args = inputArgs(c.Args)
	}

	return rootCmd
}

// inputArgs marks argument validation failures as input errors.
func inputArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	if validate == nil {
		return nil
	}
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &nest.Error{Class: nest.ClassInput, Op: "args", Err: err}
		}
		return nil
	}
}
