package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dendrascience/matryoshka/internal/config"
	"github.com/dendrascience/matryoshka/internal/progress"
	"github.com/dendrascience/matryoshka/nest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewZipCmd creates and returns the zip subcommand for the matryoshka CLI.
// It archives a directory tree into nested zip files.
func NewZipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zip FOLDER",
		Short: "Create a nested zip archive from a directory tree",
		Long: `Create nested zip files from a directory, like a matryoshka doll.

Each file becomes file.zip, each subdirectory becomes subdir.zip holding the
zips of its own contents, and FOLDER becomes FOLDER.zip next to it.

--depth limits descent: subdirectories are archived only while their parent's
depth (root = 0) is below the limit, so --depth 0 archives the root's files
alone and deeper subdirectories are left out entirely.

By default a progress bar is drawn on stderr. --verbose logs every step and
--quiet prints nothing at all.`,
		Example: `  matryoshka zip documents
  matryoshka zip -d 2 documents
  matryoshka zip --keep-temp documents
  matryoshka zip -v documents`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZip(cmd, args[0])
		},
	}

	cmd.Flags().IntP("depth", "d", nest.Unlimited, "Maximum directory traversal depth (-1 for unlimited)")
	cmd.Flags().Bool("keep-temp", false, "Keep temporary zip files next to their sources")
	cmd.Flags().Int("level", nest.DefaultLevel, "Deflate compression level (-1 to 9, 0 stores uncompressed)")
	cmd.Flags().StringP("output", "o", "", "Directory receiving FOLDER.zip (default: FOLDER's parent)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress all output")

	return cmd
}

// loadConfig resolves configuration for cmd from its --config file,
// the environment and its flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(cfgFile)
	if err != nil {
		return config.Config{}, &nest.Error{Class: nest.ClassInput, Op: "config", Path: cfgFile, Err: err}
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	c, err := config.Resolve(v)
	if err != nil {
		return config.Config{}, &nest.Error{Class: nest.ClassInput, Op: "config", Err: err}
	}
	return c, nil
}

func runZip(cmd *cobra.Command, folder string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	fsys := afero.NewOsFs()
	opts := cfg.Options()
	opts.Token = nest.NewRunToken()
	out := cmd.OutOrStdout()

	switch cfg.Mode {
	case config.ModeQuiet:
		_, err := nest.Archive(ctx, fsys, folder, opts)
		return err

	case config.ModeVerbose:
		depth := "unlimited"
		if cfg.Depth != nest.Unlimited {
			depth = fmt.Sprint(cfg.Depth)
		}
		fmt.Fprintf(out, "Starting matryoshka zipping of folder: %s\n", folder)
		fmt.Fprintf(out, "Max depth: %s\n", depth)
		fmt.Fprintf(out, "Keep temporary files: %v\n", cfg.KeepTemp)
		fmt.Fprintf(out, "Run token: %s\n", opts.Token)

		v := progress.NewVerbose(out)
		opts.Sink = v
		path, err := nest.Archive(ctx, fsys, folder, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nMatryoshka zipping complete. Created %d zip files.\n", v.Created())
		fmt.Fprintln(out, path)
		return nil
	}

	tally, err := nest.Count(ctx, fsys, folder, cfg.Depth)
	if err != nil {
		return err
	}
	bar := progress.NewBar(cmd.ErrOrStderr(), tally.Items())
	opts.Sink = bar
	path, err := nest.Archive(ctx, fsys, folder, opts)
	bar.Finish()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
