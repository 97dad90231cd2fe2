package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/matryoshka/internal/mountfs"
	"github.com/dendrascience/matryoshka/nest"
	"github.com/dendrascience/matryoshka/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the matryoshka CLI.
// It serves a nested archive as a read-only FUSE filesystem.
func NewMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount ARCHIVE MOUNTPOINT",
		Short: "Mount a nested archive read-only",
		Long: `Mount a nested archive at MOUNTPOINT as a read-only filesystem.

ARCHIVE is a zip produced by the zip command.
MOUNTPOINT is the directory where the tree will appear. Nested directory
archives show up as directories and file archives as their files.

The archive is decoded into memory when mounting. Interrupt to unmount.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}
}

func runMount(cmd *cobra.Command, args []string) error {
	archivePath := args[0]
	mountpoint := args[1]

	if pathsOverlap(mountpoint, archivePath) {
		return &nest.Error{Class: nest.ClassInput, Op: "mount", Path: mountpoint,
			Err: fmt.Errorf("mountpoint would hide %s", archivePath)}
	}

	root, err := nest.Load(afero.NewOsFs(), archivePath)
	if err != nil {
		return err
	}
	filesystem := mountfs.New(root)

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("matryoshka"),
		fuse.Subtype("matryoshka"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return &nest.Error{Class: nest.ClassIO, Op: "mount", Path: mountpoint, Err: err}
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		log.Println("Received interrupt signal, unmounting...")
		if err := fuse.Unmount(mountpoint); err != nil {
			log.Printf("Unmount failed: %v", err)
		}
	}()

	log.Printf("matryoshka %s serving %s at %s", version.Get().Version, archivePath, mountpoint)
	if err := fs.Serve(c, filesystem); err != nil {
		return &nest.Error{Class: nest.ClassIO, Op: "serve", Path: mountpoint, Err: err}
	}
	return nil
}

// pathsOverlap reports whether one path contains the other.
func pathsOverlap(path1, path2 string) bool {
	return isParent(path1, path2) || isParent(path2, path1)
}

// isParent reports whether child is dir or lies beneath it.
func isParent(dir, child string) bool {
	a, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	b, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(a, b)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
