package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/matryoshka/internal/cmd"
	"github.com/dendrascience/matryoshka/nest"
	"github.com/dendrascience/matryoshka/version"
)

func main() {
	root := cmd.NewRootCmd()
	if err := fang.Execute(context.Background(), root, fang.WithVersion(version.Get().String())); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error's class to the documented exit status.
func exitCode(err error) int {
	switch nest.ClassOf(err) {
	case nest.ClassInput:
		return 2
	case nest.ClassResource:
		return 3
	}
	return 1
}
