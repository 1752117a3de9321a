package main

import (
	"context"
	"errors"
	"os"

	"github.com/3-lines-studio/prerender/internal/adapters/cli"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			cli.NewOutput().PrintError("%v", err)
		}
		os.Exit(1)
	}
}
