package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandBuilder runs the application's build command. It must leave the
// compiled bundle in the configured built directory.
type CommandBuilder struct {
	Command []string
	Dir     string
	Env     []string
	Stdout  io.Writer
	Stderr  io.Writer
}

func (b *CommandBuilder) Build(ctx context.Context) error {
	if len(b.Command) == 0 {
		return fmt.Errorf("missing build command")
	}

	cmd := exec.CommandContext(ctx, b.Command[0], b.Command[1:]...)
	cmd.Dir = b.Dir
	cmd.Env = append(os.Environ(), b.Env...)
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build command %q failed: %w", b.Command[0], err)
	}
	return nil
}
