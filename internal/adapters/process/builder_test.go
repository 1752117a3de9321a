package process

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBuilder(t *testing.T) {
	var stdout bytes.Buffer
	b := &CommandBuilder{
		Command: []string{"sh", "-c", "echo built $TARGET"},
		Env:     []string{"TARGET=static"},
		Stdout:  &stdout,
		Stderr:  &stdout,
	}

	require.NoError(t, b.Build(context.Background()))
	assert.Equal(t, "built static\n", stdout.String())
}

func TestCommandBuilderFailure(t *testing.T) {
	var out bytes.Buffer
	b := &CommandBuilder{Command: []string{"sh", "-c", "exit 2"}, Stdout: &out, Stderr: &out}

	err := b.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `build command "sh" failed`)
}

func TestCommandBuilderMissingCommand(t *testing.T) {
	require.Error(t, (&CommandBuilder{}).Build(context.Background()))
}
