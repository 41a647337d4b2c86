package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewAppFlags(t *testing.T) {
	app := newApp()
	require.NotNil(t, app.Action)

	names := map[string]cli.Flag{}
	for _, f := range app.Flags {
		names[f.Names()[0]] = f
	}
	require.Contains(t, names, "env-file")
	require.Contains(t, names, "port")

	envFiles, ok := names["env-file"].(*cli.StringSliceFlag)
	require.True(t, ok)
	assert.Equal(t, []string{"../.env", ".env"}, envFiles.Value.Value())
}
