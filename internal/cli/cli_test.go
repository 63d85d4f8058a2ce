package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewAppFlags(t *testing.T) {
	var got struct {
		envFile string
		org     string
		workers int
		skip    bool
		setUser bool
	}

	app := NewApp("1.0.0", func(c *cli.Context) error {
		got.envFile = c.String("env-file")
		got.org = c.String("org")
		got.workers = c.Int("workers")
		got.skip = c.Bool("skip-token-check")
		got.setUser = c.IsSet("user")
		return nil
	})

	require.NoError(t, app.Run([]string{"commitmonth", "-o", "acme", "-w", "2", "--skip-token-check"}))
	assert.Equal(t, ".env", got.envFile)
	assert.Equal(t, "acme", got.org)
	assert.Equal(t, 2, got.workers)
	assert.True(t, got.skip)
	assert.False(t, got.setUser)
}

func TestNewAppHelp(t *testing.T) {
	var buf bytes.Buffer
	app := NewApp("1.0.0", func(c *cli.Context) error { return nil })
	app.Writer = &buf

	require.NoError(t, app.Run([]string{"commitmonth", "--help"}))
	assert.Contains(t, buf.String(), "commitmonth - Report a user's commits")
	assert.Contains(t, buf.String(), "--branch-errors")
}
