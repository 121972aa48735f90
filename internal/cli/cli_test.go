package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional project path", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"project.hcl"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "project.hcl", cfg.ProjectPath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.All)
		assert.Zero(t, cfg.StepCap)
	})

	t.Run("flags override defaults", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{
			"-project", "proj",
			"-object", "iron-gear",
			"-all",
			"-step-cap", "500",
			"-log-format", "json",
			"-log-level", "debug",
		}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "proj", cfg.ProjectPath)
		assert.Equal(t, "iron-gear", cfg.Object)
		assert.True(t, cfg.All)
		assert.Equal(t, 500, cfg.StepCap)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("shorthand project flag", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-p", "short"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "short", cfg.ProjectPath)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log format", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-format", "xml", "proj"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("invalid log level", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "proj"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("negative step cap", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-step-cap", "-1", "proj"}, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Contains(t, exitErr.Message, "invalid step-cap")
	})
}
