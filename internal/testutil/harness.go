// Package testutil provides shared helpers for tests that need a full
// project parsed from HCL source rather than a hand-built config model.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/techgridgo/internal/graph"
	"github.com/vk/techgridgo/internal/hcl"
	"github.com/vk/techgridgo/internal/settings"
)

// BuildProject parses a project HCL string, builds the object graph, and
// applies the project's milestone settings. Any failure fails the test.
func BuildProject(t *testing.T, projectHCL string) (*graph.Graph, *settings.Settings) {
	t.Helper()
	ctx := context.Background()

	path := WriteProjectFile(t, projectHCL)
	model, err := hcl.NewLoader().Load(ctx, path)
	require.NoError(t, err)

	g, err := graph.Build(ctx, model)
	require.NoError(t, err)

	s, err := settings.FromConfig(g, model.Milestones)
	require.NoError(t, err)

	return g, s
}

// WriteProjectFile writes the HCL source to a temp project file and returns
// its path.
func WriteProjectFile(t *testing.T, projectHCL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.hcl")
	require.NoError(t, os.WriteFile(path, []byte(projectHCL), 0o644))
	return path
}

// MustNode resolves an object name and fails the test if it is unknown.
func MustNode(t *testing.T, g *graph.Graph, name string) graph.NodeID {
	t.Helper()
	id, ok := g.NodeByName(name)
	require.True(t, ok, "object %q not found in graph", name)
	return id
}
