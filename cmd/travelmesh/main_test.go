package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/travelmesh/artifact"
)

func TestRootCmd_Flags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "env-file", "log-level"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "chat")
	assert.Contains(t, names, "serve")
}

func TestRootCmd_Help(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "travel guide")
}

func TestNewApp_SQLiteHistory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TRAVELMESH_HISTORY_BACKEND", "sqlite")
	t.Setenv("TRAVELMESH_HISTORY_DSN", filepath.Join(dir, "db", "guides.db"))
	t.Setenv("TRAVELMESH_PROVIDER", "huggingface")

	var logs bytes.Buffer
	a, err := newApp(context.Background(), &globalFlags{envFile: filepath.Join(dir, "missing.env")}, &logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, ok := a.store.(*artifact.SQLiteStore)
	assert.True(t, ok)
	assert.Equal(t, "huggingface", a.provider.Info().Provider)

	mesh, err := a.newMesh(nil)
	require.NoError(t, err)
	assert.Len(t, mesh.Agents(), 5)

	_, err = os.Stat(filepath.Join(dir, "db", "guides.db"))
	assert.NoError(t, err)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := newApp(context.Background(), &globalFlags{logLevel: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
