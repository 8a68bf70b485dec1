package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		flagProfile = 0
		flagCatalog = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAdminCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONN", filepath.Join(dir, "admin.db"))
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema up to date (sqlite)")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.NotContains(t, out, "Stocks added:  0")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Careers added: 0")
	assert.Contains(t, out, "Stocks added:  0")

	out, err = run(t, "refresh-prices")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	// No profiles yet: nothing to do.
	out, err = run(t, "simulate-week")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "simulate-week", "--profile", "99")
	assert.Error(t, err)
}

func TestSeedRejectsBadCatalog(t *testing.T) {
	_, err := run(t, "seed", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read catalog")
}
