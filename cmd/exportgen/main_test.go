package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(zerolog.Nop())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportgenStdout(t *testing.T) {
	out, err := run(t, "--agents", "3", "--days", "1", "--seed", "5")
	require.NoError(t, err)

	records, err := loader.Parse(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.NotEmpty(t, records)
}

func TestExportgenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	_, err := run(t, "--agents", "2", "--days", "2", "--out", path)
	require.NoError(t, err)

	records, err := loader.Load(context.Background(), loader.Options{SourcePath: path})
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportgenValidation(t *testing.T) {
	_, err := run(t, "--agents", "0")
	assert.ErrorContains(t, err, "--agents must be positive")

	_, err = run(t, "--days", "-1")
	assert.ErrorContains(t, err, "--days must be positive")

	_, err = run(t, "--start", "30/06/2025")
	assert.ErrorContains(t, err, "invalid --start")
}
