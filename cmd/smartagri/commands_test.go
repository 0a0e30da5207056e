package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "smartagri.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandTree(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCommand().Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed", "sweep"})
}

func TestMigrateCommand(t *testing.T) {
	setSQLiteEnv(t)
	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema migrated")
}

func TestSeedAndSweepCommands(t *testing.T) {
	setSQLiteEnv(t)

	out, err := run(t, "seed", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded ")

	out, err = run(t, "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "inventory lots")
}

func TestInvalidLogLevel(t *testing.T) {
	setSQLiteEnv(t)
	_, err := run(t, "migrate", "--log-level", "loud")
	assert.Error(t, err)
}
