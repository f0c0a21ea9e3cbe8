package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"smartpay/backend/config"
	"smartpay/backend/migrations"
)

// useConfig points the package globals at a throwaway SQLite file for one test.
func useConfig(t *testing.T) {
	t.Helper()
	loaded, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	loaded.Database.DSN = filepath.Join(t.TempDir(), "smartpay.db")

	prevCfg, prevLogger := cfg, logger
	cfg, logger = loaded, zaptest.NewLogger(t)
	t.Cleanup(func() { cfg, logger = prevCfg, prevLogger })
}

func TestMigrateCommandStatus(t *testing.T) {
	useConfig(t)

	cmd := migrateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--seed", "--status"})
	require.NoError(t, cmd.Execute())

	for _, m := range migrations.All() {
		assert.Contains(t, out.String(), m.Name)
	}
}

func TestMigrateCommandIsRepeatable(t *testing.T) {
	useConfig(t)

	for range 2 {
		cmd := migrateCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"--seed"})
		require.NoError(t, cmd.Execute())
	}
}
