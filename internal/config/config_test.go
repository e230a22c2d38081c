package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"typedkv/internal/wal"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typedkv.yaml")
	content := "wal_path: /var/lib/typedkv/wal.log\nfsync: os-buffered\nlisten_addr: 0.0.0.0:9999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/var/lib/typedkv/wal.log", cfg.WALPath)
	require.Equal(t, "0.0.0.0:9999", cfg.ListenAddr)
	require.Equal(t, wal.SyncOSBuffered, cfg.SyncPolicy())
}

func TestSyncPolicy_DefaultsToAlways(t *testing.T) {
	require.Equal(t, wal.SyncAlways, Default().SyncPolicy())
}
