package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATA_DIR", "FILE", "BACKEND", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, DefaultJSONFile, cfg.FileName)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, DefaultJSONFile), cfg.VaultPath())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TWINVAULT_DATA_DIR", dir)
	t.Setenv("TWINVAULT_BACKEND", "bolt")
	t.Setenv("TWINVAULT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, DefaultBoltFile, cfg.FileName)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "TWINVAULT_DATA_DIR=" + dir + "\nTWINVAULT_FILE=custom.secure\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0600))
	t.Cleanup(func() {
		os.Unsetenv("TWINVAULT_DATA_DIR")
		os.Unsetenv("TWINVAULT_FILE")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "custom.secure"), cfg.VaultPath())
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	assert.NoError(t, err)
}

func TestLoad_InvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("TWINVAULT_BACKEND", "sqlite")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidBackend)
}

func TestValidate_FileName(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir(), Backend: BackendJSON}

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		cfg.FileName = name
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPath, name)
	}

	cfg.FileName = "ok.secure"
	assert.NoError(t, cfg.Validate())
}
