package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Journal.Currency)
	assert.Equal(t, 10000.0, cfg.Journal.DefaultBaseline)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "memory store needs no path",
			mutate: func(c *Config) { c.Store = StoreConfig{Type: "memory"} },
		},
		{
			name:    "zero baseline",
			mutate:  func(c *Config) { c.Journal.DefaultBaseline = 0 },
			wantErr: true,
			errMsg:  "journal.default_baseline must be positive",
		},
		{
			name:    "missing currency",
			mutate:  func(c *Config) { c.Journal.Currency = "" },
			wantErr: true,
			errMsg:  "journal.currency is required",
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Store.Type = "redis" },
			wantErr: true,
			errMsg:  "store.type must be",
		},
		{
			name:    "file store without path",
			mutate:  func(c *Config) { c.Store = StoreConfig{Type: "file"} },
			wantErr: true,
			errMsg:  "store.path required for file store",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.DefaultBaseline = 2500
			cfg.Store = StoreConfig{Type: "file", Path: "journal.json"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: memory\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "USD", cfg.Journal.Currency)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TRADEJOURNAL_PATH="+filepath.Join(dir, "j.json")+"\n"), 0644))

	t.Setenv(EnvStoreType, "file")
	t.Setenv(EnvLogLevel, "debug")
	// godotenv.Load does not override variables that are already set
	t.Setenv(EnvStorePath, "")
	require.NoError(t, os.Unsetenv(EnvStorePath))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envFile))
	assert.Equal(t, "file", cfg.Store.Type)
	assert.Equal(t, filepath.Join(dir, "j.json"), cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "debug", cfg.Logger().GetLevel().String())
}

func TestApplyEnvMissingFile(t *testing.T) {
	t.Setenv(EnvStoreType, "memory")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "memory", cfg.Store.Type)
}
