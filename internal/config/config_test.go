package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "telegram-token")
	t.Setenv("GROQ_API_KEY", "groq-key")

	cfg, err := Config{}.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "telegram-token", cfg.Token)
	assert.Equal(t, "groq-key", cfg.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.BaseURL)
	assert.Equal(t, 500, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, 60*time.Second, cfg.CallTimeout)
	assert.Equal(t, "config.toml", cfg.ConfigFile)
}

func TestLoadEnv_MissingRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("GROQ_API_KEY", "")
	os.Unsetenv("TELEGRAM_TOKEN")
	os.Unsetenv("GROQ_API_KEY")

	_, err := Config{}.LoadEnv()
	assert.Error(t, err)
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	cfg := Config{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")}

	require.NoError(t, cfg.LoadFile())

	assert.Equal(t, DefaultCatalog.Models, cfg.Catalog.Models)
	assert.Equal(t, DefaultCatalog.Topics, cfg.Catalog.Topics)
	assert.Len(t, cfg.Catalog.Topics, 18)
}

func TestLoadFile_OverridesCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[catalog]
models = ["model-a", "model-b"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Config{ConfigFile: path}
	require.NoError(t, cfg.LoadFile())

	assert.Equal(t, []string{"model-a", "model-b"}, cfg.Catalog.Models)
	assert.Equal(t, DefaultCatalog.Topics, cfg.Catalog.Topics, "empty topics fall back to defaults")
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[catalog\nmodels = "), 0o644))

	cfg := Config{ConfigFile: path}
	assert.Error(t, cfg.LoadFile())
}

func TestLoadFile_DefaultsAreNotShared(t *testing.T) {
	cfg := Config{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")}
	require.NoError(t, cfg.LoadFile())

	cfg.Catalog.Topics[0] = "changed"
	assert.Equal(t, "fé", DefaultCatalog.Topics[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{MaxTokens: 500, Temperature: 0.7, CallTimeout: time.Minute}},
		{name: "zero max tokens", cfg: Config{MaxTokens: 0, Temperature: 0.7}, wantErr: true},
		{name: "temperature too high", cfg: Config{MaxTokens: 500, Temperature: 3}, wantErr: true},
		{name: "negative timeout", cfg: Config{MaxTokens: 500, Temperature: 0.7, CallTimeout: -time.Second}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
