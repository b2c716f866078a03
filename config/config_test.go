package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.Equal(t, "127.0.0.1:5000", config.Addr())
	assert.NoError(t, config.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8081
  debug: true
  templates_dir: ./templates
model:
  path: /srv/models/tree.json
  cache_size: 64
log:
  level: debug
  format: json
  file: /var/log/loanscreen.log
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", config.HTTP.Host)
	assert.Equal(t, 8081, config.HTTP.Port)
	assert.True(t, config.HTTP.Debug)
	assert.Equal(t, "./templates", config.HTTP.TemplatesDir)
	assert.Equal(t, int64(1<<20), config.HTTP.MaxBodyBytes)
	assert.Equal(t, "decision_tree", config.Model.Type)
	assert.Equal(t, "/srv/models/tree.json", config.Model.Path)
	assert.Equal(t, 64, config.Model.CacheSize)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "/var/log/loanscreen.log", config.Log.File)
	assert.Equal(t, 3, config.Log.MaxBackups)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":       "http:\n  port: 70000\n",
		"body limit": "http:\n  max_body_bytes: 0\n",
		"model path": "model:\n  path: \"\"\n",
		"cache size": "model:\n  cache_size: -1\n",
		"log level":  "log:\n  level: verbose\n",
		"log format": "log:\n  format: xml\n",
		"yaml":       "http: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	config, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}
