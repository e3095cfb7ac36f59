package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Run("YAML file", func(t *testing.T) {
		path := writeFile(t, "webalgebra.yaml", `
log_level: debug
cert_pem_path: /etc/certs/client.pem
openai:
  api_key: file-key
  model: gpt-4o-mini
`)
		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", s.LogLevel)
		assert.Equal(t, "/etc/certs/client.pem", s.CertPemPath)
		assert.Equal(t, "file-key", s.OpenAI.APIKey)
		assert.Equal(t, "gpt-4o-mini", s.OpenAI.Model)
	})

	t.Run("JSON file", func(t *testing.T) {
		path := writeFile(t, "webalgebra.json", `{"log_level": "warn", "insecure_skip_verify": true}`)
		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", s.LogLevel)
		assert.True(t, s.InsecureSkipVerify)
	})

	t.Run("Missing file is not an error", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.NoError(t, err)
	})

	t.Run("Malformed file fails", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "log_level: [")
		_, err := LoadSettings(path)
		assert.Error(t, err)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		path := writeFile(t, "webalgebra.yaml", "log_level: info\n")
		t.Setenv("WEBALGEBRA_LOG_LEVEL", "error")
		t.Setenv("OPENAI_MODEL", "env-model")

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "error", s.LogLevel)
		assert.Equal(t, "env-model", s.OpenAI.Model)
	})

	t.Run("Environment API key does not override the file", func(t *testing.T) {
		path := writeFile(t, "webalgebra.yaml", "openai:\n  api_key: file-key\n")
		t.Setenv("OPENAI_API_KEY", "env-key")

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "file-key", s.OpenAI.APIKey)
	})
}
