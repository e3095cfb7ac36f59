// Package cli carries the pieces shared by the command-line entry points:
// settings loading, engine construction and document running.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the CLI configuration, loaded from a YAML or JSON file and
// overridable through environment variables.
type Settings struct {
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Client certificate for servers requiring TLS authentication.
	CertPemPath        string `yaml:"cert_pem_path" json:"cert_pem_path"`
	CertKeyPath        string `yaml:"cert_key_path" json:"cert_key_path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" json:"insecure_skip_verify"`

	OpenAI OpenAISettings `yaml:"openai" json:"openai"`
}

// OpenAISettings configures the language model translator.
type OpenAISettings struct {
	APIKey  string `yaml:"api_key" json:"api_key"`
	Model   string `yaml:"model" json:"model"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// LoadSettings reads a configuration file and applies environment
// overrides. A missing file is not an error; the environment alone can
// carry the whole configuration.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return s, fmt.Errorf("read config: %w", err)
		default:
			if strings.ToLower(filepath.Ext(path)) == ".json" {
				err = json.Unmarshal(data, &s)
			} else {
				err = yaml.Unmarshal(data, &s)
			}
			if err != nil {
				return s, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("WEBALGEBRA_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("WEBALGEBRA_CERT_PEM_PATH"); v != "" {
		s.CertPemPath = v
	}
	if v := os.Getenv("WEBALGEBRA_CERT_KEY_PATH"); v != "" {
		s.CertKeyPath = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && s.OpenAI.APIKey == "" {
		s.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		s.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.OpenAI.BaseURL = v
	}
	return s, nil
}
