package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// ErrMissingCredential marks a remote scoring provider with no API key configured.
var ErrMissingCredential = errors.New("missing credential")

var (
	secrets     map[string]string
	secretsErr  error
	secretsOnce sync.Once
)

// LoadSecrets reads a flat TOML file of string keys. A missing file yields an empty map.
func LoadSecrets(path string) (map[string]string, error) {
	out := map[string]string{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("read secrets: %w", err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse secrets: %w", err)
	}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = strings.TrimSpace(s)
		}
	}
	return out, nil
}

func secretsStore() map[string]string {
	secretsOnce.Do(func() {
		path := os.Getenv("SECRETS_FILE")
		if path == "" {
			path = "secrets.toml"
		}
		loaded, err := LoadSecrets(path)
		if err != nil {
			secretsErr = fmt.Errorf("%s: %w", path, err)
			loaded = map[string]string{}
		}
		secrets = loaded
	})
	return secrets
}

// SecretsError reports why the local secrets file could not be used. Credentials
// then come from the environment only.
func SecretsError() error {
	secretsStore()
	return secretsErr
}

// Credential resolves key from the environment first, then the local secrets file.
func Credential(key string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return secretsStore()[key]
}
