package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	content := `
GEMINI_API_KEY = "  gem-key "
OPENROUTER_API_KEY = "or-key"
TIMEOUT = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := LoadSecrets(path)
	require.NoError(t, err)
	require.Equal(t, "gem-key", got["GEMINI_API_KEY"])
	require.Equal(t, "or-key", got["OPENROUTER_API_KEY"])
	_, ok := got["TIMEOUT"]
	require.False(t, ok, "non-string values are ignored")
}

func TestLoadSecretsMissingFile(t *testing.T) {
	got, err := LoadSecrets(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLoadSecretsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY = "), 0o600))

	_, err := LoadSecrets(path)
	require.Error(t, err)
}

func TestCredentialPrefersEnvironment(t *testing.T) {
	t.Setenv("PITCH_TEST_KEY", " from-env ")
	require.Equal(t, "from-env", Credential("PITCH_TEST_KEY"))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PITCH_INT", "12")
	t.Setenv("PITCH_BAD_INT", "x")
	t.Setenv("PITCH_FLOAT", "0.5")
	t.Setenv("PITCH_BOOL", "false")

	require.Equal(t, 12, intEnv("PITCH_INT", 3))
	require.Equal(t, 3, intEnv("PITCH_BAD_INT", 3))
	require.Equal(t, 7, intEnv("PITCH_UNSET", 7))
	require.InDelta(t, 0.5, floatEnv("PITCH_FLOAT", 0.2), 1e-9)
	require.False(t, boolEnv("PITCH_BOOL", true))
}

func TestSecretsErrorKeepsEnvironmentCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY = "), 0o600))
	t.Setenv("SECRETS_FILE", path)
	t.Setenv("PITCH_ENV_ONLY_KEY", "env-value")

	require.ErrorContains(t, SecretsError(), path)
	require.Equal(t, "env-value", Credential("PITCH_ENV_ONLY_KEY"))
	require.Empty(t, Credential("PITCH_MISSING_KEY"))
}
