package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"CONFIG_PATH", "HTTP_ADDRESS", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "CORS_ALLOWED_ORIGINS",
	"API_TOKEN", "WEATHER_API_KEY", "WEATHER_BASE_URL", "WEATHER_TIMEOUT",
	"OPENAI_API_KEY", "LLM_API_KEY", "LLM_BASE_URL", "LLM_MODEL", "LLM_TEMPERATURE", "LLM_TIMEOUT",
}

// isolateEnv runs the test from an empty directory with every config variable unset.
// Values are restored by t.Setenv's cleanup.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range managedEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	// Equivalent of t.Chdir (Go 1.24+) for the local Go 1.21 toolchain.
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("API_TOKEN", "shared-secret")
	t.Setenv("WEATHER_API_KEY", "vc-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)
	setSecrets(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "shared-secret", cfg.Auth.Token.Unmask())
	require.Equal(t, "vc-key", cfg.Weather.APIKey.Unmask())
	require.Equal(t, "sk-test", cfg.LLM.APIKey.Unmask())
	require.Equal(t, "gpt-3.5-turbo", cfg.LLM.Model)
	require.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	require.Contains(t, cfg.Weather.BaseURL, "weather.visualcrossing.com")
}

func TestLoadRefusesMissingSecrets(t *testing.T) {
	tests := []struct {
		name    string
		missing string
		wantErr string
	}{
		{name: "token", missing: "API_TOKEN", wantErr: "invalid config: auth.token cannot be empty (set API_TOKEN)"},
		{name: "weather key", missing: "WEATHER_API_KEY", wantErr: "invalid config: weather.apiKey cannot be empty (set WEATHER_API_KEY)"},
		{name: "llm key", missing: "OPENAI_API_KEY", wantErr: "invalid config: llm.apiKey cannot be empty (set OPENAI_API_KEY)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			setSecrets(t)
			require.NoError(t, os.Unsetenv(tt.missing))

			_, err := Load()
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolateEnv(t)
	setSecrets(t)
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("WEATHER_TIMEOUT", "3s")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "0.4")
	t.Setenv("LLM_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 3*time.Second, cfg.Weather.Timeout)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.InDelta(t, 0.4, cfg.LLM.Temperature, 0.0001)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
}

func TestLoadLLMAPIKeyAlias(t *testing.T) {
	isolateEnv(t)
	t.Setenv("API_TOKEN", "shared-secret")
	t.Setenv("WEATHER_API_KEY", "vc-key")
	t.Setenv("LLM_API_KEY", "sk-alias")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-alias", cfg.LLM.APIKey.Unmask())
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "custom.yaml")
	yamlBody := `
http:
  address: ":7070"
auth:
  token: yaml-token
weather:
  apiKey: yaml-weather
  timeout: 4s
llm:
  apiKey: yaml-llm
  model: gpt-4o
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_MODEL", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, "yaml-token", cfg.Auth.Token.Unmask())
	require.Equal(t, 4*time.Second, cfg.Weather.Timeout)
	require.Equal(t, "from-env", cfg.LLM.Model)
	require.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
}

func TestLoadReadsDotenv(t *testing.T) {
	dir := isolateEnv(t)
	dotenv := "API_TOKEN=dotenv-token\nWEATHER_API_KEY=dotenv-weather\nOPENAI_API_KEY=dotenv-llm\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	t.Setenv("WEATHER_API_KEY", "process-wins")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dotenv-token", cfg.Auth.Token.Unmask())
	require.Equal(t, "process-wins", cfg.Weather.APIKey.Unmask())
	require.Equal(t, "dotenv-llm", cfg.LLM.APIKey.Unmask())
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.Token = "t"
	cfg.Weather.APIKey = "w"
	cfg.LLM.APIKey = "l"
	cfg.LLM.BaseURL = "not a url"

	require.EqualError(t, cfg.Validate(), "llm.baseUrl must be a valid URL (set LLM_BASE_URL)")
}

func TestSecretStringRedacts(t *testing.T) {
	secret := SecretString("sk-live")
	require.Equal(t, redactedPlaceholder, secret.String())
	require.Equal(t, redactedPlaceholder, fmt.Sprintf("%v", secret))

	payload, err := json.Marshal(struct {
		Key SecretString `json:"key"`
	}{Key: secret})
	require.NoError(t, err)
	require.JSONEq(t, `{"key":"***REDACTED***"}`, string(payload))
	require.Equal(t, "sk-live", secret.Unmask())
}
