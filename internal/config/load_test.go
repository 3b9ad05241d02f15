package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv applies the given environment variables for the duration of the
// test. An empty value unsets the variable.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// requiredEnv is the minimum environment for Load to succeed.
func requiredEnv() map[string]string {
	return map[string]string{
		"PROVET_LLM_API_KEY": "test-api-key",
	}
}

func TestLoadDefaults(t *testing.T) {
	setupEnv(t, requiredEnv())

	cfg, err := Load()
	require.NoError(t, err, "Load() should succeed with only the API key set")
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.Temperature)
	assert.Equal(t, 800, cfg.LLM.MaxTokens)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 2, cfg.LLM.RetryBaseDelay)
	assert.Equal(t, "solution", cfg.Output.Dir)
}

func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"PROVET_SERVER_PORT":            "9090",
		"PROVET_SERVER_LOG_LEVEL":       "debug",
		"PROVET_LLM_PROVIDER":           "gemini",
		"PROVET_LLM_API_KEY":            "test-api-key",
		"PROVET_LLM_MODEL":              "gemini-2.0-flash",
		"PROVET_LLM_TEMPERATURE":        "0.2",
		"PROVET_LLM_MAX_TOKENS":         "400",
		"PROVET_LLM_CUSTOM_INSTRUCTION": "Mention the clinic hotline.",
		"PROVET_LLM_MAX_RETRIES":        "5",
		"PROVET_OUTPUT_DIR":             "out",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-api-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
	assert.Equal(t, 400, cfg.LLM.MaxTokens)
	assert.Equal(t, "Mention the clinic hotline.", cfg.LLM.CustomInstruction)
	assert.Equal(t, 5, cfg.LLM.MaxRetries)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "missing API key",
			envVars: map[string]string{"PROVET_LLM_API_KEY": ""},
		},
		{
			name: "port out of range",
			envVars: map[string]string{
				"PROVET_LLM_API_KEY": "test-api-key",
				"PROVET_SERVER_PORT": "999999",
			},
		},
		{
			name: "unknown log level",
			envVars: map[string]string{
				"PROVET_LLM_API_KEY":      "test-api-key",
				"PROVET_SERVER_LOG_LEVEL": "verbose",
			},
		},
		{
			name: "unknown provider",
			envVars: map[string]string{
				"PROVET_LLM_API_KEY":  "test-api-key",
				"PROVET_LLM_PROVIDER": "anthropic",
			},
		},
		{
			name: "temperature out of range",
			envVars: map[string]string{
				"PROVET_LLM_API_KEY":     "test-api-key",
				"PROVET_LLM_TEMPERATURE": "3.5",
			},
		},
		{
			name: "base URL not a URL",
			envVars: map[string]string{
				"PROVET_LLM_API_KEY":  "test-api-key",
				"PROVET_LLM_BASE_URL": "not a url",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadOptionalSettings(t *testing.T) {
	env := requiredEnv()
	env["PROVET_LLM_BASE_URL"] = "https://gateway.internal/v1"
	env["PROVET_LLM_PROMPT_DIR"] = "/etc/provet/prompts"
	setupEnv(t, env)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.internal/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "/etc/provet/prompts", cfg.LLM.PromptDir)
}
