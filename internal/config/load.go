package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the application's environment variables, e.g.
// PROVET_LLM_API_KEY maps to the llm.api_key setting.
const envPrefix = "PROVET"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values, and both override the built-in defaults.
// Returns a validated Config or an error describing what is missing or
// out of range.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; env vars and defaults carry the load.
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("llm.retry_base_delay", 2)

	v.SetDefault("output.dir", "solution")
}

// bindEnvKeys registers the keys that have no default so AutomaticEnv can
// see them; viper only consults the environment for keys it already knows
// about.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"llm.api_key",
		"llm.base_url",
		"llm.custom_instruction",
		"llm.prompt_dir",
	} {
		// BindEnv only errors on an empty key.
		_ = v.BindEnv(key)
	}
}
