package config

// Config holds all application configuration. It is loaded once at process
// start and treated as read-only for the process lifetime; pass it (or its
// sub-structs) explicitly into components rather than reading ambient
// state.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Output OutputConfig `mapstructure:"output" validate:"required"`
}

// ServerConfig contains the HTTP front end settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// LLMConfig contains all language-model integration settings.
type LLMConfig struct {
	// Provider selects the completion backend.
	Provider string `mapstructure:"provider" validate:"required,oneof=openai gemini"`

	// APIKey is the provider credential.
	APIKey string `mapstructure:"api_key" validate:"required"`

	// BaseURL optionally redirects the OpenAI provider to a compatible
	// gateway. Ignored by the Gemini provider.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// Model is the default model name; overridable per request.
	Model string `mapstructure:"model" validate:"required"`

	// Temperature is the default sampling temperature.
	Temperature float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxTokens is the default completion budget.
	MaxTokens int `mapstructure:"max_tokens" validate:"required,gt=0"`

	// CustomInstruction is appended to the default system instruction.
	CustomInstruction string `mapstructure:"custom_instruction"`

	// PromptDir optionally points at a directory holding an
	// instructions.txt override for the prompt's output-format block.
	PromptDir string `mapstructure:"prompt_dir"`

	// MaxRetries bounds retries for rate-limit and transient failures.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0"`

	// RetryBaseDelay is the first backoff delay in seconds.
	RetryBaseDelay int `mapstructure:"retry_base_delay" validate:"gte=0"`
}

// OutputConfig contains the result artifact settings used by the CLI.
type OutputConfig struct {
	// Dir is the directory discharge note artifacts are written to.
	Dir string `mapstructure:"dir" validate:"required"`
}
