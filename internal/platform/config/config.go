// Package config carga la configuración del servicio desde variables de entorno.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"pet-care-assistant"`

	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"LOG_FORMAT" envDefault:"text"`
	LogPrompts bool   `env:"LOG_PROMPTS" envDefault:"false"`

	// Opcional: si viene, el registro de mascotas usa Postgres. Si no, in-memory.
	DBDSN string `env:"DB_DSN"`

	ModelProvider string `env:"MODEL_PROVIDER" envDefault:"gemini"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`

	// Timeout por llamada al modelo (stage 1 y stage 2 por separado).
	ModelCallTimeout time.Duration `env:"MODEL_CALL_TIMEOUT" envDefault:"60s"`
	MaxImageBytes    int64         `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`

	VariantsFile   string `env:"VARIANTS_FILE"`
	DefaultVariant string `env:"DEFAULT_VARIANT" envDefault:"care-plan"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"150s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
}

// Load parsea env y valida.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ModelProvider = strings.ToLower(strings.TrimSpace(cfg.ModelProvider))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate exige la API key del proveedor elegido; el stub no necesita nada.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return errors.New("GEMINI_API_KEY is required when MODEL_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return errors.New("OPENAI_API_KEY is required when MODEL_PROVIDER=openai")
		}
	case ProviderStub:
	default:
		return fmt.Errorf("unknown MODEL_PROVIDER %q (want gemini, openai or stub)", c.ModelProvider)
	}

	if c.ModelCallTimeout <= 0 {
		return errors.New("MODEL_CALL_TIMEOUT must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return errors.New("MAX_IMAGE_BYTES must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
