package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
// It is built once at startup and never mutated afterwards.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Weather WeatherConfig `yaml:"weather"`
	LLM     LLMConfig     `yaml:"llm"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address" validate:"required"`
	ReadTimeout    time.Duration `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout   time.Duration `yaml:"writeTimeout" validate:"gte=0"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// AuthConfig holds the shared secret callers must present.
type AuthConfig struct {
	Token SecretString `yaml:"token" validate:"required"`
}

// WeatherConfig points at the Visual Crossing timeline API.
type WeatherConfig struct {
	APIKey  SecretString  `yaml:"apiKey" validate:"required"`
	BaseURL string        `yaml:"baseUrl" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      SecretString  `yaml:"apiKey" validate:"required"`
	BaseURL     string        `yaml:"baseUrl" validate:"required,url"`
	Model       string        `yaml:"model" validate:"required"`
	Temperature float32       `yaml:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
}

// envNames points validation failures at the variable an operator should set.
var envNames = map[string]string{
	"http.address":    "HTTP_ADDRESS",
	"auth.token":      "API_TOKEN",
	"weather.apiKey":  "WEATHER_API_KEY",
	"weather.baseUrl": "WEATHER_BASE_URL",
	"weather.timeout": "WEATHER_TIMEOUT",
	"llm.apiKey":      "OPENAI_API_KEY",
	"llm.baseUrl":     "LLM_BASE_URL",
	"llm.model":       "LLM_MODEL",
	"llm.temperature": "LLM_TEMPERATURE",
	"llm.timeout":     "LLM_TIMEOUT",
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotenv never overrides variables that are already set in the process.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_READ_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ReadTimeout = parsed
		}
	}
	if v := os.Getenv("HTTP_WRITE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.WriteTimeout = parsed
		}
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("API_TOKEN"); v != "" {
		cfg.Auth.Token = SecretString(v)
	}
	if v := os.Getenv("WEATHER_API_KEY"); v != "" {
		cfg.Weather.APIKey = SecretString(v)
	}
	if v := os.Getenv("WEATHER_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = SecretString(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = SecretString(v)
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := strings.TrimSpace(p); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		Weather: WeatherConfig{
			BaseURL: "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline",
			Timeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-3.5-turbo",
			Timeout: 60 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return describeFieldError(fieldErrs[0])
		}
		return err
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	// Namespace is "Config.weather.apiKey"; drop the root type name.
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	var msg string
	switch fe.Tag() {
	case "required":
		msg = path + " cannot be empty"
	case "url":
		msg = path + " must be a valid URL"
	case "gt":
		msg = path + " must be positive"
	default:
		msg = fmt.Sprintf("%s failed %s=%s", path, fe.Tag(), fe.Param())
	}
	if env, ok := envNames[path]; ok {
		msg += " (set " + env + ")"
	}
	return errors.New(msg)
}
