// Package config loads GuruAI settings from defaults, an optional YAML
// file, .env and GURU_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/guruai/internal/camera"
	"github.com/abhisek/guruai/internal/llm"
	"github.com/abhisek/guruai/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. GURU_LLM_PROVIDER.
const EnvPrefix = "GURU"

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config
	Log    logger.Config
	DBPath string // empty means store.DefaultDBPath
	Server ServerConfig
	Camera camera.Config
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowOrigins    []string
	MaxUploadBytes  int64
}

// Load reads .env (if present) and then the configuration. path selects
// an explicit config file; otherwise guruai.yaml is looked up in the
// working directory and $XDG_CONFIG_HOME/guruai.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New(), path, os.Getenv)
}

func load(v *viper.Viper, path string, getenv func(string) string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("guruai")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := configDir(getenv); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		LLM:    llmConfig(v, getenv),
		DBPath: v.GetString("db.path"),
		Log: logger.Config{
			Level:      v.GetString("log.level"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			Console:    v.GetBool("log.console"),
		},
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			AllowOrigins:    v.GetStringSlice("server.allow_origins"),
			MaxUploadBytes:  v.GetInt64("server.max_upload_bytes"),
		},
		Camera: camera.Config{
			Driver:      v.GetString("camera.driver"),
			Device:      v.GetString("camera.device"),
			InputFormat: v.GetString("camera.input_format"),
			FFmpegPath:  v.GetString("camera.ffmpeg_path"),
			File:        v.GetString("camera.file"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	l := llm.DefaultConfig()
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.ollama.server_url", l.Ollama.ServerURL)
	v.SetDefault("llm.ollama.model", l.Ollama.Model)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.timeout", l.Timeout)

	for _, p := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
	}
	v.SetDefault("llm.provider", "")

	lg := logger.DefaultConfig()
	v.SetDefault("log.level", lg.Level)
	v.SetDefault("log.file", lg.File)
	v.SetDefault("log.max_size_mb", lg.MaxSizeMB)
	v.SetDefault("log.max_backups", lg.MaxBackups)
	v.SetDefault("log.console", false)

	v.SetDefault("db.path", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", int64(8<<20))

	c := camera.DefaultConfig()
	v.SetDefault("camera.driver", c.Driver)
	v.SetDefault("camera.device", c.Device)
	v.SetDefault("camera.input_format", c.InputFormat)
	v.SetDefault("camera.ffmpeg_path", c.FFmpegPath)
	v.SetDefault("camera.file", "")
}

// llmConfig resolves the provider. An explicit llm.provider wins;
// otherwise the standard key variables pick one, falling back to gemini.
// A provider left without a configured key takes it from its standard
// variable.
func llmConfig(v *viper.Viper, getenv func(string) string) llm.Config {
	cfg := llm.Config{
		Provider: v.GetString("llm.provider"),
		Gemini: llm.GeminiConfig{
			APIKey: v.GetString("llm.gemini.api_key"),
			Model:  v.GetString("llm.gemini.model"),
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  v.GetString("llm.openai.api_key"),
			Model:   v.GetString("llm.openai.model"),
			BaseURL: v.GetString("llm.openai.base_url"),
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: v.GetString("llm.anthropic.api_key"),
			Model:  v.GetString("llm.anthropic.model"),
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  v.GetString("llm.openrouter.api_key"),
			Model:   v.GetString("llm.openrouter.model"),
			BaseURL: v.GetString("llm.openrouter.base_url"),
		},
		Ollama: llm.OllamaConfig{
			ServerURL: v.GetString("llm.ollama.server_url"),
			Model:     v.GetString("llm.ollama.model"),
		},
		Retry: llm.RetryConfig{
			MaxAttempts: v.GetInt("llm.retry.max_attempts"),
			InitialWait: v.GetDuration("llm.retry.initial_wait"),
			MaxWait:     v.GetDuration("llm.retry.max_wait"),
			Multiplier:  v.GetFloat64("llm.retry.multiplier"),
		},
		Timeout: v.GetDuration("llm.timeout"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "gemini"
		if discovered, ok := llm.DiscoverConfig(getenv); ok {
			cfg.Provider = discovered.Provider
		}
	}
	if cfg.APIKey() == "" {
		cfg.SetAPIKey(llm.StandardKey(cfg.Provider, getenv))
	}
	return cfg
}

func configDir(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "guruai")
}
