package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Backend selects the reasoning provider.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendGroq   Backend = "groq"
	BackendMock   Backend = "mock"
)

type Config struct {
	Port string `yaml:"port"`

	// LLM backend. If Backend is empty, it is resolved from the available
	// API keys: OpenAI first, Groq as fallback.
	Backend      Backend `yaml:"backend"`
	OpenAIAPIKey string  `yaml:"openai_api_key"`
	GroqAPIKey   string  `yaml:"groq_api_key"`
	ModelName    string  `yaml:"model_name"`

	// Temperature for generation. Zero keeps interviews reproducible.
	Temperature float32 `yaml:"temperature"`

	StorageBackend string `yaml:"storage_backend"` // "memory" or "badger"
	BadgerPath     string `yaml:"badger_path"`

	// TranscriptDir is where terminated-session transcripts are written.
	TranscriptDir string `yaml:"transcript_dir"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloatEnv(key string, def float32) float32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

// Load builds the config from an optional YAML file overridden by env vars.
// path may be empty; INTERVIEW_CONFIG overrides it.
func Load(path string) (*Config, error) {
	// ModelName stays empty by default; each provider picks its own model.
	cfg := &Config{
		Port:           "8080",
		StorageBackend: "memory",
		BadgerPath:     "data/interview",
		TranscriptDir:  ".",
	}

	if p := getEnv("INTERVIEW_CONFIG", path); p != "" {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", p, err)
		}
	}

	cfg.Port = getEnv("INTERVIEW_PORT", cfg.Port)
	cfg.Backend = Backend(getEnv("INTERVIEW_BACKEND", string(cfg.Backend)))
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.GroqAPIKey = getEnv("GROQ_API_KEY", cfg.GroqAPIKey)
	cfg.ModelName = getEnv("INTERVIEW_MODEL_NAME", cfg.ModelName)
	cfg.Temperature = getFloatEnv("INTERVIEW_TEMPERATURE", cfg.Temperature)
	cfg.StorageBackend = getEnv("INTERVIEW_STORAGE_BACKEND", cfg.StorageBackend)
	cfg.BadgerPath = getEnv("INTERVIEW_BADGER_PATH", cfg.BadgerPath)
	cfg.TranscriptDir = getEnv("INTERVIEW_TRANSCRIPT_DIR", cfg.TranscriptDir)

	return cfg, nil
}

// ResolveBackend picks the provider by key availability when none is set
// explicitly: OpenAI first, Groq as fallback.
func (c *Config) ResolveBackend() (Backend, error) {
	if c.Backend != "" {
		return c.Backend, nil
	}
	if c.OpenAIAPIKey != "" {
		return BackendOpenAI, nil
	}
	if c.GroqAPIKey != "" {
		return BackendGroq, nil
	}
	return "", fmt.Errorf("no API key configured: set OPENAI_API_KEY or GROQ_API_KEY")
}
