package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in the transcription and extraction sections.
const (
	ProviderWhisperCpp = "whisper_cpp"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"

	StorageLocal = "local"
	StorageMinio = "minio"
)

// Config is the full service configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Storage       StorageConfig       `yaml:"storage"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Extraction    ExtractionConfig    `yaml:"extraction"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Events        EventsConfig        `yaml:"events"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	Environment     string        `yaml:"environment" validate:"oneof=development production test"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CORSOrigins lists browser origins allowed to call the API; empty allows any.
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,url|eq=*"`
}

// Address returns the listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite3 postgres"`
	DSN    string `yaml:"dsn" validate:"required"`
}

type StorageConfig struct {
	Backend  string      `yaml:"backend" validate:"oneof=local minio"`
	AudioDir string      `yaml:"audio_dir" validate:"required"`
	Minio    MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
}

// WhisperModels maps each tier to a ggml model file. Leaving one empty runs the
// pipeline single-tier.
type WhisperModels struct {
	Fast     string `yaml:"fast"`
	Accurate string `yaml:"accurate"`
}

type TranscriptionConfig struct {
	Provider    string        `yaml:"provider" validate:"oneof=whisper_cpp openai"`
	BinaryPath  string        `yaml:"binary_path"`
	Models      WhisperModels `yaml:"models"`
	Language    string        `yaml:"language"`
	Prompt      string        `yaml:"prompt"`
	Threads     int           `yaml:"threads" validate:"min=0"`
	OpenAIModel string        `yaml:"openai_model"`
}

type ExtractionConfig struct {
	Provider        string  `yaml:"provider" validate:"oneof=openai gemini"`
	Model           string  `yaml:"model"`
	MaxTokens       int     `yaml:"max_tokens" validate:"min=1"`
	CostPer1KTokens float64 `yaml:"cost_per_1k_tokens" validate:"gt=0"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type PipelineConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	StageTimeout  time.Duration `yaml:"stage_timeout"`
}

// EventsConfig enables redis status events when RedisAddr is set.
type EventsConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db" validate:"min=0"`
	Channel   string `yaml:"channel"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultHTTPPort,
			Environment:     DefaultEnvironment,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Database: DatabaseConfig{
			Driver: DefaultDatabaseDriver,
			DSN:    DefaultDatabaseDSN,
		},
		Storage: StorageConfig{
			Backend:  DefaultStorageBackend,
			AudioDir: DefaultAudioDir,
			Minio:    MinioConfig{Bucket: DefaultMinioBucket},
		},
		Transcription: TranscriptionConfig{
			Provider:    DefaultTranscriptionProvider,
			Language:    DefaultWhisperLanguage,
			OpenAIModel: DefaultOpenAIWhisperModel,
		},
		Extraction: ExtractionConfig{
			Provider:        DefaultExtractionProvider,
			MaxTokens:       DefaultMaxTokens,
			CostPer1KTokens: DefaultCostPer1KTokens,
		},
		Pipeline: PipelineConfig{
			MaxConcurrent: DefaultMaxConcurrent,
			StageTimeout:  DefaultStageTimeout,
		},
		Events: EventsConfig{Channel: DefaultEventsChannel},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path and
// the environment, in that order, then validates it.
func Load(path string) (*Config, error) {
	return load(path, (*Config).Validate)
}

// LoadForQuery is Load for commands that only read the clip store; provider
// settings and API keys are not checked.
func LoadForQuery(path string) (*Config, error) {
	return load(path, (*Config).validateStore)
}

func load(path string, validate func(*Config) error) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	cfg.fillModelDefaults()

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillModelDefaults() {
	if c.Extraction.Model != "" {
		return
	}
	switch c.Extraction.Provider {
	case ProviderGemini:
		c.Extraction.Model = DefaultGeminiModel
	default:
		c.Extraction.Model = DefaultOpenAIChatModel
	}
}

// Validate checks struct tags and the cross-field rules between sections.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}

	if err := ValidateConcurrency(c.Pipeline.MaxConcurrent, "pipeline"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.Pipeline.StageTimeout, "stage"); err != nil {
		return err
	}

	switch c.Transcription.Provider {
	case ProviderWhisperCpp:
		if c.Transcription.BinaryPath == "" {
			return fmt.Errorf("transcription.binary_path is required for whisper_cpp")
		}
		if c.Transcription.Models.Fast == "" && c.Transcription.Models.Accurate == "" {
			return fmt.Errorf("transcription.models needs a fast or accurate model")
		}
	case ProviderOpenAI:
		if err := c.validateOpenAIKey(); err != nil {
			return err
		}
	}

	switch c.Extraction.Provider {
	case ProviderOpenAI:
		if err := c.validateOpenAIKey(); err != nil {
			return err
		}
	case ProviderGemini:
		if err := ValidateAPIKey(c.Gemini.APIKey, "Gemini"); err != nil {
			return err
		}
	}

	if c.Storage.Backend == StorageMinio {
		if c.Storage.Minio.Endpoint == "" || c.Storage.Minio.Bucket == "" {
			return fmt.Errorf("storage.minio needs endpoint and bucket")
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	if err := validateStruct(c.Database); err != nil {
		return err
	}
	return validateStruct(c.Log)
}

func validateStruct(s interface{}) error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// validateOpenAIKey checks the key format only against the hosted API; compatible
// servers behind base_url use their own keys.
func (c *Config) validateOpenAIKey() error {
	if c.OpenAI.BaseURL != "" {
		if err := ValidateURL(c.OpenAI.BaseURL, "openai.base_url"); err != nil {
			return err
		}
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required")
		}
		return nil
	}
	return ValidateAPIKey(c.OpenAI.APIKey, "OpenAI")
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
