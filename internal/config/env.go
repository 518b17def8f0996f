package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads the first .env file found and returns its path. A missing file is not
// an error, the variables may be set system-wide.
func LoadEnv() (string, error) {
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}
	return "", nil
}

// applyEnv overlays environment variables onto cfg. Unset variables leave the
// current value alone.
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"VMW_HOST":                   &cfg.Server.Host,
		"VMW_ENVIRONMENT":            &cfg.Server.Environment,
		"VMW_DB_DRIVER":              &cfg.Database.Driver,
		"DATABASE_URL":               &cfg.Database.DSN,
		"VMW_STORAGE_BACKEND":        &cfg.Storage.Backend,
		"VMW_AUDIO_DIR":              &cfg.Storage.AudioDir,
		"MINIO_ENDPOINT":             &cfg.Storage.Minio.Endpoint,
		"MINIO_ACCESS_KEY":           &cfg.Storage.Minio.AccessKey,
		"MINIO_SECRET_KEY":           &cfg.Storage.Minio.SecretKey,
		"MINIO_BUCKET":               &cfg.Storage.Minio.Bucket,
		"VMW_TRANSCRIPTION_PROVIDER": &cfg.Transcription.Provider,
		"WHISPER_CPP_BINARY":         &cfg.Transcription.BinaryPath,
		"WHISPER_CPP_MODEL_FAST":     &cfg.Transcription.Models.Fast,
		"WHISPER_CPP_MODEL_ACCURATE": &cfg.Transcription.Models.Accurate,
		"VMW_LANGUAGE":               &cfg.Transcription.Language,
		"VMW_EXTRACTION_PROVIDER":    &cfg.Extraction.Provider,
		"VMW_EXTRACTION_MODEL":       &cfg.Extraction.Model,
		"OPENAI_API_KEY":             &cfg.OpenAI.APIKey,
		"OPENAI_BASE_URL":            &cfg.OpenAI.BaseURL,
		"GEMINI_API_KEY":             &cfg.Gemini.APIKey,
		"REDIS_ADDR":                 &cfg.Events.RedisAddr,
		"VMW_EVENTS_CHANNEL":         &cfg.Events.Channel,
		"VMW_LOG_LEVEL":              &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"VMW_PORT":                  &cfg.Server.Port,
		"VMW_EXTRACTION_MAX_TOKENS": &cfg.Extraction.MaxTokens,
		"VMW_MAX_CONCURRENT":        &cfg.Pipeline.MaxConcurrent,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"MINIO_USE_SSL":       &cfg.Storage.Minio.UseSSL,
		"VMW_LOG_DEVELOPMENT": &cfg.Log.Development,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("VMW_CORS_ORIGINS"); ok {
		cfg.Server.CORSOrigins = lo.FilterMap(strings.Split(v, ","), func(o string, _ int) (string, bool) {
			o = strings.TrimSpace(o)
			return o, o != ""
		})
	}
	if v, ok := lookup("VMW_STAGE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VMW_STAGE_TIMEOUT: %w", err)
		}
		cfg.Pipeline.StageTimeout = d
	}
	if v, ok := lookup("VMW_COST_PER_1K_TOKENS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("VMW_COST_PER_1K_TOKENS: %w", err)
		}
		cfg.Extraction.CostPer1KTokens = f
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
