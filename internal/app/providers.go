package app

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voicemail-whisper/internal/api/server"
	v1routes "voicemail-whisper/internal/api/v1/routes"
	"voicemail-whisper/internal/api/v1/services"
	"voicemail-whisper/internal/app/api"
	"voicemail-whisper/internal/app/api/gemini"
	"voicemail-whisper/internal/app/api/openai"
	"voicemail-whisper/internal/app/api/openai/chat"
	"voicemail-whisper/internal/app/api/openai/whisper"
	"voicemail-whisper/internal/app/api/whisper_cpp"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/pipeline"
	"voicemail-whisper/internal/app/repository"
	"voicemail-whisper/internal/app/repository/pg"
	"voicemail-whisper/internal/app/repository/sqlite"
	"voicemail-whisper/internal/app/status"
	"voicemail-whisper/internal/app/storage"
	"voicemail-whisper/internal/config"
	"voicemail-whisper/internal/logging"
)

// Application is everything the serve and submit commands run.
type Application struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        *repository.SQLClipStore
	Audio        storage.AudioStore
	Orchestrator *pipeline.Orchestrator
	Status       *status.Service
	Server       *server.Server
}

// Reader is the read-only subset used by the status and export commands.
type Reader struct {
	Config *config.Config
	Logger *zap.Logger
	Status *status.Service
}

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// OpenStore opens the clip store for a driver. The handle lives until the
// returned store is closed.
func OpenStore(ctx context.Context, driver, dsn string) (*repository.SQLClipStore, error) {
	switch driver {
	case repository.DriverSQLite:
		return sqlite.Open(ctx, dsn)
	case repository.DriverPostgres:
		return pg.Open(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func provideStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.SQLClipStore, func(), error) {
	store, err := OpenStore(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("clip store opened", zap.String("driver", cfg.Database.Driver))
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close clip store", zap.Error(err))
		}
	}, nil
}

func provideAudioStore(ctx context.Context, cfg *config.Config) (storage.AudioStore, error) {
	if cfg.Storage.Backend == config.StorageMinio {
		m := cfg.Storage.Minio
		return storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
			UseSSL:    m.UseSSL,
			Prefix:    m.Prefix,
			CacheDir:  cfg.Storage.AudioDir,
		})
	}
	return storage.NewLocalStore(cfg.Storage.AudioDir)
}

func provideTranscriber(cfg *config.Config, logger *zap.Logger) (api.Transcriber, error) {
	tc := cfg.Transcription

	switch tc.Provider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		return whisper.NewRemoteTranscriber(client, tc.OpenAIModel, tc.Language), nil
	case config.ProviderWhisperCpp:
		if _, err := os.Stat(tc.BinaryPath); err != nil {
			return nil, fmt.Errorf("whisper.cpp binary: %w", err)
		}
		models := make(map[model.Tier]string)
		if tc.Models.Fast != "" {
			models[model.TierFast] = tc.Models.Fast
		}
		if tc.Models.Accurate != "" {
			models[model.TierAccurate] = tc.Models.Accurate
		}
		return whisper_cpp.NewLocalTranscriber(whisper_cpp.Config{
			BinaryPath: tc.BinaryPath,
			Models:     models,
			Language:   tc.Language,
			Prompt:     tc.Prompt,
			Threads:    tc.Threads,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", tc.Provider)
	}
}

func provideExtractor(ctx context.Context, cfg *config.Config) (api.Extractor, error) {
	ec := cfg.Extraction

	switch ec.Provider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		return chat.NewExtractor(client, ec.Model, ec.MaxTokens), nil
	case config.ProviderGemini:
		return gemini.NewExtractor(ctx, gemini.Options{
			APIKey:    cfg.Gemini.APIKey,
			Model:     ec.Model,
			MaxTokens: ec.MaxTokens,
			BaseURL:   cfg.Gemini.BaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown extraction provider %q", ec.Provider)
	}
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *pipeline.Metrics {
	return pipeline.NewMetrics(reg)
}

// providePublisher publishes status events to redis when an address is configured.
func providePublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (pipeline.Publisher, func(), error) {
	ec := cfg.Events
	if ec.RedisAddr == "" {
		return pipeline.NopPublisher{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     ec.RedisAddr,
		Password: ec.Password,
		DB:       ec.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", ec.RedisAddr, err)
	}

	publisher := pipeline.NewRedisPublisher(client, ec.Channel, "vmw:clip:")
	logger.Info("publishing clip events", zap.String("redis", ec.RedisAddr), zap.String("channel", ec.Channel))
	return publisher, func() { _ = publisher.Close() }, nil
}

func provideOrchestrator(
	cfg *config.Config,
	store *repository.SQLClipStore,
	transcriber api.Transcriber,
	extractor api.Extractor,
	audioStore storage.AudioStore,
	publisher pipeline.Publisher,
	metrics *pipeline.Metrics,
	logger *zap.Logger,
) (*pipeline.Orchestrator, error) {
	return pipeline.NewOrchestrator(store, transcriber, extractor, audioStore,
		pipeline.Config{
			MaxConcurrent: cfg.Pipeline.MaxConcurrent,
			StageTimeout:  cfg.Pipeline.StageTimeout,
		},
		pipeline.WithPublisher(publisher),
		pipeline.WithMetrics(metrics),
		pipeline.WithLogger(logger),
	)
}

func provideStatusService(cfg *config.Config, store *repository.SQLClipStore, logger *zap.Logger) *status.Service {
	return status.NewService(store, status.NewProjector(cfg.Extraction.CostPer1KTokens), logger)
}

func provideServiceContainer(orchestrator *pipeline.Orchestrator, statusService *status.Service, audioStore storage.AudioStore, logger *zap.Logger) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		ClipService:  services.NewClipService(orchestrator, statusService, audioStore, logger),
		AudioService: services.NewAudioService(audioStore),
	}
}

func provideServer(cfg *config.Config, container *v1routes.ServiceContainer, reg *prometheus.Registry, logger *zap.Logger) *server.Server {
	return server.NewServer(server.Config{
		Address:      cfg.Server.Address(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Environment:  cfg.Server.Environment,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}, container, reg, logger)
}
