//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"voicemail-whisper/internal/config"
)

var readerSet = wire.NewSet(provideLogger, provideStore, provideStatusService)

var pipelineSet = wire.NewSet(
	provideAudioStore,
	provideTranscriber,
	provideExtractor,
	provideRegistry,
	provideMetrics,
	providePublisher,
	provideOrchestrator,
)

// InitializeApplication wires the store, adapters, pipeline and HTTP server.
func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, func(), error) {
	wire.Build(
		readerSet,
		pipelineSet,
		provideServiceContainer,
		provideServer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}

// InitializeReader wires only what status queries need.
func InitializeReader(ctx context.Context, cfg *config.Config) (*Reader, func(), error) {
	wire.Build(readerSet, wire.Struct(new(Reader), "*"))
	return nil, nil, nil
}
