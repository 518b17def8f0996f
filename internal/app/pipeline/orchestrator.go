package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"voicemail-whisper/internal/app/api"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/extraction"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/repository"
)

const (
	DefaultMaxConcurrent = 4
	DefaultStageTimeout  = 5 * time.Minute
)

// AudioLocator resolves a clip's audio reference to a readable local path.
type AudioLocator interface {
	Path(ctx context.Context, ref string) (string, error)
}

// Config bounds the orchestrator's resource use.
type Config struct {
	MaxConcurrent int
	StageTimeout  time.Duration
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

func WithPublisher(p Publisher) Option {
	return func(o *Orchestrator) { o.events = p }
}

func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// Orchestrator drives clips through fast transcription, accurate transcription and
// extraction. Every step is chosen from the clip's persisted status, and each
// step's results are written together with the next status in one update.
type Orchestrator struct {
	store       repository.ClipDAO
	transcriber api.Transcriber
	extractor   api.Extractor
	audio       AudioLocator
	events      Publisher
	metrics     *Metrics
	logger      *zap.Logger

	stageTimeout time.Duration
	twoTier      bool
	singleTier   model.Tier

	sem chan struct{}
	wg  sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inFlight map[int64]struct{}
	closed   bool
}

// NewOrchestrator fails when the transcriber offers no tier at all. With a single
// tier, clips skip the fast pass and the one transcript fills the accurate fields.
func NewOrchestrator(store repository.ClipDAO, transcriber api.Transcriber, extractor api.Extractor, audio AudioLocator, cfg Config, opts ...Option) (*Orchestrator, error) {
	singleTier, ok := api.SingleTier(transcriber)
	if !ok {
		return nil, fmt.Errorf("transcriber %s: %w", transcriber.Name(), apperrors.ErrNoTier)
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = DefaultStageTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &Orchestrator{
		store:        store,
		transcriber:  transcriber,
		extractor:    extractor,
		audio:        audio,
		events:       NopPublisher{},
		logger:       zap.NewNop(),
		stageTimeout: cfg.StageTimeout,
		twoTier:      api.IsTwoTier(transcriber),
		singleTier:   singleTier,
		sem:          make(chan struct{}, cfg.MaxConcurrent),
		ctx:          ctx,
		cancel:       cancel,
		inFlight:     make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(nil)
	}
	o.logger = o.logger.Named("pipeline")

	o.logger.Info("pipeline ready",
		zap.String("transcriber", transcriber.Name()),
		zap.String("extractor", extractor.Name()),
		zap.Bool("two_tier", o.twoTier),
		zap.Int("max_concurrent", cfg.MaxConcurrent),
		zap.Duration("stage_timeout", cfg.StageTimeout))
	return o, nil
}

// Submit records a new clip and schedules it. It returns as soon as the clip is
// stored; processing continues in the background.
func (o *Orchestrator) Submit(ctx context.Context, audioRef string) (int64, error) {
	id, err := o.store.Create(ctx, audioRef)
	if err != nil {
		return 0, err
	}
	o.metrics.ClipsSubmitted.Inc()
	o.logger.Info("clip submitted", zap.Int64("clip_id", id), zap.String("audio", audioRef))

	o.publish(Event{ClipID: id, Status: model.StatusWaitingFast})
	o.schedule(id, model.StatusWaitingFast)
	return id, nil
}

// Resume schedules every clip left in a waiting status, e.g. by a previous process
// that stopped mid-pipeline. It returns how many clips were scheduled.
func (o *Orchestrator) Resume(ctx context.Context) (int, error) {
	clips, err := o.store.ListByStatus(ctx, model.PendingStatuses...)
	if err != nil {
		return 0, err
	}
	for _, clip := range clips {
		o.logger.Info("resuming clip", zap.Int64("clip_id", clip.ID), zap.String("status", string(clip.Status)))
		o.schedule(clip.ID, clip.Status)
	}
	return len(clips), nil
}

// Wait blocks until no clip is being processed.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Shutdown stops accepting work and waits for running clips. When ctx ends first,
// running stages are cancelled and their clips keep their status for Resume.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		o.cancel()
		return nil
	case <-ctx.Done():
		o.cancel()
		<-done
		return ctx.Err()
	}
}

// schedule starts the pipeline for a clip last seen in status known.
func (o *Orchestrator) schedule(id int64, known model.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		o.logger.Warn("orchestrator closed, clip left for resume", zap.Int64("clip_id", id))
		return
	}
	if _, running := o.inFlight[id]; running {
		return
	}
	o.inFlight[id] = struct{}{}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer func() {
			o.mu.Lock()
			delete(o.inFlight, id)
			o.mu.Unlock()
		}()
		o.run(o.ctx, id, known)
	}()
}

func (o *Orchestrator) run(ctx context.Context, id int64, known model.Status) {
	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-o.sem }()

	o.metrics.InFlight.Inc()
	defer o.metrics.InFlight.Dec()

	logger := o.logger.With(zap.Int64("clip_id", id))

	for {
		clip, err := o.store.Get(ctx, id)
		if err != nil {
			o.loadFailed(ctx, logger, id, known, err)
			return
		}
		known = clip.Status
		if clip.Status.IsTerminal() {
			return
		}

		stage, ok := clip.Status.Stage()
		if !ok {
			logger.Error("clip has unknown status", zap.String("status", string(clip.Status)))
			return
		}

		start := time.Now()
		update, err := o.runStage(ctx, clip, stage)
		elapsed := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				logger.Warn("stage interrupted by shutdown", zap.String("stage", string(stage)))
				return
			}
			o.metrics.StageDuration.WithLabelValues(string(stage), "failed").Observe(elapsed.Seconds())
			o.fail(ctx, logger, id, stage, err)
			return
		}

		if err := o.store.Update(ctx, id, *update); err != nil {
			if apperrors.IsNotFound(err) {
				logger.Error("clip vanished while processing", zap.String("stage", string(stage)), zap.Error(err))
				return
			}
			o.fail(ctx, logger, id, stage, err)
			return
		}

		known = *update.Status

		o.metrics.StageDuration.WithLabelValues(string(stage), "ok").Observe(elapsed.Seconds())
		logger.Info("stage completed",
			zap.String("stage", string(stage)),
			zap.String("status", string(*update.Status)),
			zap.Duration("elapsed", elapsed))

		o.publish(Event{ClipID: id, Status: *update.Status, Stage: stage})
		if update.Status.IsTerminal() {
			o.metrics.ClipsFinished.WithLabelValues(string(*update.Status)).Inc()
		}
	}
}

// runStage performs the adapter call for stage under the stage timeout and returns
// the update that records its result.
func (o *Orchestrator) runStage(ctx context.Context, clip *model.Clip, stage model.Stage) (*repository.ClipUpdate, error) {
	stageCtx, cancel := context.WithTimeout(ctx, o.stageTimeout)
	defer cancel()

	switch stage {
	case model.StageFastTranscription:
		if !o.twoTier {
			return o.transcribeAccurate(stageCtx, clip, stage, o.singleTier)
		}
		t, err := o.transcribe(stageCtx, clip, stage, model.TierFast)
		if err != nil {
			return nil, err
		}
		next := o.nextStatus(clip.Status)
		return &repository.ClipUpdate{
			Status:                &next,
			FastTranscript:        &t.Text,
			FastTranscriptSeconds: &t.Seconds,
		}, nil

	case model.StageAccurateTranscription:
		tier := model.TierAccurate
		if !o.twoTier {
			tier = o.singleTier
		}
		return o.transcribeAccurate(stageCtx, clip, stage, tier)

	case model.StageExtraction:
		return o.extract(stageCtx, clip)
	}
	return nil, fmt.Errorf("no work defined for stage %s", stage)
}

func (o *Orchestrator) transcribeAccurate(ctx context.Context, clip *model.Clip, stage model.Stage, tier model.Tier) (*repository.ClipUpdate, error) {
	t, err := o.transcribe(ctx, clip, stage, tier)
	if err != nil {
		return nil, err
	}
	next := o.nextStatus(clip.Status)
	return &repository.ClipUpdate{
		Status:                    &next,
		AccurateTranscript:        &t.Text,
		AccurateTranscriptSeconds: &t.Seconds,
	}, nil
}

func (o *Orchestrator) transcribe(ctx context.Context, clip *model.Clip, stage model.Stage, tier model.Tier) (*api.Transcript, error) {
	path, err := o.audio.Path(ctx, clip.AudioRef)
	if err != nil {
		return nil, adapterError(ctx, stage, "audio", err)
	}

	t, err := withDeadline(ctx, func(ctx context.Context) (*api.Transcript, error) {
		return o.transcriber.Transcribe(ctx, path, tier)
	})
	if err != nil {
		return nil, adapterError(ctx, stage, o.transcriber.Name(), err)
	}
	if t == nil {
		return nil, adapterError(ctx, stage, o.transcriber.Name(), apperrors.ErrEmptyResponse)
	}
	return t, nil
}

func (o *Orchestrator) extract(ctx context.Context, clip *model.Clip) (*repository.ClipUpdate, error) {
	if clip.AccurateTranscript == nil {
		return nil, fmt.Errorf("clip %d reached extraction without an accurate transcript", clip.ID)
	}

	transcript := *clip.AccurateTranscript
	result, err := withDeadline(ctx, func(ctx context.Context) (*api.Extraction, error) {
		return o.extractor.Extract(ctx, transcript)
	})
	if err != nil {
		return nil, adapterError(ctx, model.StageExtraction, o.extractor.Name(), err)
	}
	if result == nil {
		return nil, adapterError(ctx, model.StageExtraction, o.extractor.Name(), apperrors.ErrEmptyResponse)
	}

	provider := result.Provider
	if provider == "" {
		provider = o.extractor.Name()
	}
	raw, err := extraction.Envelope{
		AIResponse: result.Text,
		TokenCost:  result.TotalTokens,
		Provider:   provider,
	}.Encode()
	if err != nil {
		return nil, err
	}

	next := o.nextStatus(clip.Status)
	return &repository.ClipUpdate{Status: &next, ExtractionRaw: &raw}, nil
}

// nextStatus is the status a clip in current moves to once its stage succeeds.
// Single-tier runs skip waiting_accurate: the one transcript already fills it.
func (o *Orchestrator) nextStatus(current model.Status) model.Status {
	next := current.Next()
	if !o.twoTier && next == model.StatusWaitingAccurate {
		next = next.Next()
	}
	return next
}

// loadFailed handles a clip that could not be read back. A store error fails the
// stage the clip was waiting on; a missing clip or a shutdown only stops the run.
func (o *Orchestrator) loadFailed(ctx context.Context, logger *zap.Logger, id int64, known model.Status, err error) {
	if ctx.Err() != nil {
		logger.Warn("clip load interrupted by shutdown", zap.Error(err))
		return
	}
	if apperrors.IsNotFound(err) {
		logger.Error("clip vanished while processing", zap.Error(err))
		return
	}
	stage, ok := known.Stage()
	if !ok {
		logger.Error("failed to load clip", zap.String("status", string(known)), zap.Error(err))
		return
	}
	o.fail(ctx, logger, id, stage, err)
}

// fail records the failure on the clip. If that write fails too the clip keeps its
// waiting status and is retried by the next Resume.
func (o *Orchestrator) fail(ctx context.Context, logger *zap.Logger, id int64, stage model.Stage, cause error) {
	reason := cause.Error()
	failureCause := "error"
	if ae, ok := apperrors.AsAdapterError(cause); ok && ae.Timeout {
		failureCause = "timeout"
	} else if apperrors.IsStoreError(cause) {
		failureCause = "store"
	}
	o.metrics.StageFailures.WithLabelValues(string(stage), failureCause).Inc()

	logger.Error("stage failed",
		zap.String("stage", string(stage)),
		zap.String("cause", failureCause),
		zap.Error(cause))

	status := model.StatusFailed
	err := o.store.Update(ctx, id, repository.ClipUpdate{
		Status:        &status,
		FailedStage:   &stage,
		FailureReason: &reason,
	})
	if err != nil {
		logger.Error("failed to record clip failure", zap.Error(err))
		return
	}

	o.metrics.ClipsFinished.WithLabelValues(string(status)).Inc()
	o.publish(Event{ClipID: id, Status: status, Stage: stage, Reason: reason})
}

func (o *Orchestrator) publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(o.ctx, 2*time.Second)
	defer cancel()
	if err := o.events.Publish(ctx, e); err != nil {
		o.logger.Warn("failed to publish event", zap.Int64("clip_id", e.ClipID), zap.Error(err))
	}
}

// withDeadline returns when fn does or when ctx ends, whichever comes first.
func withDeadline[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// adapterError tags err with the stage and provider, marking a stage deadline as a timeout.
func adapterError(ctx context.Context, stage model.Stage, provider string, err error) error {
	timeout := stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded)
	return &apperrors.AdapterError{Stage: stage, Provider: provider, Timeout: timeout, Err: err}
}
