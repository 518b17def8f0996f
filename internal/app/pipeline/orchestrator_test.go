package pipeline

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemail-whisper/internal/app/api"
	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/extraction"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/repository"
	"voicemail-whisper/internal/app/testutil"
)

type dirLocator string

func (d dirLocator) Path(_ context.Context, ref string) (string, error) {
	return filepath.Join(string(d), ref), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) statuses(id int64) []model.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Status
	for _, e := range p.events {
		if e.ClipID == id {
			out = append(out, e.Status)
		}
	}
	return out
}

type harness struct {
	store       *repository.SQLClipStore
	transcriber *testutil.ScriptedTranscriber
	extractor   *testutil.ScriptedExtractor
	events      *recordingPublisher
	registry    *prometheus.Registry
	audioDir    string
}

func newHarness(t *testing.T, tiers ...model.Tier) *harness {
	t.Helper()
	return &harness{
		store:       testutil.SetupTestStore(t),
		transcriber: testutil.NewScriptedTranscriber(tiers...),
		extractor:   testutil.NewScriptedExtractor(testutil.ZacharyReply, 300),
		events:      &recordingPublisher{},
		registry:    prometheus.NewRegistry(),
		audioDir:    t.TempDir(),
	}
}

func (h *harness) orchestrator(t *testing.T, cfg Config) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(h.store, h.transcriber, h.extractor, dirLocator(h.audioDir), cfg,
		WithPublisher(h.events), WithMetrics(NewMetrics(h.registry)))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.Shutdown(ctx)
	})
	return o
}

func (h *harness) submit(t *testing.T, o *Orchestrator, name string) int64 {
	t.Helper()
	testutil.WriteAudioFile(t, h.audioDir, name)
	id, err := o.Submit(context.Background(), name)
	require.NoError(t, err)
	return id
}

func (h *harness) get(t *testing.T, id int64) *model.Clip {
	t.Helper()
	clip, err := h.store.Get(context.Background(), id)
	require.NoError(t, err)
	return clip
}

// counterValue sums the samples of a counter family matching all labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metrics
				}
			}
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}

func TestOrchestrator_HappyPath(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	o := h.orchestrator(t, Config{})

	id := h.submit(t, o, "zachary.wav")

	require.Eventually(t, func() bool {
		clip, err := h.store.Get(context.Background(), id)
		return err == nil && clip.Status.IsTerminal()
	}, 5*time.Second, 10*time.Millisecond)

	clip := h.get(t, id)
	require.Equal(t, model.StatusDone, clip.Status)
	require.NotNil(t, clip.FastTranscript)
	assert.Equal(t, testutil.FastTranscript, *clip.FastTranscript)
	require.NotNil(t, clip.AccurateTranscript)
	assert.Equal(t, testutil.AccurateTranscript, *clip.AccurateTranscript)
	assert.Nil(t, clip.FailedStage)

	require.NotNil(t, clip.ExtractionRaw)
	env, result := extraction.ParseStored(*clip.ExtractionRaw)
	assert.Equal(t, 300, env.TokenCost)
	assert.Equal(t, "scripted", env.Provider)
	require.True(t, result.OK())
	assert.Equal(t, "Zachary", result.Fields.ChildName)

	assert.Equal(t, []string{testutil.AccurateTranscript}, h.extractor.Transcripts(),
		"extraction reads the accurate transcript")

	calls := h.transcriber.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, model.TierFast, calls[0].Tier)
	assert.Equal(t, model.TierAccurate, calls[1].Tier)
	assert.Equal(t, filepath.Join(h.audioDir, "zachary.wav"), calls[0].AudioPath)

	assert.Equal(t, []model.Status{
		model.StatusWaitingFast,
		model.StatusWaitingAccurate,
		model.StatusWaitingExtraction,
		model.StatusDone,
	}, h.events.statuses(id))

	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_clips_submitted_total", nil))
	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_clips_finished_total", map[string]string{"status": "done"}))
}

func TestOrchestrator_ImmediateStatusIsWaitingFast(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	h.transcriber.WithTier(model.TierFast, testutil.TierScript{Block: true})
	o := h.orchestrator(t, Config{StageTimeout: time.Minute})

	id := h.submit(t, o, "slow.wav")

	clip := h.get(t, id)
	assert.Equal(t, model.StatusWaitingFast, clip.Status)
	assert.Nil(t, clip.FastTranscript)
	assert.Nil(t, clip.AccurateTranscript)
	assert.Nil(t, clip.ExtractionRaw)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, o.Shutdown(ctx), context.DeadlineExceeded)

	assert.Equal(t, model.StatusWaitingFast, h.get(t, id).Status, "an interrupted clip is left for resume")
}

func TestOrchestrator_SingleTier(t *testing.T) {
	h := newHarness(t, model.TierAccurate)
	o := h.orchestrator(t, Config{})

	id := h.submit(t, o, "hosted.mp3")
	o.Wait()

	clip := h.get(t, id)
	require.Equal(t, model.StatusDone, clip.Status)
	assert.Nil(t, clip.FastTranscript)
	assert.Nil(t, clip.FastTranscriptSeconds)
	require.NotNil(t, clip.AccurateTranscript)
	assert.Equal(t, testutil.AccurateTranscript, *clip.AccurateTranscript)
	assert.Equal(t, 0, h.transcriber.CallCount(model.TierFast))
	assert.Equal(t, 1, h.transcriber.CallCount(model.TierAccurate))

	assert.Equal(t, []model.Status{
		model.StatusWaitingFast,
		model.StatusWaitingExtraction,
		model.StatusDone,
	}, h.events.statuses(id))
}

func TestOrchestrator_FailingAdapter(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	h.transcriber.WithTier(model.TierAccurate, testutil.TierScript{Err: stderrors.New("model file missing")})
	o := h.orchestrator(t, Config{})

	id := h.submit(t, o, "broken.wav")
	o.Wait()

	clip := h.get(t, id)
	require.Equal(t, model.StatusFailed, clip.Status)
	require.NotNil(t, clip.FailedStage)
	assert.Equal(t, model.StageAccurateTranscription, *clip.FailedStage)
	require.NotNil(t, clip.FailureReason)
	assert.Contains(t, *clip.FailureReason, "model file missing")
	assert.Contains(t, *clip.FailureReason, "via scripted failed")
	require.NotNil(t, clip.FastTranscript, "results of earlier stages are kept")
	assert.Nil(t, clip.ExtractionRaw)
	assert.Empty(t, h.extractor.Transcripts())

	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_stage_failures_total",
		map[string]string{"stage": "accurate_transcription", "cause": "error"}))
	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_clips_finished_total", map[string]string{"status": "failed"}))
}

func TestOrchestrator_HangingAdapterTimesOut(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	h.extractor.Block = true
	o := h.orchestrator(t, Config{StageTimeout: 100 * time.Millisecond})

	start := time.Now()
	id := h.submit(t, o, "hang.wav")
	o.Wait()

	assert.Less(t, time.Since(start), 3*time.Second)
	clip := h.get(t, id)
	require.Equal(t, model.StatusFailed, clip.Status)
	assert.Equal(t, model.StageExtraction, *clip.FailedStage)
	assert.Contains(t, *clip.FailureReason, "timed out")
	require.NotNil(t, clip.AccurateTranscript)

	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_stage_failures_total",
		map[string]string{"stage": "extraction", "cause": "timeout"}))
}

func TestOrchestrator_UnparseableReplyStillCompletes(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	h.extractor.Reply = testutil.RamblingReply
	o := h.orchestrator(t, Config{})

	id := h.submit(t, o, "ramble.wav")
	o.Wait()

	clip := h.get(t, id)
	require.Equal(t, model.StatusDone, clip.Status)
	_, result := extraction.ParseStored(*clip.ExtractionRaw)
	assert.False(t, result.OK())
}

func TestOrchestrator_ClipsAreIndependent(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	h.transcriber.
		WithFile("bad.wav", model.TierFast, testutil.TierScript{Err: stderrors.New("corrupt header")}).
		WithFile("good.wav", model.TierAccurate, testutil.TierScript{Text: "Amy has the dentist this morning.", Latency: 20 * time.Millisecond})
	o := h.orchestrator(t, Config{MaxConcurrent: 2})

	bad := h.submit(t, o, "bad.wav")
	good := h.submit(t, o, "good.wav")
	o.Wait()

	badClip := h.get(t, bad)
	goodClip := h.get(t, good)

	assert.Equal(t, model.StatusFailed, badClip.Status)
	assert.Equal(t, model.StageFastTranscription, *badClip.FailedStage)
	assert.Nil(t, badClip.FastTranscript)

	assert.Equal(t, model.StatusDone, goodClip.Status)
	assert.Equal(t, "Amy has the dentist this morning.", *goodClip.AccurateTranscript)
	assert.Nil(t, goodClip.FailedStage)
}

type countingTranscriber struct {
	*testutil.ScriptedTranscriber
	current atomic.Int32
	max     atomic.Int32
}

func (c *countingTranscriber) Transcribe(ctx context.Context, path string, tier model.Tier) (*api.Transcript, error) {
	n := c.current.Add(1)
	defer c.current.Add(-1)
	for {
		m := c.max.Load()
		if n <= m || c.max.CompareAndSwap(m, n) {
			break
		}
	}
	return c.ScriptedTranscriber.Transcribe(ctx, path, tier)
}

func TestOrchestrator_BoundedConcurrency(t *testing.T) {
	h := newHarness(t)
	counting := &countingTranscriber{
		ScriptedTranscriber: testutil.NewScriptedTranscriber(model.TierFast, model.TierAccurate).
			WithTier(model.TierFast, testutil.TierScript{Text: "fast", Latency: 20 * time.Millisecond}),
	}

	o, err := NewOrchestrator(h.store, counting, h.extractor, dirLocator(h.audioDir), Config{MaxConcurrent: 1})
	require.NoError(t, err)

	ids := make([]int64, 3)
	for i, name := range []string{"a.wav", "b.wav", "c.wav"} {
		ids[i] = h.submit(t, o, name)
	}
	o.Wait()

	assert.Equal(t, int32(1), counting.max.Load())
	for _, id := range ids {
		assert.Equal(t, model.StatusDone, h.get(t, id).Status)
	}
}

func TestOrchestrator_Resume(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	ctx := context.Background()

	fast := "partial fast"
	accurate := "partial accurate"
	waitingAccurate := model.StatusWaitingAccurate
	waitingExtraction := model.StatusWaitingExtraction
	done := model.StatusDone

	afterFast, err := h.store.Create(ctx, "after-fast.wav")
	require.NoError(t, err)
	require.NoError(t, h.store.Update(ctx, afterFast, repository.ClipUpdate{Status: &waitingAccurate, FastTranscript: &fast}))

	afterAccurate, err := h.store.Create(ctx, "after-accurate.wav")
	require.NoError(t, err)
	require.NoError(t, h.store.Update(ctx, afterAccurate, repository.ClipUpdate{Status: &waitingExtraction, AccurateTranscript: &accurate}))

	finished, err := h.store.Create(ctx, "finished.wav")
	require.NoError(t, err)
	require.NoError(t, h.store.Update(ctx, finished, repository.ClipUpdate{Status: &done}))

	o := h.orchestrator(t, Config{})
	n, err := o.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	o.Wait()

	assert.Equal(t, model.StatusDone, h.get(t, afterFast).Status)
	assert.Equal(t, fast, *h.get(t, afterFast).FastTranscript, "fast tier is not redone")
	assert.Equal(t, model.StatusDone, h.get(t, afterAccurate).Status)

	assert.Equal(t, 0, h.transcriber.CallCount(model.TierFast))
	assert.Equal(t, 1, h.transcriber.CallCount(model.TierAccurate))
	assert.ElementsMatch(t, []string{testutil.AccurateTranscript, accurate}, h.extractor.Transcripts())
}

func TestNewOrchestrator_NoTiers(t *testing.T) {
	h := newHarness(t)
	_, err := NewOrchestrator(h.store, h.transcriber, h.extractor, dirLocator(h.audioDir), Config{})
	assert.ErrorIs(t, err, apperrors.ErrNoTier)
}

func TestSubmit_StoreRejects(t *testing.T) {
	h := newHarness(t, model.TierAccurate)
	o := h.orchestrator(t, Config{})

	_, err := o.Submit(context.Background(), "")
	assert.Error(t, err)
	assert.Equal(t, 0.0, counterValue(t, h.registry, "vmw_clips_submitted_total", nil))
}

func TestWithDeadline_AdapterIgnoringContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := withDeadline(ctx, func(context.Context) (*api.Transcript, error) {
		<-release
		return &api.Transcript{}, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOrchestrator_NextStatus(t *testing.T) {
	twoTier := &Orchestrator{twoTier: true}
	singleTier := &Orchestrator{twoTier: false}

	tests := []struct {
		current       model.Status
		twoTier, once model.Status
	}{
		{model.StatusWaitingFast, model.StatusWaitingAccurate, model.StatusWaitingExtraction},
		{model.StatusWaitingAccurate, model.StatusWaitingExtraction, model.StatusWaitingExtraction},
		{model.StatusWaitingExtraction, model.StatusDone, model.StatusDone},
	}
	for _, tt := range tests {
		t.Run(string(tt.current), func(t *testing.T) {
			assert.Equal(t, tt.twoTier, twoTier.nextStatus(tt.current))
			assert.Equal(t, tt.once, singleTier.nextStatus(tt.current))
		})
	}
}

// flakyStore fails the Get calls listed in failOn (1-based) with a store error.
type flakyStore struct {
	*repository.SQLClipStore
	gets   atomic.Int32
	failOn map[int32]bool
}

func (s *flakyStore) Get(ctx context.Context, id int64) (*model.Clip, error) {
	if s.failOn[s.gets.Add(1)] {
		return nil, apperrors.NewStoreError("get", id, stderrors.New("disk I/O error"))
	}
	return s.SQLClipStore.Get(ctx, id)
}

func TestOrchestrator_StoreReadFailureFailsWaitingStage(t *testing.T) {
	h := newHarness(t, model.TierFast, model.TierAccurate)
	store := &flakyStore{SQLClipStore: h.store, failOn: map[int32]bool{2: true}}

	o, err := NewOrchestrator(store, h.transcriber, h.extractor, dirLocator(h.audioDir), Config{},
		WithPublisher(h.events), WithMetrics(NewMetrics(h.registry)))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.Shutdown(ctx)
	})

	id := h.submit(t, o, "flaky.wav")
	o.Wait()

	clip := h.get(t, id)
	require.Equal(t, model.StatusFailed, clip.Status)
	require.NotNil(t, clip.FailedStage)
	assert.Equal(t, model.StageAccurateTranscription, *clip.FailedStage)
	require.NotNil(t, clip.FailureReason)
	assert.Contains(t, *clip.FailureReason, "disk I/O error")
	assert.NotNil(t, clip.FastTranscript, "completed fast stage is kept")
	assert.Equal(t, 0, h.transcriber.CallCount(model.TierAccurate))
	assert.Equal(t, 1.0, counterValue(t, h.registry, "vmw_stage_failures_total",
		map[string]string{"stage": "accurate_transcription", "cause": "store"}))
}
