package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"voicemail-whisper/internal/app/api"
	"voicemail-whisper/internal/app/model"
)

// MockTranscriber is a testify mock of api.Transcriber. TierList is returned by
// Tiers without recording a call.
type MockTranscriber struct {
	mock.Mock
	TierList []model.Tier
}

func NewMockTranscriber(t *testing.T, tiers ...model.Tier) *MockTranscriber {
	m := &MockTranscriber{TierList: tiers}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Name() string {
	return "mock"
}

func (m *MockTranscriber) Tiers() []model.Tier {
	return m.TierList
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string, tier model.Tier) (*api.Transcript, error) {
	args := m.Called(ctx, audioPath, tier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Transcript), args.Error(1)
}

// TierScript is the canned behaviour of one transcription call.
type TierScript struct {
	Text    string
	Err     error
	Latency time.Duration
	// Block waits for the context to end and returns its error.
	Block bool
}

// TranscribeCall records one call to ScriptedTranscriber.
type TranscribeCall struct {
	AudioPath string
	Tier      model.Tier
	At        time.Time
}

// ScriptedTranscriber returns canned results per tier, optionally overridden per
// audio file name. It is safe for concurrent use.
type ScriptedTranscriber struct {
	mu      sync.Mutex
	tiers   []model.Tier
	scripts map[model.Tier]TierScript
	perFile map[string]map[model.Tier]TierScript
	calls   []TranscribeCall
}

var _ api.Transcriber = (*ScriptedTranscriber)(nil)

// NewScriptedTranscriber offers the given tiers, answering FastTranscript and
// AccurateTranscript respectively.
func NewScriptedTranscriber(tiers ...model.Tier) *ScriptedTranscriber {
	return &ScriptedTranscriber{
		tiers: tiers,
		scripts: map[model.Tier]TierScript{
			model.TierFast:     {Text: FastTranscript},
			model.TierAccurate: {Text: AccurateTranscript},
		},
		perFile: make(map[string]map[model.Tier]TierScript),
	}
}

// WithTier replaces the default script of a tier.
func (s *ScriptedTranscriber) WithTier(tier model.Tier, script TierScript) *ScriptedTranscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[tier] = script
	return s
}

// WithFile scripts a tier for one audio file, matched by base name.
func (s *ScriptedTranscriber) WithFile(name string, tier model.Tier, script TierScript) *ScriptedTranscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.perFile[name] == nil {
		s.perFile[name] = make(map[model.Tier]TierScript)
	}
	s.perFile[name][tier] = script
	return s
}

func (s *ScriptedTranscriber) Name() string {
	return "scripted"
}

func (s *ScriptedTranscriber) Tiers() []model.Tier {
	return s.tiers
}

func (s *ScriptedTranscriber) Transcribe(ctx context.Context, audioPath string, tier model.Tier) (*api.Transcript, error) {
	s.mu.Lock()
	s.calls = append(s.calls, TranscribeCall{AudioPath: audioPath, Tier: tier, At: time.Now()})
	script := s.scripts[tier]
	if override, ok := s.perFile[filepath.Base(audioPath)][tier]; ok {
		script = override
	}
	s.mu.Unlock()

	if err := wait(ctx, script.Latency, script.Block); err != nil {
		return nil, err
	}
	if script.Err != nil {
		return nil, script.Err
	}
	return &api.Transcript{Text: script.Text, Seconds: script.Latency.Seconds()}, nil
}

// Calls returns a copy of the recorded calls.
func (s *ScriptedTranscriber) Calls() []TranscribeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]TranscribeCall, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// CallCount returns how many calls were made at tier.
func (s *ScriptedTranscriber) CallCount(tier model.Tier) int {
	n := 0
	for _, call := range s.Calls() {
		if call.Tier == tier {
			n++
		}
	}
	return n
}

func wait(ctx context.Context, latency time.Duration, block bool) error {
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if latency <= 0 {
		return nil
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
