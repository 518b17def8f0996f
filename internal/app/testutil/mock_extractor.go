package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"voicemail-whisper/internal/app/api"
)

// MockExtractor is a testify mock of api.Extractor.
type MockExtractor struct {
	mock.Mock
}

func NewMockExtractor(t *testing.T) *MockExtractor {
	m := &MockExtractor{}
	m.Test(t)
	return m
}

func (m *MockExtractor) Name() string {
	return "mock"
}

func (m *MockExtractor) Extract(ctx context.Context, transcript string) (*api.Extraction, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Extraction), args.Error(1)
}

// ScriptedExtractor answers every transcript with the same reply.
type ScriptedExtractor struct {
	mu          sync.Mutex
	Reply       string
	Tokens      int
	Err         error
	Latency     time.Duration
	Block       bool
	transcripts []string
}

var _ api.Extractor = (*ScriptedExtractor)(nil)

func NewScriptedExtractor(reply string, tokens int) *ScriptedExtractor {
	return &ScriptedExtractor{Reply: reply, Tokens: tokens}
}

func (s *ScriptedExtractor) Name() string {
	return "scripted"
}

func (s *ScriptedExtractor) Extract(ctx context.Context, transcript string) (*api.Extraction, error) {
	s.mu.Lock()
	s.transcripts = append(s.transcripts, transcript)
	reply, tokens, scriptErr, latency, block := s.Reply, s.Tokens, s.Err, s.Latency, s.Block
	s.mu.Unlock()

	if err := wait(ctx, latency, block); err != nil {
		return nil, err
	}
	if scriptErr != nil {
		return nil, scriptErr
	}
	return &api.Extraction{Text: reply, TotalTokens: tokens, Provider: s.Name()}, nil
}

// Transcripts returns the transcripts Extract was called with.
func (s *ScriptedExtractor) Transcripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.transcripts))
	copy(out, s.transcripts)
	return out
}
