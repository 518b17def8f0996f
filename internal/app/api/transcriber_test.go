package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"voicemail-whisper/internal/app/model"
)

type tierStub []model.Tier

func (s tierStub) Name() string        { return "stub" }
func (s tierStub) Tiers() []model.Tier { return s }
func (s tierStub) Transcribe(context.Context, string, model.Tier) (*Transcript, error) {
	return &Transcript{}, nil
}

func TestTierHelpers(t *testing.T) {
	tests := []struct {
		name      string
		tiers     tierStub
		twoTier   bool
		single    model.Tier
		hasSingle bool
	}{
		{"both tiers", tierStub{model.TierFast, model.TierAccurate}, true, model.TierAccurate, true},
		{"accurate only", tierStub{model.TierAccurate}, false, model.TierAccurate, true},
		{"fast only", tierStub{model.TierFast}, false, model.TierFast, true},
		{"none", tierStub{}, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.twoTier, IsTwoTier(tt.tiers))
			single, ok := SingleTier(tt.tiers)
			assert.Equal(t, tt.hasSingle, ok)
			assert.Equal(t, tt.single, single)
		})
	}
}

func TestSupportsTier(t *testing.T) {
	fastOnly := tierStub{model.TierFast}

	assert.True(t, SupportsTier(fastOnly, model.TierFast))
	assert.False(t, SupportsTier(fastOnly, model.TierAccurate))
	assert.False(t, SupportsTier(tierStub{}, model.TierFast))
}
