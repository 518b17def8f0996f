package api

import (
	"context"

	"github.com/samber/lo"

	"voicemail-whisper/internal/app/model"
)

// Transcript is the result of one transcription call.
type Transcript struct {
	Text    string
	Seconds float64
}

// Transcriber defines a transcription interface for converting audio files to text
// at a quality tier.
type Transcriber interface {
	// Name identifies the backend in logs, metrics and failure reasons.
	Name() string

	// Tiers lists the tiers Transcribe accepts.
	Tiers() []model.Tier

	Transcribe(ctx context.Context, audioPath string, tier model.Tier) (*Transcript, error)
}

// SupportsTier reports whether t can transcribe at tier.
func SupportsTier(t Transcriber, tier model.Tier) bool {
	return lo.Contains(t.Tiers(), tier)
}

// IsTwoTier reports whether t offers both a fast and an accurate pass.
func IsTwoTier(t Transcriber) bool {
	return SupportsTier(t, model.TierFast) && SupportsTier(t, model.TierAccurate)
}

// SingleTier returns the tier to use when t cannot run both passes: accurate when it
// is available, otherwise the only tier t has.
func SingleTier(t Transcriber) (model.Tier, bool) {
	if SupportsTier(t, model.TierAccurate) {
		return model.TierAccurate, true
	}
	tiers := t.Tiers()
	if len(tiers) == 0 {
		return "", false
	}
	return tiers[0], true
}
