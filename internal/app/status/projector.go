package status

import (
	"voicemail-whisper/internal/app/extraction"
	"voicemail-whisper/internal/app/model"
)

// DefaultAudioPrefix is the URL path audio files are served under.
const DefaultAudioPrefix = "/storage/audio/"

// Reasons reported by an unavailable aiParse.
const (
	ReasonPending     = "pending"
	ReasonUnparseable = "unparseable"
	ReasonFailed      = "failed"
)

var tierInfo = map[model.Tier]string{
	model.TierFast:     "The fast model is one of the quickest to run but can compromise on accuracy",
	model.TierAccurate: "The accurate model provides a good balance between speed and accuracy",
}

// StatusView is the client-facing projection of a clip.
type StatusView struct {
	ID             int64          `json:"id"`
	Status         model.Status   `json:"status"`
	AudioFile      string         `json:"audioFile"`
	Transcriptions Transcriptions `json:"transcriptions"`
	AIParse        AIParse        `json:"aiParse"`
	Failure        *Failure       `json:"failure,omitempty"`
	IsValid        *bool          `json:"isValid,omitempty"`
}

type Transcriptions struct {
	Fast     TranscriptionView `json:"fast"`
	Accurate TranscriptionView `json:"accurate"`
}

// TranscriptionView holds one tier's transcript. Data and Seconds are null until the
// tier has run.
type TranscriptionView struct {
	Data    *string  `json:"data"`
	Seconds *float64 `json:"seconds"`
	Info    string   `json:"info"`
}

// AIParse carries the extracted fields when Available, otherwise a placeholder
// Reason. Detail explains an unparseable reply and Raw holds it.
type AIParse struct {
	Available bool `json:"available"`
	*extraction.Fields
	Cost   *Cost  `json:"cost,omitempty"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
	Raw    string `json:"raw,omitempty"`
}

type Cost struct {
	Tokens      int     `json:"tokens"`
	ActualCents float64 `json:"actualCents"`
}

type Failure struct {
	Stage  model.Stage `json:"stage"`
	Reason string      `json:"reason"`
}

// Projector renders clips into StatusViews. It never fails: anything missing or
// malformed becomes a placeholder.
type Projector struct {
	CostPer1K   float64
	AudioPrefix string
}

func NewProjector(costPer1K float64) Projector {
	if costPer1K <= 0 {
		costPer1K = extraction.DefaultCostPer1KTokens
	}
	return Projector{CostPer1K: costPer1K, AudioPrefix: DefaultAudioPrefix}
}

func (p Projector) Project(clip *model.Clip) StatusView {
	prefix := p.AudioPrefix
	if prefix == "" {
		prefix = DefaultAudioPrefix
	}

	view := StatusView{
		ID:        clip.ID,
		Status:    clip.Status,
		AudioFile: prefix + clip.AudioRef,
		Transcriptions: Transcriptions{
			Fast: TranscriptionView{
				Data:    clip.FastTranscript,
				Seconds: clip.FastTranscriptSeconds,
				Info:    tierInfo[model.TierFast],
			},
			Accurate: TranscriptionView{
				Data:    clip.AccurateTranscript,
				Seconds: clip.AccurateTranscriptSeconds,
				Info:    tierInfo[model.TierAccurate],
			},
		},
		AIParse: p.aiParse(clip),
		IsValid: clip.IsValid,
	}

	if clip.Status == model.StatusFailed {
		failure := &Failure{}
		if clip.FailedStage != nil {
			failure.Stage = *clip.FailedStage
		}
		if clip.FailureReason != nil {
			failure.Reason = *clip.FailureReason
		}
		view.Failure = failure
	}
	return view
}

func (p Projector) aiParse(clip *model.Clip) AIParse {
	if clip.Status == model.StatusFailed {
		return AIParse{Reason: ReasonFailed}
	}
	if clip.ExtractionRaw == nil {
		return AIParse{Reason: ReasonPending}
	}

	env, result := extraction.ParseStored(*clip.ExtractionRaw)
	if !result.OK() {
		return AIParse{Reason: ReasonUnparseable, Detail: result.Reason, Raw: result.Raw}
	}

	fields := result.Fields
	return AIParse{
		Available: true,
		Fields:    &fields,
		Cost: &Cost{
			Tokens:      env.TokenCost,
			ActualCents: extraction.Cost(env.TokenCost, p.CostPer1K),
		},
	}
}
