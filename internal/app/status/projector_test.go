package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicemail-whisper/internal/app/extraction"
	"voicemail-whisper/internal/app/model"
)

func ptr[T any](v T) *T { return &v }

func doneClip(t *testing.T, reply string, tokens int) *model.Clip {
	t.Helper()
	raw, err := extraction.Envelope{AIResponse: reply, TokenCost: tokens, Provider: "openai"}.Encode()
	require.NoError(t, err)
	return &model.Clip{
		ID:                        3,
		AudioRef:                  "3f2c.mp3",
		Status:                    model.StatusDone,
		FastTranscript:            ptr("my son zak is unwell"),
		FastTranscriptSeconds:     ptr(1.25),
		AccurateTranscript:        ptr("My son Zachary is unwell."),
		AccurateTranscriptSeconds: ptr(4.5),
		ExtractionRaw:             &raw,
	}
}

func TestProject_Done(t *testing.T) {
	p := NewProjector(0)
	view := p.Project(doneClip(t, "Absence Notification: yes\nChild Name: Zachary\nReason: unwell\nMorning, Afternoon, All Day: All Day", 300))

	assert.Equal(t, model.StatusDone, view.Status)
	assert.Equal(t, "/storage/audio/3f2c.mp3", view.AudioFile)
	assert.Equal(t, "My son Zachary is unwell.", *view.Transcriptions.Accurate.Data)
	assert.Equal(t, 1.25, *view.Transcriptions.Fast.Seconds)
	assert.NotEmpty(t, view.Transcriptions.Fast.Info)
	assert.NotEqual(t, view.Transcriptions.Fast.Info, view.Transcriptions.Accurate.Info)

	require.True(t, view.AIParse.Available)
	assert.Equal(t, "Zachary", view.AIParse.ChildName)
	assert.Equal(t, "All Day", view.AIParse.LengthOfAbsence)
	require.NotNil(t, view.AIParse.Cost)
	assert.Equal(t, 300, view.AIParse.Cost.Tokens)
	assert.InDelta(t, 0.006, view.AIParse.Cost.ActualCents, 1e-12)
	assert.Nil(t, view.Failure)
}

func TestProject_Placeholders(t *testing.T) {
	tests := []struct {
		name   string
		clip   *model.Clip
		reason string
	}{
		{
			name:   "just submitted",
			clip:   &model.Clip{ID: 1, AudioRef: "a.wav", Status: model.StatusWaitingFast},
			reason: ReasonPending,
		},
		{
			name:   "waiting extraction",
			clip:   &model.Clip{ID: 1, AudioRef: "a.wav", Status: model.StatusWaitingExtraction, AccurateTranscript: ptr("hi")},
			reason: ReasonPending,
		},
		{
			name: "failed",
			clip: &model.Clip{ID: 1, AudioRef: "a.wav", Status: model.StatusFailed,
				FailedStage: ptr(model.StageExtraction), FailureReason: ptr("timed out")},
			reason: ReasonFailed,
		},
		{
			name:   "malformed envelope",
			clip:   &model.Clip{ID: 1, AudioRef: "a.wav", Status: model.StatusDone, ExtractionRaw: ptr("not json")},
			reason: ReasonUnparseable,
		},
		{
			name:   "unparseable reply",
			clip:   doneClip(t, "Sorry, I could not understand the message.", 40),
			reason: ReasonUnparseable,
		},
	}

	p := NewProjector(0.02)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var view StatusView
			require.NotPanics(t, func() { view = p.Project(tt.clip) })
			assert.False(t, view.AIParse.Available)
			assert.Nil(t, view.AIParse.Fields)
			assert.Nil(t, view.AIParse.Cost)
			assert.Equal(t, tt.reason, view.AIParse.Reason)
		})
	}
}

func TestProject_Failure(t *testing.T) {
	view := NewProjector(0).Project(&model.Clip{
		ID: 9, AudioRef: "x.wav", Status: model.StatusFailed,
		FastTranscript: ptr("partial"),
		FailedStage:    ptr(model.StageAccurateTranscription),
		FailureReason:  ptr("accurate_transcription via whisper_cpp failed: exit status 1"),
	})

	require.NotNil(t, view.Failure)
	assert.Equal(t, model.StageAccurateTranscription, view.Failure.Stage)
	assert.Contains(t, view.Failure.Reason, "exit status 1")
	assert.Equal(t, "partial", *view.Transcriptions.Fast.Data)
}

func TestStatusView_JSON(t *testing.T) {
	pending, err := json.Marshal(NewProjector(0).Project(&model.Clip{ID: 1, AudioRef: "a.wav", Status: model.StatusWaitingFast}))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(pending, &got))
	assert.Equal(t, "waiting_fast", got["status"])
	assert.Equal(t, map[string]any{"available": false, "reason": "pending"}, got["aiParse"])
	transcriptions := got["transcriptions"].(map[string]any)
	fast := transcriptions["fast"].(map[string]any)
	assert.Nil(t, fast["data"])
	assert.Contains(t, fast, "data")
	assert.NotContains(t, got, "failure")

	done, err := json.Marshal(NewProjector(0).Project(doneClip(t, "Absence Notification: yes\nChild Name: Zachary\nReason: unwell\nLength of Absence: AM", 300)))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(done, &got))
	aiParse := got["aiParse"].(map[string]any)
	assert.Equal(t, "Zachary", aiParse["childName"])
	assert.Equal(t, "AM", aiParse["lengthOfAbsence"])
	cost := aiParse["cost"].(map[string]any)
	assert.Equal(t, 300.0, cost["tokens"])
	assert.InDelta(t, 0.006, cost["actualCents"].(float64), 1e-12)
}
