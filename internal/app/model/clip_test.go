package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		status   Status
		next     Status
		stage    Stage
		hasStage bool
		terminal bool
	}{
		{StatusWaitingFast, StatusWaitingAccurate, StageFastTranscription, true, false},
		{StatusWaitingAccurate, StatusWaitingExtraction, StageAccurateTranscription, true, false},
		{StatusWaitingExtraction, StatusDone, StageExtraction, true, false},
		{StatusDone, StatusDone, "", false, true},
		{StatusFailed, StatusFailed, "", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.True(t, tt.status.Valid())
			assert.Equal(t, tt.next, tt.status.Next())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())

			stage, ok := tt.status.Stage()
			assert.Equal(t, tt.hasStage, ok)
			assert.Equal(t, tt.stage, stage)
		})
	}
}

func TestStatus_Unknown(t *testing.T) {
	s := Status("waiting_ai_parse")
	assert.False(t, s.Valid())
	assert.False(t, s.IsTerminal())
	_, ok := s.Stage()
	assert.False(t, ok)
}
