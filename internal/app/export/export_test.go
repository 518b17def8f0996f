package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"voicemail-whisper/internal/app/extraction"
	"voicemail-whisper/internal/app/model"
	"voicemail-whisper/internal/app/status"
)

func TestToExcel(t *testing.T) {
	accurate := "Hi, Zachary is sick today."
	valid := true
	views := []status.StatusView{
		{
			ID:        1,
			Status:    model.StatusDone,
			AudioFile: "/storage/audio/a.mp3",
			Transcriptions: status.Transcriptions{
				Accurate: status.TranscriptionView{Data: &accurate},
			},
			AIParse: status.AIParse{
				Available: true,
				Fields: &extraction.Fields{
					Absence:          "yes",
					ChildName:        "Zachary",
					ReasonForAbsence: "sick",
					LengthOfAbsence:  "all day",
				},
				Cost: &status.Cost{Tokens: 150, ActualCents: 0.003},
			},
			IsValid: &valid,
		},
		{
			ID:      2,
			Status:  model.StatusFailed,
			AIParse: status.AIParse{Reason: status.ReasonFailed},
			Failure: &status.Failure{Stage: model.StageExtraction, Reason: "timed out"},
		},
	}

	path := filepath.Join(t.TempDir(), "clips.xlsx")
	require.NoError(t, ToExcel(views, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0].Cells[0].Value)

	done := rows[1].Cells
	assert.Equal(t, "1", done[0].Value)
	assert.Equal(t, "done", done[1].Value)
	assert.Equal(t, accurate, done[4].Value)
	assert.Equal(t, "Zachary", done[6].Value)
	assert.Equal(t, "150", done[9].Value)
	assert.Equal(t, "true", done[12].Value)

	failed := rows[2].Cells
	assert.Equal(t, "failed", failed[5].Value)
	assert.Equal(t, "extraction: timed out", failed[11].Value)
}

func TestToExcel_BadPath(t *testing.T) {
	err := ToExcel(nil, filepath.Join(t.TempDir(), "missing", "dir", "out.xlsx"))
	assert.Error(t, err)
}
