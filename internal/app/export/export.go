package export

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"voicemail-whisper/internal/app/status"
)

var header = []string{
	"ID", "Status", "Audio File",
	"Fast Transcription", "Accurate Transcription",
	"Absence", "Child Name", "Reason For Absence", "Length Of Absence",
	"Tokens", "Cost (cents)", "Failure", "Valid",
}

// ToExcel writes one row per clip view to outputFilePath.
func ToExcel(views []status.StatusView, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Clips")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().Value = h
	}

	for _, v := range views {
		row := sheet.AddRow()
		for _, value := range rowValues(v) {
			row.AddCell().Value = value
		}
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}

func rowValues(v status.StatusView) []string {
	values := []string{
		fmt.Sprint(v.ID),
		string(v.Status),
		v.AudioFile,
		deref(v.Transcriptions.Fast.Data),
		deref(v.Transcriptions.Accurate.Data),
	}

	if v.AIParse.Available && v.AIParse.Fields != nil {
		f := v.AIParse.Fields
		values = append(values, f.Absence, f.ChildName, f.ReasonForAbsence, f.LengthOfAbsence)
	} else {
		values = append(values, v.AIParse.Reason, "", "", "")
	}

	if v.AIParse.Cost != nil {
		values = append(values, fmt.Sprint(v.AIParse.Cost.Tokens), fmt.Sprintf("%.4f", v.AIParse.Cost.ActualCents))
	} else {
		values = append(values, "", "")
	}

	failure := ""
	if v.Failure != nil {
		failure = fmt.Sprintf("%s: %s", v.Failure.Stage, v.Failure.Reason)
	}
	valid := ""
	if v.IsValid != nil {
		valid = fmt.Sprint(*v.IsValid)
	}
	return append(values, failure, valid)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
