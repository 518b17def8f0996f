package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Sample transcripts of the same voicemail at both tiers.
const (
	FastTranscript     = "Hello, I'm phoning today to say that my son Zak is feeling unwell and won't be attending school."
	AccurateTranscript = "Hello, I'm phoning today to say that my son Zachary is feeling unwell and won't be attending school today."
)

// ZacharyReply is a well-formed model reply for AccurateTranscript.
const ZacharyReply = "Absence Notification: yes\nChild Name: Zachary\nReason: unwell\nMorning, Afternoon, All Day: All Day"

// RamblingReply is a model reply the parser rejects.
const RamblingReply = "The caller says their son is not well. I think he will be off all day."

// WriteAudioFile creates a placeholder audio file in dir and returns its path.
func WriteAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFF\x00\x00\x00\x00WAVEfmt "), 0644); err != nil {
		t.Fatalf("Failed to write audio fixture: %v", err)
	}
	return path
}
