package main

import (
	"voicemail-whisper/cmd/vmw/cmd"
)

// @title Voicemail Whisper API
// @version 1.0
// @description Absence voicemail transcription and extraction. Clips are polled by id while the pipeline runs.
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
