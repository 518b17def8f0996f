package extraction

import (
	"fmt"
	"strings"
)

// SystemPrompt frames the assistant for chat-style extractors.
const SystemPrompt = "You read transcribed voicemails left on a school absence line and answer questions about them. " +
	"Answer every question on its own line, starting the line with the label shown in brackets. " +
	"Do not add any other text."

const questions = `What is the name of the child? (Child Name:)
What is the reason they won't be attending school? (Reason:)
Length of absence? (Morning, Afternoon, All Day:)`

// Prompt renders the question template for one transcript. The answer lines it asks
// for are the ones Parse expects.
func Prompt(transcript string) string {
	return fmt.Sprintf(`Voicemail transcript:
%s

Is this message notifying the school of an absence? (Absence Notification:)
%s
`, strings.TrimSpace(transcript), questions)
}
