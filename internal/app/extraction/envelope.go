package extraction

import (
	"encoding/json"
	"fmt"
)

// Envelope is the JSON stored in a clip's extraction raw column.
type Envelope struct {
	AIResponse string `json:"ai_response"`
	TokenCost  int    `json:"token_cost"`
	Provider   string `json:"provider,omitempty"`
}

func (e Envelope) Encode() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode extraction envelope: %w", err)
	}
	return string(data), nil
}

// DecodeEnvelope reads a stored envelope. Unknown keys, such as a precomputed
// cost, are ignored.
func DecodeEnvelope(raw string) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return Envelope{}, fmt.Errorf("decode extraction envelope: %w", err)
	}
	return e, nil
}

// ParseStored decodes a stored envelope and parses its response. A malformed
// envelope is Unparseable.
func ParseStored(raw string) (Envelope, Result) {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return Envelope{}, Result{Kind: Unparseable, Raw: raw, Reason: err.Error()}
	}
	return env, Parse(env.AIResponse)
}
