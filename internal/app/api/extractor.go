package api

import "context"

// Extraction is the raw language-model output for one transcript.
type Extraction struct {
	Text        string
	TotalTokens int
	Provider    string
}

// Extractor turns a transcript into the free-form answer the response parser reads.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, transcript string) (*Extraction, error)
}
