package normalizer

import (
	"context"

	"github.com/w-h-a/brain/model"
)

// Normalizer converts raw input into canonical plain text plus provenance.
// Dispatch is a closed switch over model.Source: note is passthrough with
// whitespace trimming, web resolves and extracts the page behind SourceUrl,
// pdf extracts text from the binary document.
type Normalizer interface {
	Normalize(ctx context.Context, content string, source model.Source, opts ...NormalizeOption) (Normalized, error)
}

type Normalized struct {
	Content   string
	Url       string
	Title     string
	Author    string
	Truncated bool
}
