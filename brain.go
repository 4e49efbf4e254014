package brain

import (
	"context"

	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer"

	brainservice "github.com/w-h-a/brain/internal/service/brain"
)

// Brain is the public surface of the semantic memory engine: ingest content
// as searchable memory, and answer questions grounded in what was ingested.
// All inner failures propagate typed (see model tags) so boundary layers can
// distinguish "access denied" from "try again" from "fix your input".
type Brain struct {
	service *brainservice.Service
}

// IngestMemory normalizes, embeds, and persists one unit of content for a
// user. Re-ingesting identical content creates a new memory with the same
// embedding; each ingestion is a new fact.
func (b *Brain) IngestMemory(ctx context.Context, userId string, content string, source model.Source, opts ...normalizer.NormalizeOption) (model.Memory, error) {
	return b.service.Ingest(ctx, userId, content, source, opts...)
}

// QueryBrain retrieves the user's most relevant memories for the query and
// synthesizes a cited answer from them.
func (b *Brain) QueryBrain(ctx context.Context, userId string, query string) (model.Answer, error) {
	return b.service.Query(ctx, userId, query)
}

func New(opts ...Option) *Brain {
	options := NewOptions(opts...)

	service := brainservice.New(
		options.Gate,
		options.Normalizer,
		options.Embedder,
		options.Store,
		options.Retriever,
		options.Synthesizer,
		options.Service...,
	)

	return &Brain{
		service: service,
	}
}
