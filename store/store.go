package store

import (
	"context"

	"github.com/w-h-a/brain/model"
)

// Store persists memories with their embeddings and supports per-user
// nearest-neighbor retrieval. Write is atomic: a memory is either fully
// observable or not at all. Search is scoped strictly to the given user;
// cross-user leakage is a correctness violation, so the scoping lives inside
// each backend rather than in callers.
type Store interface {
	Write(ctx context.Context, memory model.Memory) error
	Search(ctx context.Context, userId string, vector []float32, opts ...SearchOption) ([]Match, error)
}

// Match pairs a retrieved memory with its cosine similarity score.
// Results are ordered score descending; equal scores are broken by most
// recent CreatedAt first.
type Match struct {
	Memory model.Memory
	Score  float64
}
