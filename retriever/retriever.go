package retriever

import (
	"context"

	"github.com/w-h-a/brain/store"
)

// Retriever returns the ranked candidate memories for a query vector.
// Zero candidates above the relevance threshold is an explicit empty result,
// not an error; downstream synthesis must treat it as a first-class case.
type Retriever interface {
	Retrieve(ctx context.Context, userId string, vector []float32, opts ...RetrieveOption) ([]store.Match, error)
}
