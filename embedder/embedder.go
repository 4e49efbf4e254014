package embedder

import "context"

// Embedder converts text into a fixed-dimension vector. The same embedder
// must serve both ingestion and query time; vectors from different models
// or dimensions are never comparable.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
