package extractor

import "context"

// Extractor pulls plain text out of a binary document.
type Extractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}
