package synthesizer

import (
	"context"

	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/store"
)

// Synthesizer turns a query and its retrieved candidates into a grounded
// answer with citations. When candidates is empty it produces the
// deterministic no-information answer without calling the generation model.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, candidates []store.Match) (model.Answer, error)
}
