package store

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/model"
)

// CheckDimensions rejects a write whose embedding does not match the
// configured vector width. A zero configuration disables the check for
// backends wired without a fixed dimension.
func CheckDimensions(options Options, memory model.Memory) error {
	if options.Dimensions > 0 && len(memory.Embedding) != options.Dimensions {
		return goerr.New(
			"embedding dimension mismatch",
			goerr.T(model.TagStorage),
			goerr.V("memory_id", memory.Id),
			goerr.V("want", options.Dimensions),
			goerr.V("got", len(memory.Embedding)),
		)
	}
	return nil
}

// CosineSimilarity is the fixed similarity metric for every backend.
// Changing it changes ranking for every prior memory, so backends that get
// scores from their engine (pgvector's <=> distance) must transform to the
// same definition: 1 - cosine distance.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SortMatches orders matches score descending with ties broken by most
// recent CreatedAt first.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Memory.CreatedAt.After(matches[j].Memory.CreatedAt)
	})
}
