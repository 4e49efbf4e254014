package model

import "github.com/m-mizutani/goerr/v2"

// Every failure kind the core can surface carries exactly one of these tags.
// Components wrap upstream causes with goerr.Wrap and attach their tag, so
// the boundary layer can map kinds to responses without string matching.
var (
	TagEntitlement       = goerr.NewTag("entitlement")
	TagValidation        = goerr.NewTag("validation")
	TagUnsupportedSource = goerr.NewTag("unsupported_source")
	TagOversized         = goerr.NewTag("oversized_content")
	TagFetch             = goerr.NewTag("fetch")
	TagExtraction        = goerr.NewTag("extraction")
	TagEmbedding         = goerr.NewTag("embedding_service")
	TagGeneration        = goerr.NewTag("generation")
	TagStorage           = goerr.NewTag("storage")
)

// IsRetryable reports whether an error is a transient upstream condition.
// Embedding and generation failures have no observable side effect, so the
// orchestrator may retry them with bounded attempts. Entitlement and
// validation failures are deterministic rejections and are never retried.
func IsRetryable(err error) bool {
	return goerr.HasTag(err, TagEmbedding) || goerr.HasTag(err, TagGeneration)
}
