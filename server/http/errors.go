package http

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/model"
)

// StatusOf maps the core's error kinds to transport status codes. It is a
// pure function so the core taxonomy stays independent of presentation.
func StatusOf(err error) int {
	switch {
	case goerr.HasTag(err, model.TagEntitlement):
		return http.StatusForbidden
	case goerr.HasTag(err, model.TagValidation):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.TagUnsupportedSource):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.TagOversized):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.TagFetch):
		return http.StatusUnprocessableEntity
	case goerr.HasTag(err, model.TagExtraction):
		return http.StatusUnprocessableEntity
	case goerr.HasTag(err, model.TagEmbedding):
		return http.StatusServiceUnavailable
	case goerr.HasTag(err, model.TagGeneration):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
