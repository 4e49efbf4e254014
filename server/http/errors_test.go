package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/w-h-a/brain/model"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{
			name:   "entitlement denial is forbidden",
			err:    goerr.New("quota exhausted", goerr.T(model.TagEntitlement)),
			status: http.StatusForbidden,
		},
		{
			name:   "validation failure is bad request",
			err:    goerr.New("user id is required", goerr.T(model.TagValidation)),
			status: http.StatusBadRequest,
		},
		{
			name:   "unsupported source is bad request",
			err:    goerr.New("unknown source", goerr.T(model.TagUnsupportedSource)),
			status: http.StatusBadRequest,
		},
		{
			name:   "oversized content is bad request",
			err:    goerr.New("too large", goerr.T(model.TagOversized)),
			status: http.StatusBadRequest,
		},
		{
			name:   "fetch failure is unprocessable",
			err:    goerr.New("unreachable", goerr.T(model.TagFetch)),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "extraction failure is unprocessable",
			err:    goerr.New("unparseable", goerr.T(model.TagExtraction)),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "embedding failure is service unavailable",
			err:    goerr.New("upstream down", goerr.T(model.TagEmbedding)),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "generation failure is service unavailable",
			err:    goerr.New("model overloaded", goerr.T(model.TagGeneration)),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "storage failure is internal",
			err:    goerr.New("db down", goerr.T(model.TagStorage)),
			status: http.StatusInternalServerError,
		},
		{
			name:   "untagged failure is internal",
			err:    errors.New("who knows"),
			status: http.StatusInternalServerError,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.status, StatusOf(testCase.err))
		})
	}
}

func TestStatusOfTagSurvivesWrapping(t *testing.T) {
	cause := errors.New("429 from upstream")
	wrapped := goerr.Wrap(cause, "embedding service failure", goerr.T(model.TagEmbedding))

	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(wrapped))
}
