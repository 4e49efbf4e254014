package vector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/retriever"
	memorystorer "github.com/w-h-a/brain/store/memory"
)

func TestRetrieveReturnsRankedMatches(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()

	require.NoError(t, st.Write(ctx, model.Memory{
		Id: "m1", UserId: "user-1", Content: "exact",
		Embedding: []float32{1, 0}, Source: model.SourceNote, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, st.Write(ctx, model.Memory{
		Id: "m2", UserId: "user-1", Content: "orthogonal",
		Embedding: []float32{0, 1}, Source: model.SourceNote, CreatedAt: time.Now().UTC(),
	}))

	ret := NewRetriever(st, retriever.WithK(5), retriever.WithMinScore(0.5))

	matches, err := ret.Retrieve(ctx, "user-1", []float32{1, 0})
	require.NoError(t, err)

	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].Memory.Id)
}

func TestRetrieveBelowThresholdIsEmptyNotError(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()

	require.NoError(t, st.Write(ctx, model.Memory{
		Id: "m1", UserId: "user-1", Content: "unrelated",
		Embedding: []float32{0, 1}, Source: model.SourceNote, CreatedAt: time.Now().UTC(),
	}))

	ret := NewRetriever(st, retriever.WithMinScore(0.9))

	matches, err := ret.Retrieve(ctx, "user-1", []float32{1, 0})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRetrievePerCallOverrides(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()

	for _, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, st.Write(ctx, model.Memory{
			Id: id, UserId: "user-1", Content: id,
			Embedding: []float32{1, 0}, Source: model.SourceNote, CreatedAt: time.Now().UTC(),
		}))
	}

	ret := NewRetriever(st, retriever.WithK(5), retriever.WithMinScore(0))

	matches, err := ret.Retrieve(ctx, "user-1", []float32{1, 0}, retriever.WithRetrieveK(2))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
