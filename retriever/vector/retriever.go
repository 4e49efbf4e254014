package vector

import (
	"context"
	"log/slog"

	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/store"
)

type vectorRetriever struct {
	options retriever.Options
	store   store.Store
}

func (r *vectorRetriever) Retrieve(ctx context.Context, userId string, vec []float32, opts ...retriever.RetrieveOption) ([]store.Match, error) {
	options := retriever.NewRetrieveOptions(r.options, opts...)

	matches, err := r.store.Search(
		ctx,
		userId,
		vec,
		store.WithSearchLimit(options.K),
		store.WithMinScore(options.MinScore),
	)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		slog.InfoContext(ctx, "no memories above relevance threshold", "user_id", userId, "min_score", options.MinScore)
	}

	return matches, nil
}

func NewRetriever(s store.Store, opts ...retriever.Option) retriever.Retriever {
	if s == nil {
		panic("store is required")
	}

	options := retriever.NewOptions(opts...)

	return &vectorRetriever{
		options: options,
		store:   s,
	}
}
