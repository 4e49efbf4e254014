package chromem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/store"
)

// chromemStorer keeps memories in an embedded chromem-go database with one
// collection per user, so user scoping is enforced by the namespace itself.
type chromemStorer struct {
	options     store.Options
	db          *chromemgo.DB
	collections map[string]*chromemgo.Collection
	mtx         sync.RWMutex
}

func (s *chromemStorer) Write(ctx context.Context, memory model.Memory) error {
	if err := store.CheckDimensions(s.options, memory); err != nil {
		return err
	}

	col, err := s.collection(memory.UserId)
	if err != nil {
		return goerr.Wrap(err, "failed to open user collection", goerr.T(model.TagStorage), goerr.V("user_id", memory.UserId))
	}

	doc := chromemgo.Document{
		ID:        memory.Id,
		Content:   memory.Content,
		Embedding: memory.Embedding,
		Metadata: map[string]string{
			"user_id":       memory.UserId,
			"source":        string(memory.Source),
			"source_url":    memory.SourceUrl,
			"source_title":  memory.SourceTitle,
			"source_author": memory.SourceAuthor,
			"created_at":    memory.CreatedAt.Format(time.RFC3339Nano),
		},
	}

	if err := col.AddDocument(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to write memory", goerr.T(model.TagStorage), goerr.V("memory_id", memory.Id))
	}

	return nil
}

func (s *chromemStorer) Search(ctx context.Context, userId string, vector []float32, opts ...store.SearchOption) ([]store.Match, error) {
	options := store.NewSearchOptions(opts...)

	if options.Limit < 1 {
		return nil, nil
	}

	col, err := s.collection(userId)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open user collection", goerr.T(model.TagStorage), goerr.V("user_id", userId))
	}

	// chromem rejects nResults larger than the collection, so clamp first.
	limit := options.Limit
	if count := col.Count(); count < limit {
		limit = count
	}
	if limit == 0 {
		return nil, nil
	}

	results, err := col.QueryEmbedding(ctx, vector, limit, nil, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search memories", goerr.T(model.TagStorage), goerr.V("user_id", userId))
	}

	matches := make([]store.Match, 0, len(results))

	for _, result := range results {
		score := float64(result.Similarity)
		if score < options.MinScore {
			continue
		}

		createdAt, err := time.Parse(time.RFC3339Nano, result.Metadata["created_at"])
		if err != nil {
			// Zero CreatedAt loses the recency tie-break for this record;
			// keep the match but make the corruption visible.
			slog.WarnContext(ctx, "malformed created_at metadata", "memory_id", result.ID, "error", err)
		}

		matches = append(matches, store.Match{
			Memory: model.Memory{
				Id:           result.ID,
				UserId:       userId,
				Content:      result.Content,
				Source:       model.Source(result.Metadata["source"]),
				SourceUrl:    result.Metadata["source_url"],
				SourceTitle:  result.Metadata["source_title"],
				SourceAuthor: result.Metadata["source_author"],
				CreatedAt:    createdAt,
			},
			Score: score,
		})
	}

	// chromem orders by similarity only; re-sort for the recency tie-break.
	store.SortMatches(matches)

	return matches, nil
}

func (s *chromemStorer) collection(userId string) (*chromemgo.Collection, error) {
	s.mtx.RLock()
	col, exists := s.collections[userId]
	s.mtx.RUnlock()

	if exists {
		return col, nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if col, exists := s.collections[userId]; exists {
		return col, nil
	}

	col, err := s.db.GetOrCreateCollection("memories-"+userId, nil, nil)
	if err != nil {
		return nil, err
	}

	s.collections[userId] = col

	return col, nil
}

func NewStorer(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	s := &chromemStorer{
		options:     options,
		db:          chromemgo.NewDB(),
		collections: map[string]*chromemgo.Collection{},
		mtx:         sync.RWMutex{},
	}

	return s
}
