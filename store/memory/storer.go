package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/store"
)

type memoryStorer struct {
	options store.Options
	records map[string]model.Memory
	mtx     sync.RWMutex
}

func (s *memoryStorer) Write(ctx context.Context, memory model.Memory) error {
	if len(memory.Id) == 0 {
		memory.Id = uuid.New().String()
	}

	if len(memory.UserId) == 0 {
		return goerr.New("memory has no owner", goerr.T(model.TagStorage))
	}

	if err := store.CheckDimensions(s.options, memory); err != nil {
		return err
	}

	cpy := make([]float32, len(memory.Embedding))
	copy(cpy, memory.Embedding)
	memory.Embedding = cpy

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.records[memory.Id] = memory

	return nil
}

func (s *memoryStorer) Search(ctx context.Context, userId string, vector []float32, opts ...store.SearchOption) ([]store.Match, error) {
	options := store.NewSearchOptions(opts...)

	if options.Limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]store.Match, 0, len(s.records))

	for _, rec := range s.records {
		if rec.UserId != userId {
			continue
		}
		score := store.CosineSimilarity(vector, rec.Embedding)
		if score < options.MinScore {
			continue
		}
		candidates = append(candidates, store.Match{Memory: rec, Score: score})
	}

	store.SortMatches(candidates)

	if len(candidates) > options.Limit {
		candidates = candidates[:options.Limit]
	}

	return candidates, nil
}

func NewStorer(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	s := &memoryStorer{
		options: options,
		records: map[string]model.Memory{},
		mtx:     sync.RWMutex{},
	}

	return s
}
