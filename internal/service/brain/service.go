package brain

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/embedder"
	"github.com/w-h-a/brain/entitlement"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer"
	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/store"
	"github.com/w-h-a/brain/synthesizer"
)

// Service composes the gate, normalizer, embedder, store, retriever, and
// synthesizer into the two public brain operations. Every invocation is an
// independent unit of work; no exclusive lock is held across the slow
// embedding and generation calls.
type Service struct {
	options     Options
	gate        entitlement.Gate
	normalizer  normalizer.Normalizer
	embedder    embedder.Embedder
	store       store.Store
	retriever   retriever.Retriever
	synthesizer synthesizer.Synthesizer
}

// Ingest runs Gate -> Normalizer -> Embedder -> Store.Write. A failure at
// any stage aborts the whole operation; nothing is persisted until the
// final write, so there is no partial memory to clean up.
func (s *Service) Ingest(ctx context.Context, userId string, content string, source model.Source, opts ...normalizer.NormalizeOption) (model.Memory, error) {
	if len(strings.TrimSpace(userId)) == 0 {
		return model.Memory{}, goerr.New("user id is required", goerr.T(model.TagValidation))
	}

	if err := s.gate.Authorize(ctx, userId, entitlement.OperationIngest); err != nil {
		return model.Memory{}, err
	}

	normalized, err := s.normalizer.Normalize(ctx, content, source, opts...)
	if err != nil {
		return model.Memory{}, err
	}

	if normalized.Truncated {
		slog.InfoContext(ctx, "content truncated at policy limit", "user_id", userId, "source", source)
	}

	vec, err := s.embed(ctx, normalized.Content)
	if err != nil {
		return model.Memory{}, err
	}

	memory := model.Memory{
		Id:           uuid.New().String(),
		UserId:       userId,
		Content:      normalized.Content,
		Embedding:    vec,
		Source:       source,
		SourceUrl:    normalized.Url,
		SourceTitle:  normalized.Title,
		SourceAuthor: normalized.Author,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Write(ctx, memory); err != nil {
		return model.Memory{}, err
	}

	return memory, nil
}

// Query runs Gate -> Embedder(query) -> Retriever -> Synthesizer.
func (s *Service) Query(ctx context.Context, userId string, query string) (model.Answer, error) {
	if len(strings.TrimSpace(userId)) == 0 {
		return model.Answer{}, goerr.New("user id is required", goerr.T(model.TagValidation))
	}

	if err := s.gate.Authorize(ctx, userId, entitlement.OperationQuery); err != nil {
		return model.Answer{}, err
	}

	vec, err := s.embed(ctx, query)
	if err != nil {
		return model.Answer{}, err
	}

	candidates, err := s.retriever.Retrieve(ctx, userId, vec)
	if err != nil {
		return model.Answer{}, err
	}

	var answer model.Answer
	err = s.retry(ctx, func(ctx context.Context) error {
		gctx, cancel := context.WithTimeout(ctx, s.options.GenerateTimeout)
		defer cancel()

		var err error
		answer, err = s.synthesizer.Synthesize(gctx, query, candidates)
		return err
	})
	if err != nil {
		return model.Answer{}, err
	}

	return answer, nil
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32

	err := s.retry(ctx, func(ctx context.Context) error {
		ectx, cancel := context.WithTimeout(ctx, s.options.EmbedTimeout)
		defer cancel()

		v, err := s.embedder.Embed(ectx, text)
		if err != nil {
			return goerr.Wrap(err, "embedding service failure", goerr.T(model.TagEmbedding))
		}

		if dims := s.embedder.Dimensions(); dims > 0 && len(v) != dims {
			return goerr.New(
				"embedding dimension mismatch",
				goerr.T(model.TagEmbedding),
				goerr.V("want", dims),
				goerr.V("got", len(v)),
			)
		}

		vec = v
		return nil
	})

	return vec, err
}

// retry re-runs do with exponential backoff, but only for transient upstream
// kinds. Deterministic rejections surface immediately. do always runs at
// least once regardless of the configured attempt count; a misconfigured
// zero must never turn into a silent success.
func (s *Service) retry(ctx context.Context, do func(context.Context) error) error {
	backoff := s.options.RetryBackoff

	attempts := s.options.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if err = do(ctx); err == nil {
			return nil
		}

		if !model.IsRetryable(err) {
			return err
		}
	}

	return err
}

func New(
	gate entitlement.Gate,
	norm normalizer.Normalizer,
	emb embedder.Embedder,
	st store.Store,
	ret retriever.Retriever,
	syn synthesizer.Synthesizer,
	opts ...Option,
) *Service {
	if gate == nil {
		panic("gate is required")
	}

	if norm == nil {
		panic("normalizer is required")
	}

	if emb == nil {
		panic("embedder is required")
	}

	if st == nil {
		panic("store is required")
	}

	if ret == nil {
		panic("retriever is required")
	}

	if syn == nil {
		panic("synthesizer is required")
	}

	options := NewOptions(opts...)

	return &Service{
		options:     options,
		gate:        gate,
		normalizer:  norm,
		embedder:    emb,
		store:       st,
		retriever:   ret,
		synthesizer: syn,
	}
}
