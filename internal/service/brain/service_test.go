package brain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/brain/entitlement"
	memorygate "github.com/w-h-a/brain/entitlement/memory"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer"
	"github.com/w-h-a/brain/normalizer/fetcher"
	"github.com/w-h-a/brain/normalizer/standard"
	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/retriever/vector"
	"github.com/w-h-a/brain/store"
	memorystorer "github.com/w-h-a/brain/store/memory"
	"github.com/w-h-a/brain/synthesizer/grounded"
)

type denyAllGate struct {
	calls int
}

func (g *denyAllGate) Authorize(ctx context.Context, userId string, op entitlement.Operation, opts ...entitlement.AuthorizeOption) error {
	g.calls++
	return goerr.New("plan does not allow this", goerr.T(model.TagEntitlement))
}

// fakeEmbedder produces a deterministic vector per text, so identical
// content always embeds identically.
type fakeEmbedder struct {
	vectors  map[string][]float32
	failures int
	calls    int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.failures > 0 {
		e.failures--
		return nil, errors.New("upstream unavailable")
	}
	if vec, ok := e.vectors[text]; ok {
		return vec, nil
	}

	var sum int
	for _, r := range text {
		sum += int(r)
	}
	return []float32{float32(sum%97) + 1, float32(sum%31) + 1, float32(sum%7) + 1}, nil
}

func (e *fakeEmbedder) Dimensions() int {
	return 3
}

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context, url string) (fetcher.Page, error) {
	return fetcher.Page{}, errors.New("no route to host")
}

func newService(t *testing.T, gate entitlement.Gate, emb *fakeEmbedder, gen *fakeGenerator, st store.Store, opts ...Option) *Service {
	t.Helper()

	if gate == nil {
		gate = memorygate.NewGate()
	}
	if st == nil {
		st = memorystorer.NewStorer()
	}

	norm := standard.NewNormalizer(normalizer.WithFetcher(failingFetcher{}))
	ret := vector.NewRetriever(st, retriever.WithMinScore(0.5))
	syn := grounded.NewSynthesizer(gen)

	return New(gate, norm, emb, st, ret, syn, append([]Option{WithRetryBackoff(time.Millisecond)}, opts...)...)
}

func TestIngestPersistsNormalizedMemory(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()
	emb := &fakeEmbedder{}

	svc := newService(t, nil, emb, &fakeGenerator{response: "ok"}, st)

	memory, err := svc.Ingest(ctx, "user-1", "  remember this  ", model.SourceNote)
	require.NoError(t, err)

	assert.NotEmpty(t, memory.Id)
	assert.Equal(t, "user-1", memory.UserId)
	assert.Equal(t, "remember this", memory.Content)
	assert.Equal(t, model.SourceNote, memory.Source)
	assert.Len(t, memory.Embedding, 3)
	assert.False(t, memory.CreatedAt.IsZero())

	matches, err := st.Search(ctx, "user-1", memory.Embedding)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, memory.Id, matches[0].Memory.Id)
}

func TestIngestDeniedMakesNoBillableCalls(t *testing.T) {
	ctx := context.Background()
	gate := &denyAllGate{}
	emb := &fakeEmbedder{}
	st := memorystorer.NewStorer()

	svc := newService(t, gate, emb, &fakeGenerator{}, st)

	_, err := svc.Ingest(ctx, "user-1", "note", model.SourceNote)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagEntitlement))

	assert.Equal(t, 1, gate.calls)
	assert.Equal(t, 0, emb.calls)

	matches, err := st.Search(ctx, "user-1", []float32{1, 1, 1}, store.WithMinScore(0))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQueryDeniedMakesNoBillableCalls(t *testing.T) {
	ctx := context.Background()
	gate := &denyAllGate{}
	emb := &fakeEmbedder{}
	gen := &fakeGenerator{response: "ok"}

	svc := newService(t, gate, emb, gen, nil)

	_, err := svc.Query(ctx, "user-1", "what?")
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagEntitlement))

	assert.Equal(t, 0, emb.calls)
	assert.Equal(t, 0, gen.calls)
}

func TestReIngestingSameContentIsNewFactWithSameVector(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}

	svc := newService(t, nil, emb, &fakeGenerator{response: "ok"}, nil)

	first, err := svc.Ingest(ctx, "user-1", "the same note", model.SourceNote)
	require.NoError(t, err)

	second, err := svc.Ingest(ctx, "user-1", "the same note", model.SourceNote)
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, first.Embedding, second.Embedding)
}

func TestIngestUnreachableWebSourceLeavesNothingPersisted(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()
	emb := &fakeEmbedder{}

	svc := newService(t, nil, emb, &fakeGenerator{}, st)

	_, err := svc.Ingest(
		ctx,
		"user-1",
		"",
		model.SourceWeb,
		normalizer.WithSourceUrl("https://down.example.com"),
	)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagFetch))

	assert.Equal(t, 0, emb.calls)

	matches, err := st.Search(ctx, "user-1", []float32{1, 1, 1}, store.WithMinScore(0))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQueryNeverCrossesUsers(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"user one's secret": {1, 0, 0},
		"the secret?":       {1, 0, 0},
	}}
	gen := &fakeGenerator{response: "grounded"}

	svc := newService(t, nil, emb, gen, nil)

	memory, err := svc.Ingest(ctx, "user-1", "user one's secret", model.SourceNote)
	require.NoError(t, err)

	// Same query vector, different user: nothing may be retrieved or cited.
	answer, err := svc.Query(ctx, "user-2", "the secret?")
	require.NoError(t, err)
	assert.Empty(t, answer.CitedMemoryIds)
	assert.NotContains(t, answer.CitedMemoryIds, memory.Id)

	answer, err = svc.Query(ctx, "user-1", "the secret?")
	require.NoError(t, err)
	assert.Equal(t, []string{memory.Id}, answer.CitedMemoryIds)
}

func TestQueryWithNoMemoriesIsDeterministicNoInfoAnswer(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{response: "should not run"}

	svc := newService(t, nil, &fakeEmbedder{}, gen, nil)

	first, err := svc.Query(ctx, "user-1", "anything known?")
	require.NoError(t, err)

	second, err := svc.Query(ctx, "user-1", "anything known?")
	require.NoError(t, err)

	assert.Equal(t, 0, gen.calls)
	assert.Empty(t, first.CitedMemoryIds)
	assert.Equal(t, first.AnswerText, second.AnswerText)
	assert.Zero(t, first.Confidence)
}

func TestEmbeddingFailuresAreRetriedWithBound(t *testing.T) {
	ctx := context.Background()

	emb := &fakeEmbedder{failures: 2}
	svc := newService(t, nil, emb, &fakeGenerator{response: "ok"}, nil)

	_, err := svc.Ingest(ctx, "user-1", "note", model.SourceNote)
	require.NoError(t, err)
	assert.Equal(t, 3, emb.calls)
}

func TestEmbeddingExhaustedRetriesSurfaceTyped(t *testing.T) {
	ctx := context.Background()
	st := memorystorer.NewStorer()

	emb := &fakeEmbedder{failures: 10}
	svc := newService(t, nil, emb, &fakeGenerator{}, st)

	_, err := svc.Ingest(ctx, "user-1", "note", model.SourceNote)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagEmbedding))
	assert.Equal(t, 3, emb.calls)

	matches, err := st.Search(ctx, "user-1", []float32{1, 1, 1}, store.WithMinScore(0))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestZeroRetryAttemptsStillEmbedsOnce(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}

	svc := newService(t, nil, emb, &fakeGenerator{response: "ok"}, nil, WithRetryAttempts(0))

	memory, err := svc.Ingest(ctx, "user-1", "note", model.SourceNote)
	require.NoError(t, err)

	// A zero attempt count must never skip the work and report success.
	assert.Equal(t, 1, emb.calls)
	assert.Len(t, memory.Embedding, 3)
}

func TestEmptyUserIdIsRejected(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{}

	svc := newService(t, nil, emb, &fakeGenerator{}, nil)

	_, err := svc.Ingest(ctx, "  ", "note", model.SourceNote)
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagValidation))

	_, err = svc.Query(ctx, "", "anything?")
	require.Error(t, err)
	assert.True(t, goerr.HasTag(err, model.TagValidation))

	assert.Equal(t, 0, emb.calls)
}

func TestQueryConfidenceComesFromRetrieval(t *testing.T) {
	ctx := context.Background()
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"a fact": {1, 0, 0},
		"fact?":  {1, 0, 0},
	}}
	gen := &fakeGenerator{response: "grounded"}

	svc := newService(t, nil, emb, gen, nil)

	_, err := svc.Ingest(ctx, "user-1", "a fact", model.SourceNote)
	require.NoError(t, err)

	answer, err := svc.Query(ctx, "user-1", "fact?")
	require.NoError(t, err)

	// Identical vectors: cosine similarity is exactly 1.
	assert.InDelta(t, 1.0, answer.Confidence, 1e-6)
}
