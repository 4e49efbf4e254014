package main

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/brain"
	"github.com/w-h-a/brain/embedder"
	googleembedder "github.com/w-h-a/brain/embedder/google"
	openaiembedder "github.com/w-h-a/brain/embedder/openai"
	"github.com/w-h-a/brain/entitlement"
	memorygate "github.com/w-h-a/brain/entitlement/memory"
	postgresgate "github.com/w-h-a/brain/entitlement/postgres"
	"github.com/w-h-a/brain/generator"
	anthropicgenerator "github.com/w-h-a/brain/generator/anthropic"
	openaigenerator "github.com/w-h-a/brain/generator/openai"
	"github.com/w-h-a/brain/normalizer"
	pdfextractor "github.com/w-h-a/brain/normalizer/extractor/pdfcpu"
	webfetcher "github.com/w-h-a/brain/normalizer/fetcher/web"
	"github.com/w-h-a/brain/normalizer/standard"
	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/retriever/vector"
	httpserver "github.com/w-h-a/brain/server/http"
	"github.com/w-h-a/brain/store"
	chromemstorer "github.com/w-h-a/brain/store/chromem"
	memorystorer "github.com/w-h-a/brain/store/memory"
	postgresstorer "github.com/w-h-a/brain/store/postgres"
	"github.com/w-h-a/brain/synthesizer"
	tiktokencounter "github.com/w-h-a/brain/synthesizer/counter/tiktoken"
	"github.com/w-h-a/brain/synthesizer/grounded"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the http boundary" default:":4000"`

		// Store config
		Store         string `help:"Store backend: memory, chromem, or postgres" default:"memory"`
		StoreLocation string `help:"Connection string for the store backend" default:""`

		// Gate config
		Gate         string `help:"Entitlement gate backend: memory or postgres" default:"memory"`
		GateLocation string `help:"Connection string for the gate backend" default:""`
		IngestQuota  int    `help:"Ingestions allowed per user per period" default:"100"`
		QueryQuota   int    `help:"Queries allowed per user per period" default:"500"`

		// Embedder config
		EmbedderProvider string `help:"Embedder provider: openai or google" default:"openai"`
		EmbedderKey      string `help:"API key for the embedder" default:""`
		Embedder         string `help:"Model identifier for the embedder" default:"text-embedding-3-small"`
		Dimensions       int    `help:"Embedding dimensions for the chosen model" default:"1536"`

		// Generator config
		GeneratorProvider string `help:"Generator provider: openai or anthropic" default:"openai"`
		GeneratorKey      string `help:"API key for the generator" default:""`
		Generator         string `help:"Model identifier for the generator" default:"gpt-4o-mini"`

		// Retrieval config
		K        int     `help:"Number of candidate memories per query" default:"8"`
		MinScore float64 `help:"Minimum similarity score for a candidate" default:"0.7"`

		// Synthesis config
		MaxContextTokens int    `help:"Token budget for the grounding context" default:"3000"`
		Encoding         string `help:"Tiktoken encoding used for the budget" default:"cl100k_base"`

		// Normalizer config
		MaxContentLength int `help:"Maximum normalized content length in runes" default:"100000"`
	}
)

func main() {
	_ = kong.Parse(&cfg)

	gate := newGate()
	st := newStore()
	emb := newEmbedder()
	gen := newGenerator()

	norm := standard.NewNormalizer(
		normalizer.WithFetcher(webfetcher.NewFetcher()),
		normalizer.WithExtractor(pdfextractor.NewExtractor()),
		normalizer.WithMaxContentLength(cfg.MaxContentLength),
	)

	ret := vector.NewRetriever(
		st,
		retriever.WithK(cfg.K),
		retriever.WithMinScore(cfg.MinScore),
	)

	syn := grounded.NewSynthesizer(
		gen,
		synthesizer.WithMaxContextTokens(cfg.MaxContextTokens),
		synthesizer.WithCounter(tiktokencounter.NewCounter(cfg.Encoding)),
	)

	b := brain.New(
		brain.WithGate(gate),
		brain.WithNormalizer(norm),
		brain.WithEmbedder(emb),
		brain.WithStore(st),
		brain.WithRetriever(ret),
		brain.WithSynthesizer(syn),
	)

	srv := httpserver.NewServer(b, httpserver.WithAddress(cfg.Address))

	if err := srv.Run(); err != nil {
		detail := "brain http server stopped"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}
}

func newGate() entitlement.Gate {
	opts := []entitlement.Option{
		entitlement.WithIngestQuota(cfg.IngestQuota),
		entitlement.WithQueryQuota(cfg.QueryQuota),
	}

	switch cfg.Gate {
	case "postgres":
		return postgresgate.NewGate(append(opts, entitlement.WithLocation(cfg.GateLocation))...)
	default:
		return memorygate.NewGate(opts...)
	}
}

func newStore() store.Store {
	switch cfg.Store {
	case "postgres":
		return postgresstorer.NewStorer(
			store.WithLocation(cfg.StoreLocation),
			store.WithDimensions(cfg.Dimensions),
		)
	case "chromem":
		return chromemstorer.NewStorer(store.WithDimensions(cfg.Dimensions))
	default:
		return memorystorer.NewStorer(store.WithDimensions(cfg.Dimensions))
	}
}

func newEmbedder() embedder.Embedder {
	opts := []embedder.Option{
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.Embedder),
		embedder.WithDimensions(cfg.Dimensions),
	}

	switch cfg.EmbedderProvider {
	case "google":
		return googleembedder.NewEmbedder(opts...)
	default:
		return openaiembedder.NewEmbedder(opts...)
	}
}

func newGenerator() generator.Generator {
	opts := []generator.Option{
		generator.WithApiKey(cfg.GeneratorKey),
		generator.WithModel(cfg.Generator),
	}

	switch cfg.GeneratorProvider {
	case "anthropic":
		return anthropicgenerator.NewGenerator(opts...)
	default:
		return openaigenerator.NewGenerator(opts...)
	}
}
