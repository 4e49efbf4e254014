package main

import (
	"context"
	"fmt"
	"log"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/brain"
	"github.com/w-h-a/brain/embedder"
	openaiembedder "github.com/w-h-a/brain/embedder/openai"
	memorygate "github.com/w-h-a/brain/entitlement/memory"
	"github.com/w-h-a/brain/generator"
	openaigenerator "github.com/w-h-a/brain/generator/openai"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer/standard"
	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/retriever/vector"
	memorystorer "github.com/w-h-a/brain/store/memory"
	"github.com/w-h-a/brain/synthesizer/grounded"
)

var (
	cfg struct {
		ApiKey    string  `help:"OpenAI API key for embeddings and generation" default:""`
		Embedder  string  `help:"Embedding model" default:"text-embedding-3-small"`
		Generator string  `help:"Generation model" default:"gpt-4o-mini"`
		MinScore  float64 `help:"Minimum similarity score" default:"0.5"`
	}
)

func main() {
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	st := memorystorer.NewStorer()

	b := brain.New(
		brain.WithGate(memorygate.NewGate()),
		brain.WithNormalizer(standard.NewNormalizer()),
		brain.WithEmbedder(openaiembedder.NewEmbedder(
			embedder.WithApiKey(cfg.ApiKey),
			embedder.WithModel(cfg.Embedder),
		)),
		brain.WithStore(st),
		brain.WithRetriever(vector.NewRetriever(st, retriever.WithMinScore(cfg.MinScore))),
		brain.WithSynthesizer(grounded.NewSynthesizer(openaigenerator.NewGenerator(
			generator.WithApiKey(cfg.ApiKey),
			generator.WithModel(cfg.Generator),
		))),
	)

	fmt.Println("--- Brain Demo ---")

	notes := []string{
		"HNSW indexes trade memory for query speed and suit most pgvector workloads.",
		"The team agreed to cap embedding dimensions at 1536 for cost reasons.",
		"Cosine similarity is the fixed metric for all memory retrieval.",
	}

	for _, note := range notes {
		memory, err := b.IngestMemory(ctx, "demo-user", note, model.SourceNote)
		if err != nil {
			log.Fatalf("failed to ingest: %v", err)
		}
		fmt.Printf("ingested memory %s\n", memory.Id)
	}

	answer, err := b.QueryBrain(ctx, "demo-user", "What index should we use for vector search?")
	if err != nil {
		log.Fatalf("failed to query: %v", err)
	}

	fmt.Printf("\nAnswer: %s\n", answer.AnswerText)
	fmt.Printf("Confidence: %.2f\n", answer.Confidence)
	fmt.Printf("Citations: %v\n", answer.CitedMemoryIds)
}
