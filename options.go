package brain

import (
	"context"

	"github.com/w-h-a/brain/embedder"
	"github.com/w-h-a/brain/entitlement"
	"github.com/w-h-a/brain/normalizer"
	"github.com/w-h-a/brain/retriever"
	"github.com/w-h-a/brain/store"
	"github.com/w-h-a/brain/synthesizer"

	brainservice "github.com/w-h-a/brain/internal/service/brain"
)

type Option func(*Options)

type Options struct {
	Gate        entitlement.Gate
	Normalizer  normalizer.Normalizer
	Embedder    embedder.Embedder
	Store       store.Store
	Retriever   retriever.Retriever
	Synthesizer synthesizer.Synthesizer
	Service     []brainservice.Option
	Context     context.Context
}

func WithGate(gate entitlement.Gate) Option {
	return func(o *Options) {
		o.Gate = gate
	}
}

func WithNormalizer(norm normalizer.Normalizer) Option {
	return func(o *Options) {
		o.Normalizer = norm
	}
}

func WithEmbedder(emb embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = emb
	}
}

func WithStore(st store.Store) Option {
	return func(o *Options) {
		o.Store = st
	}
}

func WithRetriever(ret retriever.Retriever) Option {
	return func(o *Options) {
		o.Retriever = ret
	}
}

func WithSynthesizer(syn synthesizer.Synthesizer) Option {
	return func(o *Options) {
		o.Synthesizer = syn
	}
}

func WithServiceOptions(opts ...brainservice.Option) Option {
	return func(o *Options) {
		o.Service = append(o.Service, opts...)
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
