package retriever

import "context"

type Option func(*Options)

type Options struct {
	K        int
	MinScore float64
	Context  context.Context
}

func WithK(k int) Option {
	return func(o *Options) {
		o.K = k
	}
}

func WithMinScore(score float64) Option {
	return func(o *Options) {
		o.MinScore = score
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		K:        8,
		MinScore: 0.7,
		Context:  context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type RetrieveOption func(*RetrieveOptions)

type RetrieveOptions struct {
	K        int
	MinScore float64
	Context  context.Context
}

func WithRetrieveK(k int) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.K = k
	}
}

func WithRetrieveMinScore(score float64) RetrieveOption {
	return func(o *RetrieveOptions) {
		o.MinScore = score
	}
}

func NewRetrieveOptions(defaults Options, opts ...RetrieveOption) RetrieveOptions {
	options := RetrieveOptions{
		K:        defaults.K,
		MinScore: defaults.MinScore,
		Context:  context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
