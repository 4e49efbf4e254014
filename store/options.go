package store

import "context"

type Option func(*Options)

type Options struct {
	Location   string
	Dimensions int
	Context    context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithDimensions(dims int) Option {
	return func(o *Options) {
		o.Dimensions = dims
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

type SearchOption func(*SearchOptions)

type SearchOptions struct {
	Limit    int
	MinScore float64
	Context  context.Context
}

func WithSearchLimit(limit int) SearchOption {
	return func(o *SearchOptions) {
		o.Limit = limit
	}
}

func WithMinScore(score float64) SearchOption {
	return func(o *SearchOptions) {
		o.MinScore = score
	}
}

func NewSearchOptions(opts ...SearchOption) SearchOptions {
	options := SearchOptions{
		Limit:   5,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
