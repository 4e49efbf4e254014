package normalizer

import (
	"context"

	"github.com/w-h-a/brain/normalizer/extractor"
	"github.com/w-h-a/brain/normalizer/fetcher"
)

type Option func(*Options)

type Options struct {
	Fetcher          fetcher.Fetcher
	Extractor        extractor.Extractor
	MaxContentLength int
	Context          context.Context
}

func WithFetcher(fetcher fetcher.Fetcher) Option {
	return func(o *Options) {
		o.Fetcher = fetcher
	}
}

func WithExtractor(extractor extractor.Extractor) Option {
	return func(o *Options) {
		o.Extractor = extractor
	}
}

// WithMaxContentLength bounds normalized content, measured in runes.
// Oversized input is truncated at the bound, never rejected.
func WithMaxContentLength(max int) Option {
	return func(o *Options) {
		o.MaxContentLength = max
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxContentLength: 100_000,
		Context:          context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

type NormalizeOption func(*NormalizeOptions)

type NormalizeOptions struct {
	SourceUrl    string
	SourceTitle  string
	SourceAuthor string
	Document     []byte
	Context      context.Context
}

func WithSourceUrl(url string) NormalizeOption {
	return func(o *NormalizeOptions) {
		o.SourceUrl = url
	}
}

func WithSourceTitle(title string) NormalizeOption {
	return func(o *NormalizeOptions) {
		o.SourceTitle = title
	}
}

func WithSourceAuthor(author string) NormalizeOption {
	return func(o *NormalizeOptions) {
		o.SourceAuthor = author
	}
}

// WithDocument supplies the raw binary for pdf sources; when absent the
// content argument's bytes are used instead.
func WithDocument(doc []byte) NormalizeOption {
	return func(o *NormalizeOptions) {
		o.Document = doc
	}
}

func NewNormalizeOptions(opts ...NormalizeOption) NormalizeOptions {
	options := NormalizeOptions{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
