package brain

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	RetryAttempts   int
	RetryBackoff    time.Duration
	EmbedTimeout    time.Duration
	GenerateTimeout time.Duration
	Context         context.Context
}

func WithRetryAttempts(attempts int) Option {
	return func(o *Options) {
		o.RetryAttempts = attempts
	}
}

func WithRetryBackoff(backoff time.Duration) Option {
	return func(o *Options) {
		o.RetryBackoff = backoff
	}
}

func WithEmbedTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.EmbedTimeout = timeout
	}
}

func WithGenerateTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.GenerateTimeout = timeout
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		RetryAttempts:   3,
		RetryBackoff:    200 * time.Millisecond,
		EmbedTimeout:    15 * time.Second,
		GenerateTimeout: 30 * time.Second,
		Context:         context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
