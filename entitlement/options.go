package entitlement

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	Location    string
	IngestQuota int
	QueryQuota  int
	Period      time.Duration
	Context     context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithIngestQuota(quota int) Option {
	return func(o *Options) {
		o.IngestQuota = quota
	}
}

func WithQueryQuota(quota int) Option {
	return func(o *Options) {
		o.QueryQuota = quota
	}
}

func WithPeriod(period time.Duration) Option {
	return func(o *Options) {
		o.Period = period
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		IngestQuota: 100,
		QueryQuota:  500,
		Period:      24 * time.Hour,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

func (o Options) Quota(op Operation) int {
	if op == OperationQuery {
		return o.QueryQuota
	}
	return o.IngestQuota
}

type AuthorizeOption func(*AuthorizeOptions)

type AuthorizeOptions struct {
	Cost    int
	Context context.Context
}

// WithCost sets how much quota the operation consumes, for callers that
// want large ingestions to count more than one unit.
func WithCost(cost int) AuthorizeOption {
	return func(o *AuthorizeOptions) {
		o.Cost = cost
	}
}

func NewAuthorizeOptions(opts ...AuthorizeOption) AuthorizeOptions {
	options := AuthorizeOptions{
		Cost:    1,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
