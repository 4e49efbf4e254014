package synthesizer

import (
	"context"

	"github.com/w-h-a/brain/synthesizer/counter"
)

const defaultNoAnswerText = "I don't have any stored memories relevant to that question."

type Option func(*Options)

type Options struct {
	MaxContextTokens int
	NoAnswerText     string
	Counter          counter.Counter
	Context          context.Context
}

// WithMaxContextTokens bounds the grounding context; excess low-score
// candidates are dropped first.
func WithMaxContextTokens(max int) Option {
	return func(o *Options) {
		o.MaxContextTokens = max
	}
}

func WithNoAnswerText(text string) Option {
	return func(o *Options) {
		o.NoAnswerText = text
	}
}

func WithCounter(counter counter.Counter) Option {
	return func(o *Options) {
		o.Counter = counter
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxContextTokens: 3000,
		NoAnswerText:     defaultNoAnswerText,
		Context:          context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
