package tiktoken

import (
	"context"
	"log/slog"

	tiktokengo "github.com/pkoukk/tiktoken-go"

	"github.com/w-h-a/brain/synthesizer/counter"
)

type tiktokenCounter struct {
	encoding *tiktokengo.Tiktoken
}

func (c *tiktokenCounter) Count(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}

func NewCounter(encoding string) counter.Counter {
	if len(encoding) == 0 {
		encoding = "cl100k_base"
	}

	enc, err := tiktokengo.GetEncoding(encoding)
	if err != nil {
		detail := "failed to load tiktoken encoding"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	return &tiktokenCounter{
		encoding: enc,
	}
}
