package grounded

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/generator"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/store"
	"github.com/w-h-a/brain/synthesizer"
)

const systemPrompt = "You answer questions using only the provided memories. If the memories do not contain the answer, say so. Do not invent facts."

type groundedSynthesizer struct {
	options   synthesizer.Options
	generator generator.Generator
}

func (s *groundedSynthesizer) Synthesize(ctx context.Context, query string, candidates []store.Match) (model.Answer, error) {
	now := time.Now().UTC()

	if len(candidates) == 0 {
		return model.Answer{
			AnswerText:     s.options.NoAnswerText,
			CitedMemoryIds: []string{},
			Confidence:     0,
			CreatedAt:      now,
		}, nil
	}

	included := s.fitToBudget(query, candidates)
	if len(included) == 0 {
		return model.Answer{
			AnswerText:     s.options.NoAnswerText,
			CitedMemoryIds: []string{},
			Confidence:     0,
			CreatedAt:      now,
		}, nil
	}

	prompt := s.buildPrompt(query, included)

	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return model.Answer{}, goerr.Wrap(err, "failed to generate answer", goerr.T(model.TagGeneration))
	}

	citedIds := make([]string, 0, len(included))
	for _, match := range included {
		citedIds = append(citedIds, match.Memory.Id)
	}

	return model.Answer{
		AnswerText:     strings.TrimSpace(result),
		CitedMemoryIds: citedIds,
		// Confidence comes from retrieval, never from the generator:
		// candidates arrive score-descending, so the first is the top score.
		Confidence: included[0].Score,
		CreatedAt:  now,
	}, nil
}

// fitToBudget keeps the highest-scoring prefix of the candidates whose
// contents fit the context budget. Candidates arrive score-descending, so
// dropping the suffix drops the lowest scores first.
func (s *groundedSynthesizer) fitToBudget(query string, candidates []store.Match) []store.Match {
	budget := s.options.MaxContextTokens
	if budget <= 0 {
		return candidates
	}

	budget -= s.count(systemPrompt) + s.count(query)

	var included []store.Match
	for _, match := range candidates {
		cost := s.count(match.Memory.Content)
		if cost > budget {
			break
		}
		budget -= cost
		included = append(included, match)
	}

	return included
}

func (s *groundedSynthesizer) buildPrompt(query string, included []store.Match) string {
	var sb bytes.Buffer
	sb.WriteString(systemPrompt)

	sb.WriteString("\n\nMemories:\n")
	for i, match := range included {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, match.Memory.Content))
		if len(match.Memory.SourceTitle) > 0 {
			sb.WriteString(fmt.Sprintf("   (source: %s)\n", match.Memory.SourceTitle))
		}
	}

	sb.WriteString("\nQuestion:\n")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\nAnswer using only the memories above.\n")

	return sb.String()
}

func (s *groundedSynthesizer) count(text string) int {
	if s.options.Counter != nil {
		return s.options.Counter.Count(text)
	}
	// Rough 4-runes-per-token approximation when no counter is wired.
	return len([]rune(text))/4 + 1
}

func NewSynthesizer(g generator.Generator, opts ...synthesizer.Option) synthesizer.Synthesizer {
	if g == nil {
		panic("generator is required")
	}

	options := synthesizer.NewOptions(opts...)

	return &groundedSynthesizer{
		options:   options,
		generator: g,
	}
}
