package standard

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer"
)

type standardNormalizer struct {
	options normalizer.Options
}

func (n *standardNormalizer) Normalize(ctx context.Context, content string, source model.Source, opts ...normalizer.NormalizeOption) (normalizer.Normalized, error) {
	options := normalizer.NewNormalizeOptions(opts...)

	switch source {
	case model.SourceNote:
		return n.normalizeNote(content), nil
	case model.SourceWeb:
		return n.normalizeWeb(ctx, options)
	case model.SourcePdf:
		return n.normalizePdf(ctx, content, options)
	default:
		return normalizer.Normalized{}, goerr.New(
			"unsupported source type",
			goerr.T(model.TagUnsupportedSource),
			goerr.V("source", source),
		)
	}
}

func (n *standardNormalizer) normalizeNote(content string) normalizer.Normalized {
	text, truncated := n.truncate(strings.TrimSpace(content))
	return normalizer.Normalized{
		Content:   text,
		Truncated: truncated,
	}
}

func (n *standardNormalizer) normalizeWeb(ctx context.Context, options normalizer.NormalizeOptions) (normalizer.Normalized, error) {
	if len(strings.TrimSpace(options.SourceUrl)) == 0 {
		return normalizer.Normalized{}, goerr.New(
			"web source requires a source url",
			goerr.T(model.TagFetch),
		)
	}

	if n.options.Fetcher == nil {
		return normalizer.Normalized{}, goerr.New(
			"no fetcher configured for web sources",
			goerr.T(model.TagFetch),
		)
	}

	page, err := n.options.Fetcher.Fetch(ctx, options.SourceUrl)
	if err != nil {
		return normalizer.Normalized{}, goerr.Wrap(
			err,
			"failed to fetch web source",
			goerr.T(model.TagFetch),
			goerr.V("url", options.SourceUrl),
		)
	}

	title := options.SourceTitle
	if len(title) == 0 {
		title = page.Title
	}

	author := options.SourceAuthor
	if len(author) == 0 {
		author = page.Author
	}

	text, truncated := n.truncate(strings.TrimSpace(page.Text))

	return normalizer.Normalized{
		Content:   text,
		Url:       options.SourceUrl,
		Title:     title,
		Author:    author,
		Truncated: truncated,
	}, nil
}

func (n *standardNormalizer) normalizePdf(ctx context.Context, content string, options normalizer.NormalizeOptions) (normalizer.Normalized, error) {
	document := options.Document
	if len(document) == 0 {
		document = []byte(content)
	}

	if n.options.Extractor == nil {
		return normalizer.Normalized{}, goerr.New(
			"no extractor configured for pdf sources",
			goerr.T(model.TagExtraction),
		)
	}

	text, err := n.options.Extractor.Extract(ctx, document)
	if err != nil {
		return normalizer.Normalized{}, goerr.Wrap(
			err,
			"failed to extract pdf text",
			goerr.T(model.TagExtraction),
		)
	}

	text, truncated := n.truncate(strings.TrimSpace(text))

	return normalizer.Normalized{
		Content:   text,
		Title:     options.SourceTitle,
		Author:    options.SourceAuthor,
		Truncated: truncated,
	}, nil
}

// truncate cuts at the configured rune count. The cut point is the limit
// itself, never mid-rune, so identical input always truncates identically.
func (n *standardNormalizer) truncate(text string) (string, bool) {
	max := n.options.MaxContentLength
	if max <= 0 {
		return text, false
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text, false
	}

	return string(runes[:max]), true
}

func NewNormalizer(opts ...normalizer.Option) normalizer.Normalizer {
	options := normalizer.NewOptions(opts...)

	return &standardNormalizer{
		options: options,
	}
}
