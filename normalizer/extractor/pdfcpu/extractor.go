package pdfcpu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/w-h-a/brain/normalizer/extractor"
)

type pdfExtractor struct {
	conf *model.Configuration
}

func (e *pdfExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	if len(document) == 0 {
		return "", errors.New("empty document")
	}

	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(document), e.conf)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for page := 1; page <= pdfCtx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(pdfCtx, page)
		if err != nil {
			return "", err
		}
		if r == nil {
			continue
		}

		stream, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}

		text := decodeTextOperands(stream)
		if len(text) > 0 {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}

	result := strings.TrimSpace(sb.String())
	if len(result) == 0 {
		return "", errors.New("no extractable text")
	}

	return result, nil
}

// decodeTextOperands collects the literal string operands of the text-show
// operators (Tj, TJ, ') from a decoded page content stream. Hex strings and
// non-standard encodings are out of scope for this extractor.
func decodeTextOperands(stream []byte) string {
	var sb strings.Builder
	var lit strings.Builder
	inString := false
	escaped := false

	for i := 0; i < len(stream); i++ {
		c := stream[i]

		if !inString {
			if c == '(' {
				inString = true
				lit.Reset()
			}
			continue
		}

		if escaped {
			switch c {
			case 'n':
				lit.WriteByte('\n')
			case 't':
				lit.WriteByte('\t')
			case '(', ')', '\\':
				lit.WriteByte(c)
			}
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = true
		case ')':
			inString = false
			if s := lit.String(); len(strings.TrimSpace(s)) > 0 {
				sb.WriteString(s)
				sb.WriteString(" ")
			}
		default:
			lit.WriteByte(c)
		}
	}

	return strings.TrimSpace(sb.String())
}

func NewExtractor() extractor.Extractor {
	return &pdfExtractor{
		conf: model.NewDefaultConfiguration(),
	}
}
