package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/w-h-a/brain/normalizer/fetcher"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html"
)

type webFetcher struct {
	client *http.Client
}

func (f *webFetcher) Fetch(ctx context.Context, url string) (fetcher.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fetcher.Page{}, err
	}

	rsp, err := f.client.Do(req)
	if err != nil {
		return fetcher.Page{}, err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return fetcher.Page{}, fmt.Errorf("status: %s", rsp.Status)
	}

	doc, err := html.Parse(rsp.Body)
	if err != nil {
		return fetcher.Page{}, err
	}

	page := fetcher.Page{
		Title:  extractTitle(doc),
		Author: extractMetaAuthor(doc),
	}

	var sb strings.Builder
	extractText(doc, &sb)
	page.Text = strings.TrimSpace(sb.String())

	return page, nil
}

// extractText walks the tree collecting visible text, skipping the elements
// that never hold readable content.
func extractText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.CommentNode {
		return
	}

	if n.Type == html.ElementNode && isSkippedElement(strings.ToLower(n.Data)) {
		return
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if len(text) > 0 {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}
}

func extractTitle(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := extractTitle(c); len(title) > 0 {
			return title
		}
	}

	return ""
}

func extractMetaAuthor(n *html.Node) string {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "meta") {
		var name, content string
		for _, attr := range n.Attr {
			switch strings.ToLower(attr.Key) {
			case "name":
				name = strings.ToLower(attr.Val)
			case "content":
				content = attr.Val
			}
		}
		if name == "author" {
			return strings.TrimSpace(content)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if author := extractMetaAuthor(c); len(author) > 0 {
			return author
		}
	}

	return ""
}

func isSkippedElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "iframe", "svg", "head", "nav", "footer":
		return true
	}
	return false
}

func NewFetcher() fetcher.Fetcher {
	return &webFetcher{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}
