package fetcher

import "context"

// Fetcher resolves a URL to the primary textual content of the page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

type Page struct {
	Text   string
	Title  string
	Author string
}
