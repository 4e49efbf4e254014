package model

import "time"

// Source identifies where a memory's content came from. It is a closed set:
// normalization dispatches on it with an explicit switch, so adding a source
// type is a compile-time-visible change.
type Source string

const (
	SourceNote Source = "note"
	SourceWeb  Source = "web"
	SourcePdf  Source = "pdf"
)

func (s Source) Valid() bool {
	switch s {
	case SourceNote, SourceWeb, SourcePdf:
		return true
	}
	return false
}

// Memory is one ingested unit of knowledge. It is created once by the
// ingestion pipeline and never mutated afterwards; updates are modeled as
// new memories so the vector index always agrees with its stored content.
type Memory struct {
	Id           string    `json:"id"`
	UserId       string    `json:"user_id"`
	Content      string    `json:"content"`
	Embedding    []float32 `json:"embedding,omitempty"`
	Source       Source    `json:"source"`
	SourceUrl    string    `json:"source_url,omitempty"`
	SourceTitle  string    `json:"source_title,omitempty"`
	SourceAuthor string    `json:"source_author,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
