package model

import "time"

// Answer is the result of a query. It is ephemeral: citations reference
// memories weakly by id, so deleting a cited memory later does not
// invalidate an answer that was already returned.
type Answer struct {
	AnswerText     string    `json:"answer_text"`
	CitedMemoryIds []string  `json:"cited_memory_ids"`
	Confidence     float64   `json:"confidence"`
	CreatedAt      time.Time `json:"created_at"`
}
