package counter

// Counter measures text against the grounding context budget.
type Counter interface {
	Count(text string) int
}
