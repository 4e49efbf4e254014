package entitlement

import "context"

// Operation tags the work a user is asking the brain to do.
type Operation string

const (
	OperationIngest Operation = "ingest"
	OperationQuery  Operation = "query"
)

// Gate authorizes an operation for a user before any expensive work begins.
// On success it may consume quota; on denial it fails with an error tagged
// model.TagEntitlement carrying a human-readable reason.
type Gate interface {
	Authorize(ctx context.Context, userId string, op Operation, opts ...AuthorizeOption) error
}
