// Package services orchestrates domain operations across storage and the
// export pipeline.
package services

import "context"

// EventPublisher pushes export notifications to the worker. A nil publisher
// disables the pipeline; publish failures never fail the user's request.
type EventPublisher interface {
	PublishExport(ctx context.Context, transactionID, action string) error
}
