// Package export defines the outbound ports of the spreadsheet export
// pipeline.
package export

import (
	"context"

	"kasa/internal/core"
)

type (
	// RowWriter appends a transaction to the export target.
	RowWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	// RowRemover removes a previously exported transaction by ID.
	RowRemover interface {
		Remove(ctx context.Context, transactionID string) error
	}
)
