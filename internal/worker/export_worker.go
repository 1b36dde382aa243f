// Package worker moves transactions from SQLite to the spreadsheet export
// target, driven by AMQP messages with a periodic catch-up sweep.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kasa/internal/amqp"
	"kasa/internal/core"
	"kasa/internal/export"
	"kasa/internal/log"
	"kasa/internal/storage"
)

type ExportWorker struct {
	storage   *storage.SQLiteRepository
	writer    export.RowWriter
	remover   export.RowRemover
	batchSize int
	logger    *log.Logger
}

func NewExportWorker(storage *storage.SQLiteRepository, writer export.RowWriter, remover export.RowRemover, batchSize int, logger *log.Logger) *ExportWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &ExportWorker{
		storage:   storage,
		writer:    writer,
		remover:   remover,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleMessage processes one export message. Returned errors requeue the
// delivery, so only retryable failures propagate.
func (w *ExportWorker) HandleMessage(ctx context.Context, msg *amqp.ExportMessage) error {
	switch msg.Action {
	case amqp.ActionSync:
		return w.handleSync(ctx, msg.TransactionID)
	case amqp.ActionDelete:
		return w.handleDelete(ctx, msg.TransactionID)
	default:
		w.logger.WarnContext(ctx, "Dropping message with unknown action",
			"action", msg.Action,
			log.FieldTransactionID, msg.TransactionID)
		return nil
	}
}

func (w *ExportWorker) handleSync(ctx context.Context, transactionID string) error {
	t, err := w.storage.GetTransaction(ctx, transactionID)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted between publish and delivery. Make sure the sheet agrees.
		return w.handleDelete(ctx, transactionID)
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}
	return w.exportOne(ctx, t)
}

func (w *ExportWorker) handleDelete(ctx context.Context, transactionID string) error {
	if err := w.remover.Remove(ctx, transactionID); err != nil {
		return fmt.Errorf("remove exported row: %w", err)
	}
	w.logger.InfoContext(ctx, "Removed transaction from export target",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, transactionID)
	return nil
}

func (w *ExportWorker) exportOne(ctx context.Context, t core.Transaction) error {
	ref, err := w.writer.Append(ctx, t)
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, t.ID, err); markErr != nil {
			w.logger.ErrorContext(ctx, "Failed to record export error",
				log.FieldTransactionID, t.ID,
				log.FieldError, markErr.Error())
		}
		return fmt.Errorf("append transaction %s: %w", t.ID, err)
	}

	if err := w.storage.MarkExported(ctx, t.ID); err != nil {
		return fmt.Errorf("mark transaction %s exported: %w", t.ID, err)
	}

	w.logger.InfoContext(ctx, "Transaction exported",
		log.FieldOperation, log.OpSync,
		log.FieldTransactionID, t.ID,
		log.FieldSheetsRef, ref)
	return nil
}

// ProcessPending exports up to one batch of transactions the message path
// missed (broker outages, crashed workers). Errors on individual rows are
// recorded and skipped so one bad row cannot wedge the sweep.
func (w *ExportWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.storage.ListPendingExport(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending export: %w", err)
	}

	exported := 0
	for _, t := range pending {
		if err := w.exportOne(ctx, t); err != nil {
			w.logger.WarnContext(ctx, "Pending export failed, will retry next sweep",
				log.FieldTransactionID, t.ID,
				log.FieldError, err.Error())
			continue
		}
		exported++
	}
	return exported, nil
}

// Run performs a startup sweep and then periodic catch-up sweeps until ctx
// ends. Message consumption runs separately; this covers what messages miss.
func (w *ExportWorker) Run(ctx context.Context, interval time.Duration) error {
	if n, err := w.ProcessPending(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Startup export sweep failed", log.FieldError, err.Error())
	} else if n > 0 {
		w.logger.InfoContext(ctx, "Startup export sweep completed", "exported", n)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Export worker stopping", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessPending(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Export sweep failed", log.FieldError, err.Error())
			}
		}
	}
}
