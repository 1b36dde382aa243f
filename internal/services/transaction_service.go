package services

import (
	"context"
	"fmt"
	"time"

	"kasa/internal/amqp"
	"kasa/internal/core"
	"kasa/internal/currency"
	"kasa/internal/log"
	"kasa/internal/storage"
)

// TransactionService records and removes transactions, notifying the export
// pipeline after each local write. The local write is the source of truth; a
// failed publish only degrades the export, never the request.
type TransactionService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
	logger    *log.Logger
}

func NewTransactionService(storage *storage.SQLiteRepository, publisher EventPublisher, logger *log.Logger) *TransactionService {
	return &TransactionService{
		storage:   storage,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentTransaction),
	}
}

func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx)
}

// CreateInput carries the raw form values for a new transaction.
type CreateInput struct {
	Description string
	Amount      string
	Type        core.TransactionType
	CategoryID  string
	Currency    string
	Date        time.Time
}

func (s *TransactionService) Create(ctx context.Context, in CreateInput) (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	cur := in.Currency
	if cur == "" {
		cur = currency.Default
	}
	if _, ok := currency.ByCode(cur); !ok {
		return core.Transaction{}, core.ErrUnsupportedCurrency
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	t := core.Transaction{
		ID:          core.NewID(),
		Description: in.Description,
		Amount:      core.Money{Cents: cents},
		Type:        in.Type,
		CategoryID:  in.CategoryID,
		Currency:    cur,
		Date:        date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	// The category must exist; a dangling reference would silently vanish
	// from every aggregate.
	if _, err := s.storage.GetCategory(ctx, t.CategoryID); err != nil {
		return core.Transaction{}, fmt.Errorf("resolve category: %w", err)
	}

	if err := s.storage.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	s.publishExport(ctx, t.ID, amqp.ActionSync)
	s.logger.InfoContext(ctx, "Transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransactionID, t.ID,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldCurrency, t.Currency,
		log.FieldCategoryID, t.CategoryID)
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.storage.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.publishExport(ctx, id, amqp.ActionDelete)
	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldTransactionID, id)
	return nil
}

func (s *TransactionService) publishExport(ctx context.Context, transactionID, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExport(ctx, transactionID, action); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish export message",
			log.FieldTransactionID, transactionID,
			"action", action,
			log.FieldError, err.Error())
	}
}
