package services

import (
	"context"
	"fmt"

	"kasa/internal/amqp"
	"kasa/internal/core"
	"kasa/internal/log"
	"kasa/internal/storage"
)

// CategoryService enforces the category rules: the 20-category cap and the
// confirmation guard in front of cascade deletion.
type CategoryService struct {
	storage   *storage.SQLiteRepository
	publisher EventPublisher
	logger    *log.Logger
}

func NewCategoryService(storage *storage.SQLiteRepository, publisher EventPublisher, logger *log.Logger) *CategoryService {
	return &CategoryService{
		storage:   storage,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentCategory),
	}
}

func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.storage.ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (core.Category, error) {
	return s.storage.GetCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name, icon string, budget *core.Money) (core.Category, error) {
	cat := core.Category{
		ID:     core.NewID(),
		Name:   name,
		Icon:   icon,
		Budget: budget,
	}
	if err := cat.Validate(); err != nil {
		return core.Category{}, err
	}

	count, err := s.storage.CountCategories(ctx)
	if err != nil {
		return core.Category{}, fmt.Errorf("count categories: %w", err)
	}
	if count >= core.MaxCategories {
		return core.Category{}, core.ErrCategoryLimit
	}

	if err := s.storage.CreateCategory(ctx, cat); err != nil {
		return core.Category{}, err
	}

	s.logger.InfoContext(ctx, "Category created",
		log.FieldOperation, log.OpCreate,
		log.FieldCategoryID, cat.ID,
		log.FieldCategoryName, cat.Name)
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name, icon string, budget *core.Money) (core.Category, error) {
	cat, err := s.storage.GetCategory(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	cat.Name = name
	cat.Icon = icon
	cat.Budget = budget
	if err := cat.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.storage.UpdateCategory(ctx, cat); err != nil {
		return core.Category{}, err
	}

	s.logger.InfoContext(ctx, "Category updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldCategoryID, cat.ID,
		log.FieldCategoryName, cat.Name)
	return cat, nil
}

// Delete removes a category. A category with transactions needs confirmed set:
// without it the call fails with core.ErrConfirmationRequired and the count of
// transactions that the cascade would take with it, so the caller can ask.
func (s *CategoryService) Delete(ctx context.Context, id string, confirmed bool) (int, error) {
	if _, err := s.storage.GetCategory(ctx, id); err != nil {
		return 0, err
	}

	count, err := s.storage.CountTransactionsByCategory(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("count category transactions: %w", err)
	}
	if count > 0 && !confirmed {
		return count, core.ErrConfirmationRequired
	}

	// Collect IDs before the cascade so the worker can drop exported rows.
	var doomed []core.Transaction
	if count > 0 {
		doomed, err = s.storage.ListTransactionsByCategory(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("list category transactions: %w", err)
		}
	}

	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return 0, err
	}

	for _, t := range doomed {
		s.publishExport(ctx, t.ID, amqp.ActionDelete)
	}

	s.logger.InfoContext(ctx, "Category deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldCategoryID, id,
		"cascaded_transactions", count)
	return count, nil
}

func (s *CategoryService) publishExport(ctx context.Context, transactionID, action string) {
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
