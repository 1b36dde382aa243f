package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// MaxCategories is the soft cap on the category list, enforced at creation.
const MaxCategories = 20

type (
	TransactionType string

	// Money is an amount in cents. Transaction amounts are always stored as
	// non-negative magnitudes; the sign is derived from the transaction type.
	Money struct {
		Cents int64
	}

	Category struct {
		ID     string
		Name   string
		Icon   string
		Budget *Money // nil means no budget; denominated in USD
	}

	Transaction struct {
		ID          string
		Description string
		Amount      Money
		Type        TransactionType
		CategoryID  string
		Currency    string // ISO-like code recorded at creation
		Date        time.Time
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidName          = errors.New("name must be 3-64 characters")
	ErrInvalidDescription   = errors.New("description must be 3-64 characters")
	ErrInvalidType          = errors.New("invalid transaction type")
	ErrEmptyCategory        = errors.New("empty category")
	ErrEmptyCurrency        = errors.New("empty currency")
	ErrUnsupportedCurrency  = errors.New("unsupported currency")
	ErrUnsupportedLanguage  = errors.New("unsupported language")
	ErrNegativeBudget       = errors.New("budget cannot be negative")
	ErrCategoryLimit        = errors.New("category limit reached")
	ErrNotFound             = errors.New("not found")
	ErrConfirmationRequired = errors.New("confirmation required")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Sign returns +1 for income and -1 for expense.
func (t TransactionType) Sign() int64 {
	if t == Income {
		return 1
	}
	return -1
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if n := utf8.RuneCountInString(strings.TrimSpace(c.Name)); n < 3 || n > 64 {
		return ErrInvalidName
	}
	if c.Budget != nil && c.Budget.Cents < 0 {
		return ErrNegativeBudget
	}
	return nil
}

func (t Transaction) Validate() error {
	if n := utf8.RuneCountInString(strings.TrimSpace(t.Description)); n < 3 || n > 64 {
		return ErrInvalidDescription
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(t.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}

// Signed returns the transaction amount with the sign implied by its type.
func (t Transaction) Signed() Money {
	return Money{Cents: t.Type.Sign() * t.Amount.Cents}
}
