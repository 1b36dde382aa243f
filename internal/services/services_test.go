package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"kasa/internal/amqp"
	"kasa/internal/core"
	"kasa/internal/log"
	"kasa/internal/storage"
)

type fakePublisher struct {
	published []string // "id:action"
	fail      bool
}

func (p *fakePublisher) PublishExport(ctx context.Context, transactionID, action string) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, transactionID+":"+action)
	return nil
}

func testStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestCategoryService_CreateEnforcesLimit(t *testing.T) {
	repo := testStorage(t)
	svc := NewCategoryService(repo, nil, testLogger())
	ctx := context.Background()

	// 8 seeded, room for 12 more.
	for i := 0; i < core.MaxCategories-8; i++ {
		if _, err := svc.Create(ctx, fmt.Sprintf("Category %02d", i), "📦", nil); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	if _, err := svc.Create(ctx, "One Too Many", "📦", nil); !errors.Is(err, core.ErrCategoryLimit) {
		t.Fatalf("past limit: %v", err)
	}
}

func TestCategoryService_CreateValidates(t *testing.T) {
	svc := NewCategoryService(testStorage(t), nil, testLogger())
	if _, err := svc.Create(context.Background(), "ab", "📦", nil); !errors.Is(err, core.ErrInvalidName) {
		t.Fatalf("short name: %v", err)
	}
}

func TestCategoryService_DeleteRequiresConfirmation(t *testing.T) {
	repo := testStorage(t)
	pub := &fakePublisher{}
	catSvc := NewCategoryService(repo, pub, testLogger())
	txSvc := NewTransactionService(repo, pub, testLogger())
	ctx := context.Background()

	cat, err := catSvc.Create(ctx, "Travel", "✈️", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	tr, err := txSvc.Create(ctx, CreateInput{
		Description: "flight ticket",
		Amount:      "320.50",
		Type:        core.Expense,
		CategoryID:  cat.ID,
	})
	if err != nil {
		t.Fatalf("Create transaction: %v", err)
	}

	count, err := catSvc.Delete(ctx, cat.ID, false)
	if !errors.Is(err, core.ErrConfirmationRequired) {
		t.Fatalf("unconfirmed delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	// Nothing deleted yet.
	if _, err := repo.GetCategory(ctx, cat.ID); err != nil {
		t.Fatalf("category must survive unconfirmed delete: %v", err)
	}

	count, err = catSvc.Delete(ctx, cat.ID, true)
	if err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("cascade count = %d", count)
	}
	if _, err := repo.GetCategory(ctx, cat.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("category must be gone: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, tr.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("transaction must cascade: %v", err)
	}

	want := tr.ID + ":" + amqp.ActionDelete
	if pub.published[len(pub.published)-1] != want {
		t.Fatalf("published = %v, want last %q", pub.published, want)
	}
}

func TestCategoryService_DeleteEmptyNeedsNoConfirmation(t *testing.T) {
	repo := testStorage(t)
	svc := NewCategoryService(repo, nil, testLogger())
	ctx := context.Background()

	count, err := svc.Delete(ctx, "8", false) // seeded "Other", no transactions
	if err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d", count)
	}
}

func TestCategoryService_DeleteMissing(t *testing.T) {
	svc := NewCategoryService(testStorage(t), nil, testLogger())
	if _, err := svc.Delete(context.Background(), "nope", true); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("missing category: %v", err)
	}
}

func TestTransactionService_Create(t *testing.T) {
	repo := testStorage(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub, testLogger())
	ctx := context.Background()

	tr, err := svc.Create(ctx, CreateInput{
		Description: "weekly groceries",
		Amount:      "45,90",
		Type:        core.Expense,
		CategoryID:  "2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tr.Amount.Cents != 4590 {
		t.Fatalf("cents = %d", tr.Amount.Cents)
	}
	if tr.Currency != "USD" {
		t.Fatalf("default currency = %q", tr.Currency)
	}
	if tr.Date.IsZero() {
		t.Fatal("date must default to now")
	}
	if len(pub.published) != 1 || pub.published[0] != tr.ID+":"+amqp.ActionSync {
		t.Fatalf("published = %v", pub.published)
	}

	got, err := repo.GetTransaction(ctx, tr.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Description != "weekly groceries" {
		t.Fatalf("persisted = %+v", got)
	}
}

func TestTransactionService_CreateRejectsBadInput(t *testing.T) {
	svc := NewTransactionService(testStorage(t), nil, testLogger())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"bad amount", CreateInput{Description: "valid text", Amount: "-5", Type: core.Expense, CategoryID: "2"}, core.ErrInvalidAmount},
		{"zero amount", CreateInput{Description: "valid text", Amount: "0", Type: core.Expense, CategoryID: "2"}, core.ErrInvalidAmount},
		{"bad currency", CreateInput{Description: "valid text", Amount: "5", Type: core.Expense, CategoryID: "2", Currency: "XXX"}, core.ErrUnsupportedCurrency},
		{"bad type", CreateInput{Description: "valid text", Amount: "5", Type: "transfer", CategoryID: "2"}, core.ErrInvalidType},
		{"short description", CreateInput{Description: "ab", Amount: "5", Type: core.Expense, CategoryID: "2"}, core.ErrInvalidDescription},
		{"missing category", CreateInput{Description: "valid text", Amount: "5", Type: core.Expense, CategoryID: "999"}, core.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestTransactionService_PublishFailureDoesNotFailRequest(t *testing.T) {
	repo := testStorage(t)
	svc := NewTransactionService(repo, &fakePublisher{fail: true}, testLogger())

	tr, err := svc.Create(context.Background(), CreateInput{
		Description: "weekly groceries",
		Amount:      "10",
		Type:        core.Expense,
		CategoryID:  "2",
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("Create must survive publish failure: %v", err)
	}
	if _, err := repo.GetTransaction(context.Background(), tr.ID); err != nil {
		t.Fatalf("transaction must be saved: %v", err)
	}
}

func TestTransactionService_Delete(t *testing.T) {
	repo := testStorage(t)
	pub := &fakePublisher{}
	svc := NewTransactionService(repo, pub, testLogger())
	ctx := context.Background()

	tr, err := svc.Create(ctx, CreateInput{
		Description: "bus ticket", Amount: "3.50", Type: core.Expense, CategoryID: "3",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, tr.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, tr.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestSettingsService_Defaults(t *testing.T) {
	repo := testStorage(t)
	svc := NewSettingsService(repo)
	ctx := context.Background()

	cur, err := svc.DisplayCurrency(ctx)
	if err != nil || cur != "USD" {
		t.Fatalf("currency = %q, %v", cur, err)
	}
	lang, err := svc.Language(ctx)
	if err != nil || lang != "en" {
		t.Fatalf("language = %q, %v", lang, err)
	}

	if err := svc.SetDisplayCurrency(ctx, "TRY"); err != nil {
		t.Fatalf("SetDisplayCurrency: %v", err)
	}
	if err := svc.SetLanguage(ctx, "tr"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	cur, _ = svc.DisplayCurrency(ctx)
	lang, _ = svc.Language(ctx)
	if cur != "TRY" || lang != "tr" {
		t.Fatalf("after set: %q %q", cur, lang)
	}

	if err := svc.SetDisplayCurrency(ctx, "XXX"); err == nil {
		t.Fatal("unsupported currency must be rejected")
	}
	if err := svc.SetLanguage(ctx, "de"); err == nil {
		t.Fatal("unsupported language must be rejected")
	}
}
