package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"kasa/internal/amqp"
	"kasa/internal/core"
	"kasa/internal/log"
	"kasa/internal/storage"
)

type fakeTarget struct {
	appended []string
	removed  []string
	failNext bool
}

func (f *fakeTarget) Append(ctx context.Context, t core.Transaction) (string, error) {
	if f.failNext {
		f.failNext = false
		return "", errors.New("sheet unreachable")
	}
	f.appended = append(f.appended, t.ID)
	return "Transactions!A2:G2", nil
}

func (f *fakeTarget) Remove(ctx context.Context, transactionID string) error {
	f.removed = append(f.removed, transactionID)
	return nil
}

func setup(t *testing.T) (*storage.SQLiteRepository, *fakeTarget, *ExportWorker) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	target := &fakeTarget{}
	w := NewExportWorker(repo, target, target, 10, log.New(log.DefaultConfig()))
	return repo, target, w
}

func seedTransaction(t *testing.T, repo *storage.SQLiteRepository, id string) {
	t.Helper()
	err := repo.CreateTransaction(context.Background(), core.Transaction{
		ID:          id,
		Description: "test transaction",
		Amount:      core.Money{Cents: 1500},
		Type:        core.Expense,
		CategoryID:  "2",
		Currency:    "USD",
		Date:        time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
}

func TestHandleMessageSync(t *testing.T) {
	repo, target, w := setup(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t1")

	if err := w.HandleMessage(ctx, amqp.NewExportMessage("t1", amqp.ActionSync)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(target.appended) != 1 || target.appended[0] != "t1" {
		t.Fatalf("appended = %v", target.appended)
	}

	// Exported rows leave the pending set.
	pending, err := repo.ListPendingExport(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingExport: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending = %v", pending)
	}
}

func TestHandleMessageSyncForMissingTransactionRemoves(t *testing.T) {
	_, target, w := setup(t)

	if err := w.HandleMessage(context.Background(), amqp.NewExportMessage("gone", amqp.ActionSync)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(target.removed) != 1 || target.removed[0] != "gone" {
		t.Fatalf("removed = %v", target.removed)
	}
}

func TestHandleMessageDelete(t *testing.T) {
	_, target, w := setup(t)

	if err := w.HandleMessage(context.Background(), amqp.NewExportMessage("t9", amqp.ActionDelete)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if len(target.removed) != 1 || target.removed[0] != "t9" {
		t.Fatalf("removed = %v", target.removed)
	}
}

func TestHandleMessageUnknownActionDropped(t *testing.T) {
	_, target, w := setup(t)

	if err := w.HandleMessage(context.Background(), amqp.NewExportMessage("t1", "rename")); err != nil {
		t.Fatalf("unknown action must not error: %v", err)
	}
	if len(target.appended) != 0 || len(target.removed) != 0 {
		t.Fatal("unknown action must be a no-op")
	}
}

func TestProcessPendingRecordsErrorsAndContinues(t *testing.T) {
	repo, target, w := setup(t)
	ctx := context.Background()
	seedTransaction(t, repo, "t1")
	seedTransaction(t, repo, "t2")

	target.failNext = true
	n, err := w.ProcessPending(ctx)
	if err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if n != 1 {
		t.Fatalf("exported = %d, want 1", n)
	}

	// The failed row stays pending for the next sweep.
	pending, err := repo.ListPendingExport(ctx, 10)
	if err != nil {
		t.Fatalf("ListPendingExport: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %v", pending)
	}

	n, err = w.ProcessPending(ctx)
	if err != nil || n != 1 {
		t.Fatalf("retry sweep: n=%d err=%v", n, err)
	}
}
