// Package storage persists categories, transactions and settings in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kasa/internal/core"

	_ "modernc.org/sqlite"
)

// Setting keys recognised by the settings table.
const (
	SettingDisplayCurrency = "display_currency"
	SettingLanguage        = "language"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// --- categories ---

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, budget_cents FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, icon, budget_cents FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) CountCategories(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, icon, budget_cents) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Icon, budgetArg(c.Budget))
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, icon = ?, budget_cents = ? WHERE id = ?`,
		c.Name, c.Icon, budgetArg(c.Budget), c.ID)
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.ID, err)
	}
	return requireRow(res, c.ID)
}

// DeleteCategory removes the category and every transaction referencing it in
// one transaction.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("delete category transactions: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	return tx.Commit()
}

// --- transactions ---

const transactionColumns = `id, description, amount_cents, type, category_id, currency, date_unix_ms`

// ListTransactions returns all transactions newest-first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY date_unix_ms DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, amount_cents, type, category_id, currency, date_unix_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Description, t.Amount.Cents, string(t.Type), t.CategoryID, t.Currency, t.Date.UnixMilli())
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) ListTransactionsByCategory(ctx context.Context, categoryID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE category_id = ? ORDER BY date_unix_ms DESC, id DESC`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("list transactions for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions for category %s: %w", categoryID, err)
	}
	return n, nil
}

// --- export tracking ---

// ListPendingExport returns up to limit transactions not yet exported, oldest
// first so the sheet keeps chronological order.
func (r *SQLiteRepository) ListPendingExport(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE exported = 0 ORDER BY date_unix_ms, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending export: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkExported(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET exported = 1, export_error = '' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark transaction %s exported: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) MarkExportError(ctx context.Context, id string, exportErr error) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET export_error = ? WHERE id = ?`, exportErr.Error(), id)
	if err != nil {
		return fmt.Errorf("mark transaction %s export error: %w", id, err)
	}
	return requireRow(res, id)
}

// --- settings ---

func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) PutSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("put setting %s: %w", key, err)
	}
	return nil
}

// --- scanning helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (core.Category, error) {
	var (
		c      core.Category
		budget sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Icon, &budget); err != nil {
		return core.Category{}, err
	}
	if budget.Valid {
		c.Budget = &core.Money{Cents: budget.Int64}
	}
	return c, nil
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t      core.Transaction
		typ    string
		dateMS int64
	)
	if err := row.Scan(&t.ID, &t.Description, &t.Amount.Cents, &typ, &t.CategoryID, &t.Currency, &dateMS); err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(typ)
	t.Date = time.UnixMilli(dateMS).UTC()
	return t, nil
}

func budgetArg(b *core.Money) any {
	if b == nil {
		return nil
	}
	return b.Cents
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
