package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expenses/internal/cache"
	"expenses/internal/core"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const defaultCategoryCacheSize = 256

type SQLiteRepository struct {
	db         *sql.DB
	queries    *Queries
	categories *cache.LRU[string, int64]
}

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithCategoryCacheSize bounds the number of memoised category ids.
func WithCategoryCacheSize(n int) Option {
	return func(r *SQLiteRepository) {
		r.categories = cache.NewLRU[string, int64](n)
	}
}

// NewSQLiteRepository opens (or creates) the database file at dbPath and
// makes sure both tables exist.
func NewSQLiteRepository(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	// The driver would read these as the start of DSN parameters.
	if strings.ContainsAny(dbPath, "?#") {
		return nil, fmt.Errorf("database path %q must not contain '?' or '#'", dbPath)
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := dbPath + "?_pragma=foreign_keys(on)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One process, one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := EnsureSchema(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	repo := &SQLiteRepository{
		db:         db,
		queries:    New(db),
		categories: cache.NewLRU[string, int64](defaultCategoryCacheSize),
	}
	for _, opt := range opts {
		opt(repo)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddCategory inserts name unless it already exists and returns its id.
// created reports whether a new row was written.
func (r *SQLiteRepository) AddCategory(ctx context.Context, name string) (int64, bool, error) {
	id, err := r.queries.CreateCategory(ctx, name)
	if err == nil {
		r.categories.Set(name, id)
		slog.DebugContext(ctx, "Category saved to SQLite", "id", id, "name", name)
		return id, true, nil
	}
	if !isUniqueViolation(err) {
		return 0, false, fmt.Errorf("create category: %w", err)
	}

	id, err = r.FindCategoryID(ctx, name)
	if err != nil {
		return 0, false, fmt.Errorf("resolve existing category: %w", err)
	}
	slog.DebugContext(ctx, "Category already exists", "id", id, "name", name)
	return id, false, nil
}

// FindCategoryID returns the id of the category with exactly this name,
// or core.ErrCategoryNotFound.
func (r *SQLiteRepository) FindCategoryID(ctx context.Context, name string) (int64, error) {
	if id, ok := r.categories.Get(name); ok {
		return id, nil
	}

	id, err := r.queries.GetCategoryID(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, core.ErrCategoryNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get category id: %w", err)
	}

	r.categories.Set(name, id)
	return id, nil
}

// AddExpense records an expense, creating its category first if needed.
func (r *SQLiteRepository) AddExpense(ctx context.Context, date string, amount float64, category string) (core.Expense, error) {
	categoryID, err := r.FindCategoryID(ctx, category)
	if errors.Is(err, core.ErrCategoryNotFound) {
		categoryID, _, err = r.AddCategory(ctx, category)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("resolve category %q: %w", category, err)
	}

	id, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		Date:       date,
		Amount:     amount,
		CategoryID: categoryID,
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", date,
		"amount", amount,
		"category_id", categoryID)

	return core.Expense{
		ID:         id,
		Date:       date,
		Amount:     amount,
		CategoryID: categoryID,
	}, nil
}

// SummarizeByCategory totals expenses per category, ordered by category id.
// Categories without expenses are left out.
func (r *SQLiteRepository) SummarizeByCategory(ctx context.Context) ([]core.CategoryTotal, error) {
	rows, err := r.queries.GetCategoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get category totals: %w", err)
	}

	totals := make([]core.CategoryTotal, len(rows))
	for i, row := range rows {
		totals[i] = core.CategoryTotal{Name: row.Name, Total: row.TotalAmount}
	}
	return totals, nil
}

// ListCategories returns every category in creation order.
func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]core.Category, len(rows))
	for i, row := range rows {
		categories[i] = core.Category{ID: row.ID, Name: row.Name}
	}
	return categories, nil
}

// ListExpenses returns every expense in insertion order.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = core.Expense{
			ID:         row.ID,
			Date:       row.Date,
			Amount:     row.Amount,
			CategoryID: row.CategoryID.Int64,
		}
	}
	return expenses, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
}
