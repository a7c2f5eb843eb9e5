package backend

import (
	"context"

	"expenses/internal/core"
)

// Store is the expense store: durable categories and expenses with
// create, read and aggregate operations.
type Store interface {
	// AddCategory inserts name if absent and returns its id either way.
	AddCategory(ctx context.Context, name string) (id int64, created bool, err error)

	// FindCategoryID returns core.ErrCategoryNotFound when name is unknown.
	FindCategoryID(ctx context.Context, name string) (int64, error)

	// AddExpense resolves or creates the category, then records the expense.
	AddExpense(ctx context.Context, date string, amount float64, category string) (core.Expense, error)

	SummarizeByCategory(ctx context.Context) ([]core.CategoryTotal, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)

	Close() error
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath      string
	CategoryCacheSize int

	// Memory backend specific
	SeedCategoriesFile string
}

// Type represents the type of backend
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
