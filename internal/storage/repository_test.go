package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"expenses/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, opts ...Option) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "expenses.db")
	repo, err := NewSQLiteRepository(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func tableCount(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestNewSQLiteRepository_CreatesSchema(t *testing.T) {
	repo, _ := newTestRepo(t)

	assert.Equal(t, 1, tableCount(t, repo.db, "categories"))
	assert.Equal(t, 1, tableCount(t, repo.db, "expenses"))
}

func TestNewSQLiteRepository_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)

	_, err := repo.AddExpense(ctx, "2024-01-15", 12.50, "Food")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// Applying the schema again on an initialised file changes nothing.
	require.NoError(t, EnsureSchema(path))

	reopened, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, 1, tableCount(t, reopened.db, "categories"))
	assert.Equal(t, 1, tableCount(t, reopened.db, "expenses"))

	totals, err := reopened.SummarizeByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.CategoryTotal{{Name: "Food", Total: 12.50}}, totals)
}

func TestNewSQLiteRepository_RejectsDSNCharacters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"expenses.db?mode=ro", "a#b.db"} {
		_, err := NewSQLiteRepository(filepath.Join(dir, name))
		require.Error(t, err, name)
		assert.Contains(t, err.Error(), "must not contain")
		assert.NoFileExists(t, filepath.Join(dir, "expenses.db"))
		assert.NoFileExists(t, filepath.Join(dir, "a"))
	}
}

func TestAddCategory_DuplicateResolvesToExistingRow(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	id, created, err := repo.AddCategory(ctx, "Food")
	require.NoError(t, err)
	require.True(t, created)

	// Drop the memoised id so the duplicate path hits the unique constraint.
	repo.categories.Purge()

	again, created, err := repo.AddCategory(ctx, "Food")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	var rows int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM categories WHERE name = ?`, "Food").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestFindCategoryID_UsesCache(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t, WithCategoryCacheSize(1))

	food, _, err := repo.AddCategory(ctx, "Food")
	require.NoError(t, err)
	_, _, err = repo.AddCategory(ctx, "Travel")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.categories.Len())

	// Food was evicted and must come back from the database.
	got, err := repo.FindCategoryID(ctx, "Food")
	require.NoError(t, err)
	assert.Equal(t, food, got)
}

func TestAddExpense_StoresForeignKey(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	e, err := repo.AddExpense(ctx, "2024-01-01", 10, "Food")
	require.NoError(t, err)

	var categoryID int64
	require.NoError(t, repo.db.QueryRow(`SELECT category_id FROM expenses WHERE id = ?`, e.ID).Scan(&categoryID))
	assert.Equal(t, e.CategoryID, categoryID)

	_, err = repo.db.Exec(`INSERT INTO expenses (date, amount, category_id) VALUES ('2024-01-01', 1, 9999)`)
	assert.Error(t, err, "foreign keys should be enforced")
}

func TestClose_RejectsFurtherOperations(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.Close())

	_, err := repo.ListCategories(ctx)
	assert.Error(t, err)
	_, err = repo.AddExpense(ctx, "2024-01-01", 1, "Food")
	assert.Error(t, err)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(sql.ErrNoRows))
}
