package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const createCategory = `INSERT INTO categories (name) VALUES (?)`

func (q *Queries) CreateCategory(ctx context.Context, name string) (int64, error) {
	res, err := q.db.ExecContext(ctx, createCategory, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getCategoryID = `SELECT id FROM categories WHERE name = ?`

func (q *Queries) GetCategoryID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, getCategoryID, name).Scan(&id)
	return id, err
}

const listCategories = `SELECT id, name FROM categories ORDER BY id`

type CategoryRow struct {
	ID   int64
	Name string
}

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CategoryRow
	for rows.Next() {
		var i CategoryRow
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const createExpense = `INSERT INTO expenses (date, amount, category_id) VALUES (?, ?, ?)`

type CreateExpenseParams struct {
	Date       string
	Amount     float64
	CategoryID int64
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createExpense, arg.Date, arg.Amount, arg.CategoryID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listExpenses = `SELECT id, date, amount, category_id FROM expenses ORDER BY id`

type ExpenseRow struct {
	ID         int64
	Date       string
	Amount     float64
	CategoryID sql.NullInt64
}

func (q *Queries) ListExpenses(ctx context.Context) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ExpenseRow
	for rows.Next() {
		var i ExpenseRow
		if err := rows.Scan(&i.ID, &i.Date, &i.Amount, &i.CategoryID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getCategoryTotals = `
SELECT categories.name, SUM(expenses.amount) AS total_amount
FROM expenses
JOIN categories ON expenses.category_id = categories.id
GROUP BY categories.id, categories.name
ORDER BY categories.id`

type CategoryTotalRow struct {
	Name        string
	TotalAmount float64
}

func (q *Queries) GetCategoryTotals(ctx context.Context) ([]CategoryTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, getCategoryTotals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CategoryTotalRow
	for rows.Next() {
		var i CategoryTotalRow
		if err := rows.Scan(&i.Name, &i.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
