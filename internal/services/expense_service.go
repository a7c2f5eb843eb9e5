package services

import (
	"context"
	"errors"
	"fmt"

	"expenses/internal/backend"
	"expenses/internal/core"
	"expenses/internal/log"
)

// CategoryResult reports the outcome of adding a category.
type CategoryResult struct {
	Category core.Category
	Created  bool
}

// ExpenseService validates input and logs each store operation.
type ExpenseService struct {
	store  backend.Store
	logger *log.Logger
}

func NewExpenseService(store backend.Store, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExpenseService{
		store:  store,
		logger: logger.WithComponent(log.ComponentExpense),
	}
}

// AddCategory creates the category if needed. A duplicate name is not an
// error: the existing category comes back with Created set to false.
func (s *ExpenseService) AddCategory(ctx context.Context, name string) (CategoryResult, error) {
	if err := core.ValidateCategory(name); err != nil {
		return CategoryResult{}, err
	}

	id, created, err := s.store.AddCategory(ctx, name)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add category",
			log.NewFields().WithOperation(log.OpCreate).WithError(err).WithCategory(name, 0).ToSlice()...)
		return CategoryResult{}, fmt.Errorf("add category: %w", err)
	}

	s.logger.InfoContext(ctx, "Category resolved",
		log.FieldCategory, name,
		log.FieldCategoryID, id,
		log.FieldCreated, created)

	return CategoryResult{Category: core.Category{ID: id, Name: name}, Created: created}, nil
}

// AddExpense records an expense. created reports whether the category was
// new, so callers can announce it.
func (s *ExpenseService) AddExpense(ctx context.Context, date string, amount float64, category string) (core.Expense, bool, error) {
	if err := core.ValidateCategory(category); err != nil {
		return core.Expense{}, false, err
	}

	_, err := s.store.FindCategoryID(ctx, category)
	created := errors.Is(err, core.ErrCategoryNotFound)
	if err != nil && !created {
		return core.Expense{}, false, fmt.Errorf("find category: %w", err)
	}

	e, err := s.store.AddExpense(ctx, date, amount, category)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to add expense",
			log.NewFields().WithOperation(log.OpCreate).WithExpense(date, amount, category).WithError(err).ToSlice()...)
		return core.Expense{}, false, fmt.Errorf("add expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense recorded",
		log.FieldExpenseID, e.ID,
		log.FieldDate, date,
		log.FieldAmount, amount,
		log.FieldCategory, category)

	return e, created, nil
}

// Summary returns per-category totals for categories that have expenses.
func (s *ExpenseService) Summary(ctx context.Context) ([]core.CategoryTotal, error) {
	totals, err := s.store.SummarizeByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	s.logger.DebugContext(ctx, "Summary computed", log.FieldCount, len(totals))
	return totals, nil
}

// Categories returns every category, including those without expenses.
func (s *ExpenseService) Categories(ctx context.Context) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Expenses returns every recorded expense.
func (s *ExpenseService) Expenses(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Close releases the store. The service must not be used afterwards.
func (s *ExpenseService) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	s.logger.Debug("Store closed", log.FieldOperation, log.OpShutdown)
	return nil
}
