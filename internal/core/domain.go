package core

import (
	"errors"
	"strings"
)

type (
	Category struct {
		ID   int64
		Name string
	}

	// Expense is stored as entered. Date follows the YYYY-MM-DD convention
	// but is not checked.
	Expense struct {
		ID         int64
		Date       string
		Amount     float64
		CategoryID int64
	}

	// CategoryTotal is the sum of all expenses recorded against one category.
	CategoryTotal struct {
		Name  string
		Total float64
	}
)

var (
	ErrEmptyCategory    = errors.New("empty category name")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// ValidateCategory rejects blank names. Names are matched exactly, so the
// name itself is not altered; input layers trim before calling.
func ValidateCategory(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}
	return nil
}
