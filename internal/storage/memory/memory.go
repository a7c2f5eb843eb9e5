// Package memory keeps categories and expenses in process memory.
// Nothing survives the process.
package memory

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"expenses/internal/core"
)

type Store struct {
	mu       sync.Mutex
	cats     []core.Category
	byName   map[string]int64
	expenses []core.Expense
}

// New returns a store holding the given categories, in order, without duplicates.
func New(categories ...string) *Store {
	s := &Store{byName: make(map[string]int64)}
	for _, name := range dedupe(categories) {
		s.insertCategory(name)
	}
	return s
}

// NewFromFile seeds the store from a file with one category per line.
// A missing or unreadable file yields an empty store.
func NewFromFile(path string) *Store {
	if path == "" {
		return New()
	}
	return New(readLines(path)...)
}

func (s *Store) AddCategory(_ context.Context, name string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byName[name]; ok {
		return id, false, nil
	}
	return s.insertCategory(name), true, nil
}

func (s *Store) FindCategoryID(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byName[name]; ok {
		return id, nil
	}
	return 0, core.ErrCategoryNotFound
}

func (s *Store) AddExpense(_ context.Context, date string, amount float64, category string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[category]
	if !ok {
		id = s.insertCategory(category)
	}
	e := core.Expense{
		ID:         int64(len(s.expenses) + 1),
		Date:       date,
		Amount:     amount,
		CategoryID: id,
	}
	s.expenses = append(s.expenses, e)
	return e, nil
}

// SummarizeByCategory totals expenses per category in category id order.
func (s *Store) SummarizeByCategory(_ context.Context) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[int64]float64)
	for _, e := range s.expenses {
		sums[e.CategoryID] += e.Amount
	}
	var out []core.CategoryTotal
	for _, c := range s.cats {
		if total, ok := sums[c.ID]; ok {
			out = append(out, core.CategoryTotal{Name: c.Name, Total: total})
		}
	}
	return out, nil
}

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *Store) Close() error { return nil }

// insertCategory must be called with mu held.
func (s *Store) insertCategory(name string) int64 {
	id := int64(len(s.cats) + 1)
	s.cats = append(s.cats, core.Category{ID: id, Name: name})
	s.byName[name] = id
	return id
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
