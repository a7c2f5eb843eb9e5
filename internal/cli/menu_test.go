package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"expenses/internal/core"
	"expenses/internal/services"
	"expenses/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMenu(t *testing.T, store *memory.Store, input string) string {
	t.Helper()
	out, err := runMenuErr(store, strings.NewReader(input))
	require.NoError(t, err)
	return out
}

func runMenuErr(store *memory.Store, in io.Reader) (string, error) {
	var out bytes.Buffer
	svc := services.NewExpenseService(store, nil)
	err := NewMenu(svc, in, &out, "$", nil).Run(context.Background())
	return out.String(), err
}

// errReader yields its data, then fails with err.
type errReader struct {
	data []byte
	err  error
}

func (r *errReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestMenu_AddExpenseAndView(t *testing.T) {
	store := memory.New()
	out := runMenu(t, store, strings.Join([]string{
		"1", "2024-01-01", "10.00", "Food",
		"1", "2024-01-02", "5", "Food",
		"3",
		"5",
	}, "\n")+"\n")

	assert.Equal(t, 1, strings.Count(out, "Category 'Food' added."))
	assert.Contains(t, out, "Food: $15.00\n")
	assert.True(t, strings.HasSuffix(out, "Exiting Expense Tracker. Goodbye!\n"))

	totals, err := store.SummarizeByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.CategoryTotal{{Name: "Food", Total: 15}}, totals)
}

func TestMenu_AddCategoryTwice(t *testing.T) {
	out := runMenu(t, memory.New(), "2\nFood\n2\nFood\n4\n5\n")

	assert.Contains(t, out, "Category 'Food' added.\n")
	assert.Contains(t, out, "Category 'Food' already exists.\n")
	assert.Contains(t, out, "Categories:\nFood\n")
}

func TestMenu_CategoryWithoutExpensesOnlyListed(t *testing.T) {
	out := runMenu(t, memory.New(), "2\nTravel\n3\n4\n5\n")

	assert.NotContains(t, out, "Travel: ")
	assert.Contains(t, out, "Categories:\nTravel\n")
}

func TestMenu_InvalidInputKeepsLooping(t *testing.T) {
	store := memory.New()
	out := runMenu(t, store, "9\n1\n2024-01-01\nabc\n2\n \n5\n")

	assert.Contains(t, out, "Invalid choice. Please try again.\n")
	assert.Contains(t, out, "Invalid amount 'abc'.\n")
	assert.Contains(t, out, "Category name cannot be empty.\n")
	assert.Equal(t, 4, strings.Count(out, "Expense Tracker Menu:"))

	expenses, _ := store.ListExpenses(context.Background())
	assert.Empty(t, expenses)
}

func TestMenu_EndOfInputExits(t *testing.T) {
	out := runMenu(t, memory.New(), "4\n")

	assert.Contains(t, out, "Categories:\n")
	assert.True(t, strings.HasSuffix(out, "Exiting Expense Tracker. Goodbye!\n"))
}

func TestMenu_PromptsMatchMenu(t *testing.T) {
	out := runMenu(t, memory.New(), "1\n2024-01-15\n12.50\nFood\n5\n")

	for _, want := range []string{
		"1. Add Expense\n", "2. Add Category\n", "3. View Expenses\n",
		"4. View Categories\n", "5. Exit\n", "Enter your choice: ",
		"Enter date (YYYY-MM-DD): ", "Enter amount: $", "Enter category: ",
	} {
		assert.Contains(t, out, want)
	}
}

func TestMenu_TrimsCategoryInput(t *testing.T) {
	store := memory.New()
	out := runMenu(t, store, "2\nFood\n2\n  Food \n1\n2024-01-01\n3\n Food\n5\n")

	assert.Contains(t, out, "Category 'Food' already exists.\n")
	assert.Equal(t, 1, strings.Count(out, "Category 'Food' added."))

	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Food", cats[0].Name)
}

func TestMenu_AcceptsLongLines(t *testing.T) {
	store := memory.New()
	name := strings.Repeat("x", 70*1024)
	out := runMenu(t, store, "2\n"+name+"\n4\n5\n")

	assert.Contains(t, out, "Categories:\n"+name+"\n")
	assert.True(t, strings.HasSuffix(out, "Exiting Expense Tracker. Goodbye!\n"))
}

func TestMenu_LineTooLongIsAnError(t *testing.T) {
	store := memory.New()
	input := "2\n" + strings.Repeat("x", maxLineSize+1) + "\n4\n5\n"

	out, err := runMenuErr(store, strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
	assert.NotContains(t, out, "Goodbye!")

	cats, _ := store.ListCategories(context.Background())
	assert.Empty(t, cats)
}

func TestMenu_ReadErrorIsReturned(t *testing.T) {
	boom := errors.New("stdin closed unexpectedly")
	out, err := runMenuErr(memory.New(), &errReader{data: []byte("4\n"), err: boom})

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, out, "Categories:\n")
	assert.NotContains(t, out, "Goodbye!")
}
