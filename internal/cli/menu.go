package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/services"
)

const menuText = `
Expense Tracker Menu:
1. Add Expense
2. Add Category
3. View Expenses
4. View Categories
5. Exit
`

// maxLineSize bounds a single line of menu input.
const maxLineSize = 1024 * 1024

// Menu is the numbered text menu driving an ExpenseService.
type Menu struct {
	svc      *services.ExpenseService
	in       *bufio.Scanner
	out      io.Writer
	currency string
	logger   *log.Logger
}

func NewMenu(svc *services.ExpenseService, in io.Reader, out io.Writer, currency string, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Menu{
		svc:      svc,
		in:       scanner,
		out:      out,
		currency: currency,
		logger:   logger.WithComponent(log.ComponentCLI),
	}
}

// Run shows the menu until the user exits or input ends. The service is
// closed on return in every case. A read failure is returned.
func (m *Menu) Run(ctx context.Context) (runErr error) {
	closed := false
	defer func() {
		if closed {
			return
		}
		if cerr := m.svc.Close(); cerr != nil && runErr == nil {
			runErr = cerr
		}
	}()

	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			choice = "5"
		} else if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.addExpense(ctx)
		case "2":
			err = m.addCategory(ctx)
		case "3":
			err = m.viewExpenses(ctx)
		case "4":
			err = m.viewCategories(ctx)
		case "5":
			closed = true
			if err := m.svc.Close(); err != nil {
				return err
			}
			fmt.Fprintln(m.out, "Exiting Expense Tracker. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		// End of input inside an operation abandons it; the next prompt exits.
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
}

// prompt writes label and reads one line. It returns io.EOF once input is
// exhausted and the scanner's error if reading failed.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if m.in.Scan() {
		return m.in.Text(), nil
	}
	if err := m.in.Err(); err != nil {
		m.logger.Error("Failed to read input", log.FieldOperation, log.OpParse, log.FieldError, err)
		return "", fmt.Errorf("read input: %w", err)
	}
	return "", io.EOF
}

func (m *Menu) addExpense(ctx context.Context) error {
	date, err := m.prompt("Enter date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	rawAmount, err := m.prompt("Enter amount: " + m.currency)
	if err != nil {
		return err
	}
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		m.logger.WarnContext(ctx, "Rejected amount",
			log.FieldOperation, log.OpParse,
			log.FieldError, err)
		fmt.Fprintf(m.out, "Invalid amount '%s'.\n", strings.TrimSpace(rawAmount))
		return nil
	}
	category, err := m.prompt("Enter category: ")
	if err != nil {
		return err
	}
	category = strings.TrimSpace(category)

	_, created, err := m.svc.AddExpense(ctx, strings.TrimSpace(date), amount, category)
	if errors.Is(err, core.ErrEmptyCategory) {
		fmt.Fprintln(m.out, "Category name cannot be empty.")
		return nil
	}
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(m.out, "Category '%s' added.\n", category)
	}
	return nil
}

func (m *Menu) addCategory(ctx context.Context) error {
	name, err := m.prompt("Enter category: ")
	if err != nil {
		return err
	}

	res, err := m.svc.AddCategory(ctx, strings.TrimSpace(name))
	if errors.Is(err, core.ErrEmptyCategory) {
		fmt.Fprintln(m.out, "Category name cannot be empty.")
		return nil
	}
	if err != nil {
		return err
	}
	if res.Created {
		fmt.Fprintf(m.out, "Category '%s' added.\n", res.Category.Name)
	} else {
		fmt.Fprintf(m.out, "Category '%s' already exists.\n", res.Category.Name)
	}
	return nil
}

func (m *Menu) viewExpenses(ctx context.Context) error {
	totals, err := m.svc.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, FormatSummary(m.currency, totals))
	return nil
}

func (m *Menu) viewCategories(ctx context.Context) error {
	cats, err := m.svc.Categories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, FormatCategories(cats))
	return nil
}
