package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/services"
	"github.com/AleeDe/nafaverse/internal/common"
)

// Tx handles "tx add", "tx list" and "tx delete <id>".
func (a *App) Tx(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: tx add | tx list | tx delete <id>")
		return nil
	}
	if err := a.enter(ctx, pageTracker); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		return a.addTransaction(ctx)
	case "list", "ls":
		return a.listTransactions(ctx)
	case "delete", "rm":
		if len(args) != 2 {
			a.println("Usage: tx delete <id>")
			return nil
		}
		if err := a.trackerService.DeleteTransaction(ctx, args[1]); err != nil {
			return err
		}
		a.println("Deleted.")
		return nil
	}
	a.println("Usage: tx add | tx list | tx delete <id>")
	return nil
}

func (a *App) addTransaction(ctx context.Context) error {
	var (
		in  services.NewTransaction
		err error
		s   string
	)
	if in.Title, err = GetSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Amount, err = GetFloat(a.reader, "Amount (Rs)", 0, a.out); err != nil {
		return err
	}
	if s, err = GetSimpleText(a.reader, "Type: income or expense [expense]", a.out); err != nil {
		return err
	}
	if s == "" {
		s = string(models.Expense)
	}
	in.Type = models.TransactionType(s)
	if s, err = GetSimpleText(a.reader, "Category: "+categoryList()+" [Others]", a.out); err != nil {
		return err
	}
	if s == "" {
		s = string(models.Others)
	}
	in.Category = models.Category(s)
	if in.Date, err = GetSimpleText(a.reader, "Date YYYY-MM-DD [today]", a.out); err != nil {
		return err
	}

	tx, err := a.trackerService.AddTransaction(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Added %s %s on %s (id %s)\n", strings.ToLower(string(tx.Type)), rupeesF(tx.Amount), tx.Date, tx.ID)
	return nil
}

func (a *App) listTransactions(ctx context.Context) error {
	txs, err := a.trackerService.Transactions(ctx)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		a.println("No transactions yet. Add one with 'tx add'.")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "Date\tTitle\tCategory\tAmount\tID")
	for _, tx := range txs {
		amount := rupeesF(tx.Amount)
		if tx.Type == models.Expense {
			amount = "-" + amount
		} else {
			amount = "+" + amount
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", tx.Date, tx.Title, tx.Category, amount, tx.ID)
	}
	return tw.Flush()
}

// Budget handles "budget set [category limit]" and "budget list".
func (a *App) Budget(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: budget set [category limit] | budget list")
		return nil
	}
	if err := a.enter(ctx, pageTracker); err != nil {
		return err
	}

	switch args[0] {
	case "set":
		return a.setBudget(ctx, args[1:])
	case "list", "ls":
		return a.listBudgets(ctx)
	}
	a.println("Usage: budget set [category limit] | budget list")
	return nil
}

func (a *App) setBudget(ctx context.Context, args []string) error {
	var (
		category string
		limit    float64
		err      error
	)
	if len(args) == 2 {
		category = args[0]
		if limit, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("%w: %q is not a number", common.ErrValidation, args[1])
		}
	} else {
		if category, err = GetSimpleText(a.reader, "Category: "+categoryList(), a.out); err != nil {
			return err
		}
		if limit, err = GetFloat(a.reader, "Monthly limit (Rs)", 0, a.out); err != nil {
			return err
		}
	}

	if err := a.trackerService.SetBudget(ctx, models.Category(category), limit); err != nil {
		return err
	}
	a.println("Budget saved.")
	return nil
}

func (a *App) listBudgets(ctx context.Context) error {
	statuses, err := a.trackerService.BudgetStatuses(ctx)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		a.println("No budgets yet. Set one with 'budget set'.")
		return nil
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "Category\tSpent\tLimit\tUsed\tStatus")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%s\n", s.Category, rupeesF(s.Spent), rupeesF(s.Limit), s.Percentage, s.Status)
	}
	return tw.Flush()
}

// Summary prints totals, spending per category and the last seven days.
func (a *App) Summary(ctx context.Context) error {
	if err := a.enter(ctx, pageTracker); err != nil {
		return err
	}
	s, err := a.trackerService.Summary(ctx)
	if err != nil {
		return err
	}

	tw := newTable(a.out)
	fmt.Fprintf(tw, "Income:\t%s\n", rupeesF(s.TotalIncome))
	fmt.Fprintf(tw, "Expenses:\t%s\n", rupeesF(s.TotalExpenses))
	fmt.Fprintf(tw, "Balance:\t%s\n", rupeesF(s.Balance))
	if len(s.ByCategory) > 0 {
		fmt.Fprintln(tw, "\t")
		for _, c := range s.ByCategory {
			fmt.Fprintf(tw, "%s\t%s\n", c.Category, rupeesF(c.Amount))
		}
	}
	if len(s.Daily) > 0 {
		fmt.Fprintln(tw, "\t")
		fmt.Fprintln(tw, "Date\tIncome\tExpense")
		for _, d := range s.Daily {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Date, rupeesF(d.Income), rupeesF(d.Expense))
		}
	}
	return tw.Flush()
}

func (a *App) Insights(ctx context.Context) error {
	if err := a.enter(ctx, pageTracker); err != nil {
		return err
	}
	lines, err := a.trackerService.Insights(ctx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		a.println(" • " + l)
	}
	return nil
}

func categoryList() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
