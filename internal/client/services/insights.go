package services

import (
	"fmt"
	"sort"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/shopspring/decimal"
)

const (
	budgetWarningPct = 80
	budgetDangerPct  = 100
	maxInsights      = 3
	summaryDays      = 7
)

var categoryEmoji = map[models.Category]string{
	models.Food:      "🍔",
	models.Transport: "🚗",
	models.Shopping:  "🛍️",
	models.Education: "📚",
	models.Bills:     "💡",
	models.Others:    "📦",
}

func emoji(c models.Category) string {
	if e, ok := categoryEmoji[c]; ok {
		return e
	}
	return "📊"
}

type totals struct {
	income     decimal.Decimal
	expense    decimal.Decimal
	byCategory map[models.Category]decimal.Decimal
}

func sumTransactions(txs []models.Transaction) totals {
	t := totals{byCategory: make(map[models.Category]decimal.Decimal)}
	for _, tx := range txs {
		amt := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.Income {
			t.income = t.income.Add(amt)
			continue
		}
		t.expense = t.expense.Add(amt)
		t.byCategory[tx.Category] = t.byCategory[tx.Category].Add(amt)
	}
	return t
}

// BudgetStatuses compares every budget with the expenses of its category,
// in category display order.
func BudgetStatuses(txs []models.Transaction, budgets []models.Budget) []models.BudgetStatus {
	t := sumTransactions(txs)
	limits := make(map[models.Category]float64, len(budgets))
	for _, b := range budgets {
		limits[b.Category] = b.Limit
	}

	var out []models.BudgetStatus
	for _, c := range models.Categories {
		limit, ok := limits[c]
		if !ok {
			continue
		}
		spent := t.byCategory[c]
		pct := decimal.Zero
		if limit > 0 {
			pct = spent.Div(decimal.NewFromFloat(limit)).Mul(decimal.NewFromInt(100))
		}

		st := models.BudgetSafe
		switch {
		case pct.GreaterThanOrEqual(decimal.NewFromInt(budgetDangerPct)):
			st = models.BudgetDanger
		case pct.GreaterThanOrEqual(decimal.NewFromInt(budgetWarningPct)):
			st = models.BudgetWarning
		}

		out = append(out, models.BudgetStatus{
			Category:   c,
			Spent:      spent.InexactFloat64(),
			Limit:      limit,
			Percentage: pct.InexactFloat64(),
			Status:     st,
		})
	}
	return out
}

// Summarize rolls the transactions up for the dashboard. Daily holds the
// latest seven dates that have entries, oldest first.
func Summarize(txs []models.Transaction) models.Summary {
	t := sumTransactions(txs)

	s := models.Summary{
		TotalIncome:   t.income.InexactFloat64(),
		TotalExpenses: t.expense.InexactFloat64(),
		Balance:       t.income.Sub(t.expense).InexactFloat64(),
	}
	for _, c := range models.Categories {
		if v, ok := t.byCategory[c]; ok && v.IsPositive() {
			s.ByCategory = append(s.ByCategory, models.CategoryTotal{Category: c, Amount: v.InexactFloat64()})
		}
	}

	type day struct{ income, expense decimal.Decimal }
	days := make(map[string]*day)
	for _, tx := range txs {
		d, ok := days[tx.Date]
		if !ok {
			d = &day{}
			days[tx.Date] = d
		}
		amt := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.Income {
			d.income = d.income.Add(amt)
		} else {
			d.expense = d.expense.Add(amt)
		}
	}
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > summaryDays {
		dates = dates[len(dates)-summaryDays:]
	}
	for _, date := range dates {
		d := days[date]
		s.Daily = append(s.Daily, models.DailyTotal{
			Date:    date,
			Income:  d.income.InexactFloat64(),
			Expense: d.expense.InexactFloat64(),
		})
	}
	return s
}

// Insights returns at most three short observations: the top spending
// category, budget alerts, then the savings rate.
func Insights(txs []models.Transaction, statuses []models.BudgetStatus) []string {
	t := sumTransactions(txs)
	if !hasExpense(txs) {
		return []string{"Start tracking your expenses to get insights!"}
	}

	var out []string

	ranked := make([]models.Category, 0, len(models.Categories))
	for _, c := range models.Categories {
		if t.byCategory[c].IsPositive() {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.byCategory[ranked[i]].GreaterThan(t.byCategory[ranked[j]])
	})
	if len(ranked) > 0 {
		out = append(out, fmt.Sprintf("You spent the most on %s %s", ranked[0], emoji(ranked[0])))
	}

	for _, st := range statuses {
		switch {
		case st.Status == models.BudgetSafe && st.Spent > 0:
			out = append(out, fmt.Sprintf("You're within your %s budget %s", st.Category, emoji(st.Category)))
		case st.Status == models.BudgetWarning:
			out = append(out, fmt.Sprintf("⚠️ Getting close to your %s limit", st.Category))
		case st.Status == models.BudgetDanger:
			out = append(out, fmt.Sprintf("🚨 You've exceeded your %s budget!", st.Category))
		}
	}

	if t.income.IsPositive() && t.expense.IsPositive() {
		rate := t.income.Sub(t.expense).Div(t.income).Mul(decimal.NewFromInt(100))
		switch {
		case rate.GreaterThan(decimal.NewFromInt(20)):
			out = append(out, "💰 Great job saving money!")
		case rate.IsNegative():
			out = append(out, "📉 You're spending more than you earn")
		}
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

func hasExpense(txs []models.Transaction) bool {
	for _, tx := range txs {
		if tx.Type == models.Expense {
			return true
		}
	}
	return false
}
