package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for transaction dates.
const DateLayout = "2006-01-02"

type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type Category string

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Shopping  Category = "Shopping"
	Education Category = "Education"
	Bills     Category = "Bills"
	Others    Category = "Others"
)

// Categories lists every category in display order.
var Categories = []Category{Food, Transport, Shopping, Education, Bills, Others}

// ParseCategory accepts a category name in any letter case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ParseTransactionType accepts Income or Expense in any letter case.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is one entry of the local expense tracker.
type Transaction struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   float64         `json:"amount"`
	Category Category        `json:"category"`
	Type     TransactionType `json:"type"`
	Date     string          `json:"date"`
}

// Day parses Date.
func (t Transaction) Day() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

// Budget is the spending limit for one category.
type Budget struct {
	Category Category `json:"category"`
	Limit    float64  `json:"limit"`
}

type BudgetState string

const (
	BudgetSafe    BudgetState = "safe"
	BudgetWarning BudgetState = "warning"
	BudgetDanger  BudgetState = "danger"
)

// BudgetStatus compares a budget against what was spent in its category.
type BudgetStatus struct {
	Category   Category
	Spent      float64
	Limit      float64
	Percentage float64
	Status     BudgetState
}

// DailyTotal aggregates one calendar day.
type DailyTotal struct {
	Date    string
	Income  float64
	Expense float64
}

// CategoryTotal is the expense sum for a category.
type CategoryTotal struct {
	Category Category
	Amount   float64
}

// Summary is the dashboard roll-up of the tracker.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	Balance       float64
	ByCategory    []CategoryTotal
	Daily         []DailyTotal
}
