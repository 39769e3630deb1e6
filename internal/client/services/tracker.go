package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AleeDe/nafaverse/internal/client/models"
	"github.com/AleeDe/nafaverse/internal/client/repositories/budgets"
	"github.com/AleeDe/nafaverse/internal/client/repositories/transactions"
	"github.com/AleeDe/nafaverse/internal/logging"
	"github.com/google/uuid"
)

// NewTransaction is user input for TrackerService.AddTransaction. An empty
// Date means today.
type NewTransaction struct {
	Title    string
	Amount   float64
	Category models.Category
	Type     models.TransactionType
	Date     string
}

// TrackerService is the local income and expense tracker.
type TrackerService interface {
	AddTransaction(ctx context.Context, in NewTransaction) (models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	Transactions(ctx context.Context) ([]models.Transaction, error)
	// SetBudget replaces any existing budget for the category.
	SetBudget(ctx context.Context, category models.Category, limit float64) error
	Budgets(ctx context.Context) ([]models.Budget, error)
	BudgetStatuses(ctx context.Context) ([]models.BudgetStatus, error)
	Summary(ctx context.Context) (models.Summary, error)
	Insights(ctx context.Context) ([]string, error)
}

type trackerService struct {
	txs     transactions.Repository
	budgets budgets.Repository
	now     func() time.Time
	log     logging.Logger
}

func NewTrackerService(txs transactions.Repository, b budgets.Repository, log logging.Logger) TrackerService {
	return &trackerService{txs: txs, budgets: b, now: time.Now, log: log.With("service", "tracker")}
}

func (s *trackerService) AddTransaction(ctx context.Context, in NewTransaction) (models.Transaction, error) {
	if err := required("title", in.Title); err != nil {
		return models.Transaction{}, err
	}
	if in.Amount <= 0 {
		return models.Transaction{}, invalid("amount must be greater than zero")
	}
	cat, err := models.ParseCategory(string(in.Category))
	if err != nil {
		return models.Transaction{}, invalid("%v", err)
	}
	typ, err := models.ParseTransactionType(string(in.Type))
	if err != nil {
		return models.Transaction{}, invalid("%v", err)
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return models.Transaction{}, invalid("date %q must look like 2006-01-02", in.Date)
	}

	tx := models.Transaction{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(in.Title),
		Amount:   in.Amount,
		Category: cat,
		Type:     typ,
		Date:     date,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return models.Transaction{}, err
	}
	s.log.Debug(ctx, "transaction added", "id", tx.ID, "type", string(tx.Type))
	return tx, nil
}

func (s *trackerService) DeleteTransaction(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

func (s *trackerService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return s.txs.List(ctx)
}

func (s *trackerService) SetBudget(ctx context.Context, category models.Category, limit float64) error {
	cat, err := models.ParseCategory(string(category))
	if err != nil {
		return invalid("%v", err)
	}
	if limit <= 0 {
		return invalid("budget limit must be greater than zero")
	}
	return s.budgets.Upsert(ctx, models.Budget{Category: cat, Limit: limit})
}

func (s *trackerService) Budgets(ctx context.Context) ([]models.Budget, error) {
	return s.budgets.List(ctx)
}

func (s *trackerService) BudgetStatuses(ctx context.Context) ([]models.BudgetStatus, error) {
	txs, bs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BudgetStatuses(txs, bs), nil
}

func (s *trackerService) Summary(ctx context.Context) (models.Summary, error) {
	txs, err := s.txs.List(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	return Summarize(txs), nil
}

func (s *trackerService) Insights(ctx context.Context) ([]string, error) {
	txs, bs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Insights(txs, BudgetStatuses(txs, bs)), nil
}

func (s *trackerService) load(ctx context.Context) ([]models.Transaction, []models.Budget, error) {
	txs, err := s.txs.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	bs, err := s.budgets.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return txs, bs, nil
}
