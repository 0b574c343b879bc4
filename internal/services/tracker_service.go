package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"spendtrack/internal/amqp"
	"spendtrack/internal/analytics"
	"spendtrack/internal/budget"
	"spendtrack/internal/cache"
	"spendtrack/internal/core"
	applog "spendtrack/internal/log"
	"spendtrack/internal/store"
)

const (
	defaultViewCacheSize = 64
	defaultViewCacheTTL  = 5 * time.Minute
)

// ChangePublisher is notified after every mutation that reached the backend.
// *amqp.Client satisfies it.
type ChangePublisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
}

// TransactionInput holds the user-editable fields of a transaction
type TransactionInput struct {
	Amount      core.Money
	Description string
	Date        core.Date
	Category    string
}

// Dashboard bundles every derived view for one period
type Dashboard struct {
	Period     core.Period
	Revision   uint64
	Summary    core.Summary
	Monthly    []core.MonthlyTotal
	Categories []core.CategorySlice
	Comparison []core.ComparisonRow
	Insights   []analytics.Insight
}

type Options struct {
	Logger    *applog.Logger
	Publisher ChangePublisher
	CacheSize int
	CacheTTL  time.Duration
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// TrackerService validates user input, applies it to the store and serves
// derived views. Views are memoized per store revision and period, so a
// cached view always equals a fresh computation.
type TrackerService struct {
	store     *store.Store
	publisher ChangePublisher
	logger    *applog.Logger
	views     *cache.LRUCache[Dashboard]
	now       func() time.Time
	newID     func() string
}

func NewTrackerService(st *store.Store, opts Options) *TrackerService {
	if opts.Logger == nil {
		opts.Logger = applog.Discard()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultViewCacheSize
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = defaultViewCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &TrackerService{
		store:     st,
		publisher: opts.Publisher,
		logger:    opts.Logger.WithComponent(applog.ComponentService),
		views:     cache.NewLRUCache[Dashboard](opts.CacheSize, opts.CacheTTL, cache.WithClock(opts.Now)),
		now:       opts.Now,
		newID:     opts.NewID,
	}
}

// Views exposes the memoization cache so callers can register it for cleanup.
func (s *TrackerService) Views() *cache.LRUCache[Dashboard] { return s.views }

// CurrentPeriod is the calendar month of the service clock.
func (s *TrackerService) CurrentPeriod() core.Period {
	return core.PeriodOf(s.now())
}

func normalizeInput(in TransactionInput) TransactionInput {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = core.FallbackCategoryID
	}
	return in
}

// AddTransaction validates in, assigns a fresh id and creation time, and
// stores the transaction. A persistence failure is returned wrapped in
// store.ErrPersist together with the stored transaction.
func (s *TrackerService) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	in = normalizeInput(in)
	tx := core.Transaction{
		ID:          s.newID(),
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Category:    in.Category,
		CreatedAt:   s.now().UTC(),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	if err := s.store.Add(ctx, tx); err != nil {
		if errors.Is(err, store.ErrPersist) {
			return tx, err
		}
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction added",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithTransaction(tx.ID, tx.Category, tx.Amount.String()).
			ToSlice()...)
	s.publish(ctx, amqp.TransactionCreated, tx.ID)
	return tx, nil
}

// UpdateTransaction replaces the editable fields of transaction id. The id and
// creation time are kept. An unknown id reports changed == false.
func (s *TrackerService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (tx core.Transaction, changed bool, err error) {
	existing, ok := s.store.Get(id)
	if !ok {
		return core.Transaction{}, false, nil
	}
	in = normalizeInput(in)
	tx = core.Transaction{
		ID:          existing.ID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Category:    in.Category,
		CreatedAt:   existing.CreatedAt,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, false, fmt.Errorf("update transaction: %w", err)
	}

	changed, err = s.store.Update(ctx, tx)
	if !changed {
		return core.Transaction{}, false, err
	}
	if err != nil {
		return tx, true, err
	}
	s.logger.InfoContext(ctx, "Transaction updated",
		applog.NewFields().
			WithOperation(applog.OpUpdate).
			WithTransaction(tx.ID, tx.Category, tx.Amount.String()).
			ToSlice()...)
	s.publish(ctx, amqp.TransactionUpdated, tx.ID)
	return tx, true, nil
}

// DeleteTransaction removes transaction id. An unknown id reports
// changed == false.
func (s *TrackerService) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	changed, err := s.store.Remove(ctx, id)
	if !changed || err != nil {
		return changed, err
	}
	s.logger.InfoContext(ctx, "Transaction deleted", applog.FieldOperation, applog.OpDelete, applog.FieldID, id)
	s.publish(ctx, amqp.TransactionDeleted, id)
	return true, nil
}

// SaveBudgets replaces the budgets of the current period with amounts.
func (s *TrackerService) SaveBudgets(ctx context.Context, amounts map[string]core.Money) error {
	return s.SaveBudgetsFor(ctx, s.CurrentPeriod(), amounts)
}

// SaveBudgetsFor replaces the budgets of period with amounts. Zero amounts
// clear a category's budget; negative amounts are rejected.
func (s *TrackerService) SaveBudgetsFor(ctx context.Context, period core.Period, amounts map[string]core.Money) error {
	if err := period.Validate(); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}
	ids := make([]string, 0, len(amounts))
	for id, amount := range amounts {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("save budgets: %w", core.ErrEmptyCategory)
		}
		if amount.IsNegative() {
			return fmt.Errorf("save budgets %s: %w", id, core.ErrInvalidAmount)
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	entries := budget.EntriesFromAmounts(amounts, period, ids...)
	if err := s.store.SaveBudgets(ctx, entries, period); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budgets saved",
		applog.FieldOperation, applog.OpSaveBudgets,
		applog.FieldPeriod, period.String(),
		applog.FieldCount, len(entries))
	s.publish(ctx, amqp.BudgetsSaved, period.String())
	return nil
}

func (s *TrackerService) publish(ctx context.Context, kind amqp.ChangeKind, id string) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewChangeMessage(kind, id, s.store.Revision())
	if err := s.publisher.PublishChange(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish change",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldID, id,
			applog.FieldError, err)
	}
}

// Transaction returns the transaction with id.
func (s *TrackerService) Transaction(id string) (core.Transaction, bool) {
	return s.store.Get(id)
}

// Transactions returns every transaction in insertion order.
func (s *TrackerService) Transactions() []core.Transaction {
	return s.store.Transactions()
}

// Budgets returns every saved budget.
func (s *TrackerService) Budgets() []core.Budget {
	return s.store.Budgets()
}

// BudgetsFor returns the budgeted amount per category for period.
func (s *TrackerService) BudgetsFor(period core.Period) map[string]core.Money {
	return budget.ForPeriod(s.store.Budgets(), period)
}

func (s *TrackerService) TotalSpent() core.Money { return s.store.TotalSpent() }

func (s *TrackerService) Summary() core.Summary {
	return s.Dashboard(s.CurrentPeriod()).Summary
}

func (s *TrackerService) MonthlySeries() []core.MonthlyTotal {
	return s.Dashboard(s.CurrentPeriod()).Monthly
}

func (s *TrackerService) CategoryBreakdown() []core.CategorySlice {
	return s.Dashboard(s.CurrentPeriod()).Categories
}

func (s *TrackerService) BudgetComparison(period core.Period) []core.ComparisonRow {
	return s.Dashboard(period).Comparison
}

func (s *TrackerService) Insights(period core.Period) []analytics.Insight {
	return s.Dashboard(period).Insights
}

// Dashboard computes, or returns the memoized copy of, every derived view.
func (s *TrackerService) Dashboard(period core.Period) Dashboard {
	txs, budgets, rev := s.store.Snapshot()
	key := fmt.Sprintf("%d/%s", rev, period)
	if d, ok := s.views.Get(key); ok {
		return d.clone()
	}

	rows := analytics.BudgetComparison(txs, budgets, period)
	d := Dashboard{
		Period:     period,
		Revision:   rev,
		Summary:    analytics.SummaryStats(txs),
		Monthly:    analytics.GroupByMonth(txs),
		Categories: analytics.GroupByCategory(txs),
		Comparison: rows,
		Insights:   analytics.DeriveInsights(rows),
	}
	s.views.Set(key, d)
	return d.clone()
}

// Flush retries writes that failed earlier.
func (s *TrackerService) Flush(ctx context.Context) error {
	return s.store.Flush(ctx)
}

func (d Dashboard) clone() Dashboard {
	d.Summary.RecentTransactions = slices.Clone(d.Summary.RecentTransactions)
	d.Monthly = slices.Clone(d.Monthly)
	d.Categories = slices.Clone(d.Categories)
	d.Comparison = slices.Clone(d.Comparison)
	d.Insights = slices.Clone(d.Insights)
	return d
}
