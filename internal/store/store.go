// Package store owns the in-memory transaction and budget collections and
// keeps them persisted in a kv.Store.
//
// A Store starts unloaded. Load reads both slots; afterwards every mutation
// updates memory first and then rewrites the whole affected collection.
// Mutations are serialized, so writes reach the backend in the order they
// were issued. When a write fails the in-memory collection stays
// authoritative and the slot is rewritten by the next successful save.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"spendtrack/internal/analytics"
	"spendtrack/internal/budget"
	"spendtrack/internal/core"
	"spendtrack/internal/kv"
	applog "spendtrack/internal/log"
)

const (
	DefaultTransactionsKey = "spending-tracker-transactions"
	DefaultBudgetsKey      = "spending-tracker-budgets"
)

var (
	ErrNotLoaded   = errors.New("store not loaded")
	ErrDuplicateID = errors.New("duplicate transaction id")
	ErrPersist     = errors.New("persist collection")
)

type Options struct {
	TransactionsKey string
	BudgetsKey      string
	Logger          *applog.Logger
}

type slot int

const (
	transactionsSlot slot = iota
	budgetsSlot
)

type Store struct {
	mu      sync.Mutex
	backend kv.Store
	keys    [2]string
	logger  *applog.Logger

	loaded       bool
	transactions []core.Transaction
	budgets      []core.Budget
	totalSpent   core.Money
	revision     uint64
	dirty        [2]bool
}

func New(backend kv.Store, opts Options) *Store {
	if opts.TransactionsKey == "" {
		opts.TransactionsKey = DefaultTransactionsKey
	}
	if opts.BudgetsKey == "" {
		opts.BudgetsKey = DefaultBudgetsKey
	}
	if opts.Logger == nil {
		opts.Logger = applog.New(applog.DefaultConfig())
	}
	return &Store{
		backend: backend,
		keys:    [2]string{opts.TransactionsKey, opts.BudgetsKey},
		logger:  opts.Logger.WithComponent(applog.ComponentStore),
	}
}

// Load reads both collections. Missing, unreadable or malformed slots are
// logged and start empty; Load only fails when ctx is done.
func (s *Store) Load(ctx context.Context) error {
	var (
		txs     []core.Transaction
		budgets []core.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txs = readSlot[core.Transaction](gctx, s, s.keys[transactionsSlot])
		return gctx.Err()
	})
	g.Go(func() error {
		budgets = readSlot[core.Budget](gctx, s, s.keys[budgetsSlot])
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = txs
	s.budgets = budgets
	s.loaded = true
	s.dirty = [2]bool{}
	s.revision++
	s.recomputeLocked()

	s.logger.InfoContext(ctx, "Collections loaded",
		"transactions", len(txs),
		"budgets", len(budgets))
	return nil
}

func readSlot[T any](ctx context.Context, s *Store, key string) []T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read saved collection, starting empty",
			applog.FieldKey, key, applog.FieldError, err)
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.WarnContext(ctx, "Failed to parse saved collection, starting empty",
			applog.FieldKey, key, applog.FieldError, err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Transactions returns a copy of the collection in insertion order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

// Budgets returns a copy of the budget collection.
func (s *Store) Budgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.budgets)
}

// Snapshot returns copies of both collections and the revision they belong to.
func (s *Store) Snapshot() ([]core.Transaction, []core.Budget, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions), slices.Clone(s.budgets), s.revision
}

// TotalSpent is recomputed after each mutation. It is for display only.
func (s *Store) TotalSpent() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalSpent
}

// Revision increases with every load and every applied mutation.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Get returns the transaction with id.
func (s *Store) Get(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.transactions[i], true
	}
	return core.Transaction{}, false
}

// Add appends tx. The caller provides a fresh id.
func (s *Store) Add(ctx context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.indexLocked(tx.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
	}
	s.transactions = append(s.transactions, tx)
	return s.commitLocked(ctx, transactionsSlot, applog.OpCreate, tx.ID)
}

// Update replaces the transaction carrying tx.ID. An unknown id leaves the
// collection untouched and reports changed == false without an error.
func (s *Store) Update(ctx context.Context, tx core.Transaction) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	i := s.indexLocked(tx.ID)
	if i < 0 {
		s.logger.DebugContext(ctx, "Update of unknown transaction ignored", applog.FieldID, tx.ID)
		return false, nil
	}
	s.transactions[i] = tx
	return true, s.commitLocked(ctx, transactionsSlot, applog.OpUpdate, tx.ID)
}

// Remove deletes the transaction with id. An unknown id leaves the collection
// untouched and reports changed == false without an error.
func (s *Store) Remove(ctx context.Context, id string) (changed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	i := s.indexLocked(id)
	if i < 0 {
		s.logger.DebugContext(ctx, "Removal of unknown transaction ignored", applog.FieldID, id)
		return false, nil
	}
	s.transactions = slices.Delete(s.transactions, i, i+1)
	return true, s.commitLocked(ctx, transactionsSlot, applog.OpDelete, id)
}

// SaveBudgets replaces the budgets of period with entries.
func (s *Store) SaveBudgets(ctx context.Context, entries []core.Budget, period core.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.budgets = budget.SaveBudgets(s.budgets, entries, period)
	return s.commitLocked(ctx, budgetsSlot, applog.OpSaveBudgets, period.String())
}

// Flush rewrites every collection whose last write failed.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return s.persistLocked(ctx)
}

// Dirty reports whether some collection still has to be written.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty[transactionsSlot] || s.dirty[budgetsSlot]
}

func (s *Store) commitLocked(ctx context.Context, changed slot, op, ref string) error {
	s.revision++
	s.dirty[changed] = true
	s.recomputeLocked()

	if err := s.persistLocked(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Mutation kept in memory but not saved",
			applog.FieldOperation, op, applog.FieldID, ref, applog.FieldError, err)
		return err
	}
	s.logger.DebugContext(ctx, "Mutation saved",
		applog.FieldOperation, op, applog.FieldID, ref, applog.FieldRevision, s.revision)
	return nil
}

// persistLocked writes each dirty slot in full. A slot stays dirty until a
// write succeeds.
func (s *Store) persistLocked(ctx context.Context) error {
	var errs []error
	for _, sl := range []slot{transactionsSlot, budgetsSlot} {
		if !s.dirty[sl] {
			continue
		}
		var (
			data []byte
			err  error
		)
		if sl == transactionsSlot {
			data, err = json.Marshal(s.transactions)
		} else {
			data, err = json.Marshal(s.budgets)
		}
		if err == nil {
			err = s.backend.Set(ctx, s.keys[sl], string(data))
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %w", ErrPersist, s.keys[sl], err))
			continue
		}
		s.dirty[sl] = false
	}
	return errors.Join(errs...)
}

func (s *Store) recomputeLocked() {
	s.totalSpent = analytics.Total(s.transactions)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.transactions, func(tx core.Transaction) bool { return tx.ID == id })
}
