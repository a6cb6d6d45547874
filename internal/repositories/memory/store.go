// Package memory provides an in-process ledger store with optimistic
// concurrency control. Transactions buffer their writes and record the
// version of every row and table they read; commit fails with a transaction
// conflict when any of those versions moved in the meantime.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
)

type row[T any] struct {
	value   T
	version uint64
}

type table[T any] struct {
	name    string
	rows    map[string]row[T]
	version uint64 // bumped once per commit that writes to the table
	clone   func(T) T
}

func newTable[T any](name string, clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{name: name, rows: make(map[string]row[T]), clone: clone}
}

type pending[T any] struct {
	value   T
	deleted bool
	created bool
}

// txTable is one transaction's view of a table.
type txTable[T any] struct {
	mu          *sync.RWMutex
	base        *table[T]
	reads       map[string]uint64
	scanned     bool
	scanVersion uint64
	writes      map[string]pending[T]
	order       []string
}

func newTxTable[T any](mu *sync.RWMutex, base *table[T]) *txTable[T] {
	return &txTable[T]{
		mu:     mu,
		base:   base,
		reads:  make(map[string]uint64),
		writes: make(map[string]pending[T]),
	}
}

func (t *txTable[T]) get(id string) (T, bool) {
	if w, ok := t.writes[id]; ok {
		if w.deleted {
			var zero T
			return zero, false
		}
		return t.base.clone(w.value), true
	}

	t.mu.RLock()
	r, ok := t.base.rows[id]
	t.mu.RUnlock()

	if _, seen := t.reads[id]; !seen {
		t.reads[id] = r.version
	}
	if !ok {
		var zero T
		return zero, false
	}
	return t.base.clone(r.value), true
}

// scan returns every live row visible to the transaction, ordered by key.
func (t *txTable[T]) scan() []T {
	t.mu.RLock()
	if !t.scanned {
		t.scanned = true
		t.scanVersion = t.base.version
	}
	merged := make(map[string]T, len(t.base.rows))
	for id, r := range t.base.rows {
		merged[id] = r.value
	}
	t.mu.RUnlock()

	for id, w := range t.writes {
		if w.deleted {
			delete(merged, id)
			continue
		}
		merged[id] = w.value
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.base.clone(merged[id]))
	}
	return out
}

func (t *txTable[T]) put(id string, value T, created bool) {
	prev, exists := t.writes[id]
	if !exists {
		t.order = append(t.order, id)
	}
	t.writes[id] = pending[T]{value: t.base.clone(value), created: created || (exists && prev.created)}
}

func (t *txTable[T]) remove(id string) {
	if _, exists := t.writes[id]; !exists {
		t.order = append(t.order, id)
	}
	t.writes[id] = pending[T]{deleted: true}
}

// validate must be called with the store's write lock held.
func (t *txTable[T]) validate() error {
	if t.scanned && t.base.version != t.scanVersion {
		return fmt.Errorf("%s changed since it was scanned", t.base.name)
	}
	for id, seen := range t.reads {
		if t.base.rows[id].version != seen {
			return fmt.Errorf("%s row %s changed since it was read", t.base.name, id)
		}
	}
	return nil
}

// apply must be called with the store's write lock held.
func (t *txTable[T]) apply(clock *uint64) {
	if len(t.order) == 0 {
		return
	}
	for _, id := range t.order {
		w := t.writes[id]
		if w.deleted {
			delete(t.base.rows, id)
			continue
		}
		*clock++
		t.base.rows[id] = row[T]{value: w.value, version: *clock}
	}
	t.base.version++
}

// Store holds every ledger table in memory.
type Store struct {
	mu         sync.RWMutex
	clock      uint64
	students   *table[domain.Student]
	incomes    *table[domain.Income]
	expenses   *table[domain.Expense]
	payouts    *table[domain.Payout]
	reports    *table[domain.Report]
	activities *table[domain.Activity]
	receipts   map[string]string // receipt id -> root income id
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		students:   newTable("students", cloneStudent),
		incomes:    newTable[domain.Income]("incomes", nil),
		expenses:   newTable[domain.Expense]("expenses", nil),
		payouts:    newTable("payouts", clonePayout),
		reports:    newTable("payout_reports", cloneReport),
		activities: newTable[domain.Activity]("activities", nil),
		receipts:   make(map[string]string),
	}
}

type txState struct {
	store      *Store
	students   *txTable[domain.Student]
	incomes    *txTable[domain.Income]
	expenses   *txTable[domain.Expense]
	payouts    *txTable[domain.Payout]
	reports    *txTable[domain.Report]
	activities *txTable[domain.Activity]
}

func (s *Store) begin() *txState {
	return &txState{
		store:      s,
		students:   newTxTable(&s.mu, s.students),
		incomes:    newTxTable(&s.mu, s.incomes),
		expenses:   newTxTable(&s.mu, s.expenses),
		payouts:    newTxTable(&s.mu, s.payouts),
		reports:    newTxTable(&s.mu, s.reports),
		activities: newTxTable(&s.mu, s.activities),
	}
}

// receiptTaken reports whether a root income with the receipt exists either
// in the store or in the transaction's own buffered writes.
func (tx *txState) receiptTaken(receiptID string) bool {
	for _, w := range tx.incomes.writes {
		if w.created && !w.deleted && w.value.ParentIncomeID == nil && w.value.ReceiptID == receiptID {
			return true
		}
	}
	tx.store.mu.RLock()
	_, taken := tx.store.receipts[receiptID]
	tx.store.mu.RUnlock()
	return taken
}

func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	checks := []func() error{
		tx.students.validate,
		tx.incomes.validate,
		tx.expenses.validate,
		tx.payouts.validate,
		tx.reports.validate,
		tx.activities.validate,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return apperrors.NewTxConflictError("memory store: commit aborted", err)
		}
	}

	for _, id := range tx.incomes.order {
		w := tx.incomes.writes[id]
		if !w.created || w.deleted || w.value.ParentIncomeID != nil {
			continue
		}
		if owner, taken := s.receipts[w.value.ReceiptID]; taken && owner != id {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateReceipt, w.value.ReceiptID)
		}
	}

	tx.students.apply(&s.clock)
	tx.incomes.apply(&s.clock)
	tx.expenses.apply(&s.clock)
	tx.payouts.apply(&s.clock)
	tx.reports.apply(&s.clock)
	tx.activities.apply(&s.clock)

	for _, id := range tx.incomes.order {
		w := tx.incomes.writes[id]
		if w.created && !w.deleted && w.value.ParentIncomeID == nil {
			s.receipts[w.value.ReceiptID] = id
		}
	}
	return nil
}

// runner executes a unit of repository work against a transaction view.
type runner func(fn func(tx *txState) error) error

func (s *Store) autocommit(fn func(tx *txState) error) error {
	tx := s.begin()
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty() {
		return nil
	}
	return s.commit(tx)
}

func (tx *txState) dirty() bool {
	return len(tx.students.order)+len(tx.incomes.order)+len(tx.expenses.order)+
		len(tx.payouts.order)+len(tx.reports.order)+len(tx.activities.order) > 0
}

func bound(tx *txState) runner {
	return func(fn func(tx *txState) error) error { return fn(tx) }
}

// WithinTx runs fn against a fresh transaction view and commits its writes
// atomically. Nothing is written when fn returns an error.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state := s.begin()
	run := bound(state)
	repos := portsrepo.TxRepositories{
		Students:   &studentRepository{run: run},
		Incomes:    &incomeRepository{run: run},
		Expenses:   &expenseRepository{run: run},
		Payouts:    &payoutRepository{run: run},
		Activities: &activityRepository{run: run},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return s.commit(state)
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// NewRepositoryProvider wires a store into the repository ports. Calls made
// through the non-transactional repositories commit immediately.
func NewRepositoryProvider(store *Store) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		StudentRepo:  &studentRepository{run: store.autocommit},
		IncomeRepo:   &incomeRepository{run: store.autocommit},
		ExpenseRepo:  &expenseRepository{run: store.autocommit},
		PayoutRepo:   &payoutRepository{run: store.autocommit},
		ActivityRepo: &activityRepository{run: store.autocommit},
		TxManager:    store,
	}
}

func cloneStudent(s domain.Student) domain.Student {
	s.Subjects = append([]domain.SubjectShare(nil), s.Subjects...)
	return s
}

func clonePayout(p domain.Payout) domain.Payout {
	p.ConsumedIncomeIDs = append([]string(nil), p.ConsumedIncomeIDs...)
	return p
}

func cloneReport(r domain.Report) domain.Report {
	lines := make([]domain.ReportLine, len(r.StudentBreakdown))
	for i, line := range r.StudentBreakdown {
		line.IncomeIDs = append([]string(nil), line.IncomeIDs...)
		lines[i] = line
	}
	r.StudentBreakdown = lines
	return r
}
