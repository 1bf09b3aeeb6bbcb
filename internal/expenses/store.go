package expenses

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/model"
)

// Store holds the expenses of one session, newest first by insertion.
//
// A Store has a single owner and is not safe for concurrent use.
type Store struct {
	items []model.Expense
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts e at the front. Records are not deduplicated.
func (s *Store) Add(e model.Expense) {
	s.items = append(s.items, model.Expense{})
	copy(s.items[1:], s.items)
	s.items[0] = e
}

// Seed adds records so that the store lists them in the given order.
func (s *Store) Seed(records []model.Expense) {
	for i := len(records) - 1; i >= 0; i-- {
		s.Add(records[i])
	}
}

// Remove deletes the expense with the given ID. Removing an absent ID is a
// no-op; the result reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Total returns the sum of all amounts.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.items {
		total = total.Add(e.Amount)
	}
	return total
}

// Snapshot returns a copy of the current sequence.
func (s *Store) Snapshot() []model.Expense {
	out := make([]model.Expense, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of expenses.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns an expense by ID.
func (s *Store) Get(id string) (model.Expense, bool) {
	for _, e := range s.items {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}
