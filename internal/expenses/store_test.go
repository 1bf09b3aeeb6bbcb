package expenses

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/spend/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func expense(id, amount string) model.Expense {
	return model.Expense{
		ID:          id,
		Amount:      dec(amount),
		Category:    model.CategoryFoodDining,
		Description: "lunch " + id,
		Date:        date(2024, 3, 1),
	}
}

func ids(records []model.Expense) []string {
	out := make([]string, len(records))
	for i, e := range records {
		out[i] = e.ID
	}
	return out
}

func TestStore_Empty(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Total().IsZero())
	assert.Empty(t, s.Snapshot())
}

func TestStore_AddPrepends(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "1"))
	s.Add(expense("b", "2"))
	s.Add(expense("c", "3"))

	assert.Equal(t, []string{"c", "b", "a"}, ids(s.Snapshot()))
	assert.Equal(t, 3, s.Len())
}

func TestStore_AddNoDedup(t *testing.T) {
	s := NewStore()
	e1 := expense("a", "5")
	e2 := e1
	e2.ID = "b"
	s.Add(e1)
	s.Add(e2)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Total().Equal(dec("10")))
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "1"))
	s.Add(expense("b", "2"))
	s.Add(expense("c", "3"))

	assert.True(t, s.Remove("b"))
	assert.Equal(t, []string{"c", "a"}, ids(s.Snapshot()))
	assert.True(t, s.Total().Equal(dec("4")))
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "1"))
	s.Add(expense("b", "2"))
	before := s.Snapshot()

	assert.False(t, s.Remove("zzz"))
	assert.Equal(t, before, s.Snapshot())

	empty := NewStore()
	assert.False(t, empty.Remove("a"))
	assert.Equal(t, 0, empty.Len())
}

func TestStore_AddRemoveRoundTrip(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "12.50"))
	s.Add(expense("b", "7.25"))
	before := s.Snapshot()
	beforeTotal := s.Total()

	r := expense("new", "99.99")
	s.Add(r)
	require.Equal(t, 3, s.Len())
	s.Remove(r.ID)

	assert.Equal(t, before, s.Snapshot())
	assert.True(t, beforeTotal.Equal(s.Total()))
}

func TestStore_TotalOrderInvariant(t *testing.T) {
	amounts := []string{"0.10", "0.20", "0.30", "19.99", "0"}

	forward := NewStore()
	for i, a := range amounts {
		forward.Add(expense(string(rune('a'+i)), a))
	}
	backward := NewStore()
	for i := len(amounts) - 1; i >= 0; i-- {
		backward.Add(expense(string(rune('a'+i)), amounts[i]))
	}

	assert.Equal(t, "20.59", forward.Total().StringFixed(2))
	assert.True(t, forward.Total().Equal(backward.Total()))
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "1"))

	snap := s.Snapshot()
	snap[0].ID = "mutated"

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	s.Add(expense("a", "1"))

	e, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "lunch a", e.Description)

	_, ok = s.Get("b")
	assert.False(t, ok)
}

func TestStore_SeedKeepsOrder(t *testing.T) {
	s := NewStore()
	s.Seed([]model.Expense{expense("newest", "1"), expense("middle", "2"), expense("oldest", "3")})
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids(s.Snapshot()))

	s.Add(expense("later", "4"))
	assert.Equal(t, "later", s.Snapshot()[0].ID)
}
