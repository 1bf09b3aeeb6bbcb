package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/spend/internal/expenses"
	"github.com/cleared-dev/spend/internal/model"
	"github.com/cleared-dev/spend/internal/stats"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sample() []model.Expense {
	return []model.Expense{
		{ID: "5f2b8c1e-9d4a-4b7e-8f3c-2a1d6e9b0c4f", Amount: dec("30"), Category: model.CategoryTransportation, Description: "Bus pass", Date: date(2024, 3, 2)},
		{ID: "exp-0001", Amount: dec("49.5"), Category: "Pets", Description: "Kibble", Date: date(2024, 3, 1)},
	}
}

func TestList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, List(&buf, nil, DefaultOptions()))
	assert.Equal(t, "No expenses yet\nAdd your first expense to get started!\n", buf.String())
}

func TestList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, List(&buf, sample(), DefaultOptions()))

	want := "#1 [Transportation] Mar 02, 2024 (5f2b8c1e)\n" +
		"    Bus pass\n" +
		"    $30.00\n" +
		"#2 [Pets] Mar 01, 2024 (exp-0001)\n" +
		"    Kibble\n" +
		"    $49.50\n"
	assert.Equal(t, want, buf.String())
}

func TestList_CustomOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{CurrencySymbol: "€", DateFormat: "02/01/2006"}
	require.NoError(t, List(&buf, sample()[:1], opts))
	assert.Contains(t, buf.String(), "02/03/2024")
	assert.Contains(t, buf.String(), "€30.00")
}

func TestStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, stats.Compute(nil, date(2024, 3, 15)), DefaultOptions()))

	out := buf.String()
	assert.Contains(t, out, "Total Expenses  $0.00")
	assert.Contains(t, out, "0 transactions")
	assert.Regexp(t, `Top Category\s+None\s+\$0\.00`, out)
}

func TestStats(t *testing.T) {
	records := []model.Expense{
		{Amount: dec("50"), Category: model.CategoryFoodDining, Date: date(2024, 3, 1)},
		{Amount: dec("30"), Category: model.CategoryTransportation, Date: date(2024, 3, 2)},
		{Amount: dec("20"), Category: model.CategoryFoodDining, Date: date(2024, 2, 15)},
	}
	opts := DefaultOptions()
	opts.Breakdown = true

	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, stats.Compute(records, date(2024, 3, 15)), opts))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Regexp(t, `^Total Expenses\s+\$100\.00\s+3 transactions$`, lines[0])
	assert.Regexp(t, `^This Month\s+\$80\.00\s+2 transactions$`, lines[1])
	assert.Regexp(t, `^Top Category\s+Food & Dining\s+\$70\.00$`, lines[2])
	assert.Equal(t, "", strings.TrimSpace(lines[3]))
	assert.Regexp(t, `^\s+Food & Dining\s+\$70\.00\s+2 transactions$`, lines[4])
	assert.Regexp(t, `^\s+Transportation\s+\$30\.00\s+1 transaction$`, lines[5])
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sample()))

	got, err := expenses.ReadExpenses(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.CategoryOther, got[1].Category)
}

func TestCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Categories(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "1. Food & Dining", lines[0])
	assert.Equal(t, "9. Other", lines[8])
}
