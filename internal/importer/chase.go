package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/model"
)

// ChaseParser parses Chase bank checking CSV exports. Debits become
// expenses in the Other category; credits are skipped.
type ChaseParser struct {
	NewID id.Generator
	Now   func() time.Time
}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns one expense per debit, newest first.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Expense
	for i, rec := range records[1:] {
		date, amount, err := parseChaseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if !amount.IsNegative() {
			continue
		}
		out = append(out, model.Expense{
			ID:          p.NewID(),
			Amount:      amount.Neg(),
			Category:    model.CategoryOther,
			Description: rec[chaseColDesc],
			Date:        date,
			CreatedAt:   p.Now(),
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	return out, nil
}

func parseChaseRow(rec []string) (time.Time, decimal.Decimal, error) {
	date, err := time.Parse(chaseDateFormat, rec[chaseColDate])
	if err != nil {
		return time.Time{}, decimal.Decimal{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(rec[chaseColAmount])
	if err != nil {
		return time.Time{}, decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}
	return date, amount, nil
}
