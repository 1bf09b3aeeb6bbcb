package expenses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/model"
)

// Header is the CSV header for expense files.
const Header = "id,date,amount,category,description,created_at"

const (
	numFields    = 6
	colID        = 0
	colDate      = 1
	colAmount    = 2
	colCategory  = 3
	colDesc      = 4
	colCreatedAt = 5
)

// ReadExpenses reads all expenses from a CSV reader. Row order is preserved.
func ReadExpenses(r io.Reader) ([]model.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var out []model.Expense
	for i, rec := range records[1:] {
		e, err := UnmarshalExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteExpenses writes expenses to w, including the header.
func WriteExpenses(w io.Writer, records []model.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range records {
		if err := cw.Write(MarshalExpense(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalExpense converts an Expense to a CSV row.
func MarshalExpense(e model.Expense) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colAmount] = e.Amount.StringFixed(2)
	row[colCategory] = string(e.Category)
	row[colDesc] = e.Description
	if !e.CreatedAt.IsZero() {
		row[colCreatedAt] = e.CreatedAt.Format(time.RFC3339)
	}
	return row
}

// UnmarshalExpense converts a CSV row to an Expense. Categories outside the
// set are folded to Other.
func UnmarshalExpense(record []string) (model.Expense, error) {
	if len(record) != numFields {
		return model.Expense{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amount.IsNegative() {
		return model.Expense{}, fmt.Errorf("negative amount %s", amount)
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339, record[colCreatedAt])
		if err != nil {
			return model.Expense{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Expense{
		ID:          record[colID],
		Amount:      amount,
		Category:    model.Category(strings.TrimSpace(record[colCategory])).OrOther(),
		Description: record[colDesc],
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}
