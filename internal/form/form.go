// Package form turns raw user input into expense records. It is the only
// place that validates expenses; the store trusts what it is given.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/model"
)

var (
	ErrMissingInformation = errors.New("missing information")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidDate        = errors.New("invalid date")
)

// Draft holds the fields as the user typed them.
type Draft struct {
	Amount      string `validate:"required"`
	Category    string `validate:"required"`
	Description string `validate:"required"`
	Date        string // YYYY-MM-DD; empty means today
}

// MissingFieldsError lists required fields left blank, in form order.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is makes the error match ErrMissingInformation.
func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrMissingInformation
}

// Builder validates drafts and stamps new records with an ID and creation time.
type Builder struct {
	newID    id.Generator
	now      func() time.Time
	validate *validator.Validate
}

// NewBuilder creates a Builder. A nil generator defaults to UUIDs and a nil
// clock to time.Now.
func NewBuilder(newID id.Generator, now func() time.Time) *Builder {
	if newID == nil {
		newID = id.NewUUID
	}
	if now == nil {
		now = time.Now
	}
	return &Builder{
		newID:    newID,
		now:      now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Build validates d and returns a new expense.
func (b *Builder) Build(d Draft) (model.Expense, error) {
	d = Draft{
		Amount:      strings.TrimSpace(d.Amount),
		Category:    strings.TrimSpace(d.Category),
		Description: strings.TrimSpace(d.Description),
		Date:        strings.TrimSpace(d.Date),
	}

	if err := b.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return model.Expense{}, fmt.Errorf("validating draft: %w", err)
		}
		missing := &MissingFieldsError{}
		for _, fe := range verrs {
			missing.Fields = append(missing.Fields, strings.ToLower(fe.Field()))
		}
		return model.Expense{}, missing
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil {
		return model.Expense{}, err
	}

	category, err := model.ParseCategory(d.Category)
	if err != nil {
		return model.Expense{}, fmt.Errorf("%w: %w", ErrUnknownCategory, err)
	}

	now := b.now()
	date := model.CivilDate(now)
	if d.Date != "" {
		date, err = time.Parse(model.DateFormat, d.Date)
		if err != nil {
			return model.Expense{}, fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, d.Date)
		}
	}

	return model.Expense{
		ID:          b.newID(),
		Amount:      amount,
		Category:    category,
		Description: d.Description,
		Date:        date,
		CreatedAt:   now,
	}, nil
}

// ParseAmount parses a non-negative decimal amount. A leading currency
// sign "$" is allowed.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	return amount, nil
}
