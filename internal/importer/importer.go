package importer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/spend/internal/expenses"
	"github.com/cleared-dev/spend/internal/id"
	"github.com/cleared-dev/spend/internal/model"
)

// Parser converts an external CSV file into expenses, newest first.
type Parser interface {
	Parse(r io.Reader) ([]model.Expense, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Parse looks up format and runs its parser.
func (r *Registry) Parse(format string, src io.Reader) ([]model.Expense, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown import format %q (have %s)", format, strings.Join(r.Formats(), ", "))
	}
	return p.Parse(src)
}

// DefaultRegistry returns a registry with all built-in parsers. newID and
// now stamp records that arrive without an ID or creation time.
func DefaultRegistry(newID id.Generator, now func() time.Time) *Registry {
	r := NewRegistry()
	r.Register(&SpendParser{NewID: newID, Now: now})
	r.Register(&ChaseParser{NewID: newID, Now: now})
	return r
}

// SpendParser reads the native expense CSV.
type SpendParser struct {
	NewID id.Generator
	Now   func() time.Time
}

// Format returns the parser name.
func (p *SpendParser) Format() string { return "spend" }

// Parse reads expenses, filling in missing IDs and creation times. Rows keep
// file order; duplicate IDs are rejected.
func (p *SpendParser) Parse(r io.Reader) ([]model.Expense, error) {
	records, err := expenses.ReadExpenses(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	for i := range records {
		e := &records[i]
		if e.ID == "" {
			e.ID = p.NewID()
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("row %d: duplicate id %q", i+2, e.ID)
		}
		seen[e.ID] = true
		if e.CreatedAt.IsZero() {
			e.CreatedAt = p.Now()
		}
	}
	return records, nil
}
