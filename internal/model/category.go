package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Category classifies an expense. Values outside the fixed set are
// representable so that legacy data can flow through aggregation.
type Category string

const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryTravel         Category = "Travel"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

var categories = []Category{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBillsUtilities,
	CategoryHealthcare,
	CategoryTravel,
	CategoryEducation,
	CategoryOther,
}

// Categories returns the category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Known reports whether c is a member of the category set.
func (c Category) Known() bool {
	for _, k := range categories {
		if c == k {
			return true
		}
	}
	return false
}

// OrOther returns c if it is in the set, CategoryOther otherwise.
func (c Category) OrOther() Category {
	if c.Known() {
		return c
	}
	return CategoryOther
}

func (c Category) String() string { return string(c) }

// ParseCategory resolves user input to a category. It accepts a
// case-insensitive name or a 1-based position in Categories().
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty category")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(categories) {
			return "", fmt.Errorf("category number %d out of range 1..%d", n, len(categories))
		}
		return categories[n-1], nil
	}
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
