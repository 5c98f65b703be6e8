// Package category defines the fixed set of spend categories.
package category

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Category is one of the fixed spend categories.
type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Others        Category = "Others"
	Income        Category = "Income"
)

// All lists every category in registration order.
var All = []Category{Food, Transport, Shopping, Utilities, Entertainment, Health, Others, Income}

var ErrUnknown = errors.New("unknown category")

// Fold returns the case folded form of s used for case-insensitive comparison.
func Fold(s string) string {
	// A Caser keeps state and must not be shared between goroutines
	return cases.Fold().String(strings.TrimSpace(s))
}

// Parse returns the canonical category for s, ignoring case and surrounding
// whitespace.
func Parse(s string) (Category, error) {
	folded := Fold(s)
	for _, c := range All {
		if Fold(string(c)) == folded {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w %q, must be one of %s", ErrUnknown, strings.TrimSpace(s), strings.Join(Names(), ", "))
}

// Names returns the names of all categories.
func Names() []string {
	names := make([]string, 0, len(All))
	for _, c := range All {
		names = append(names, string(c))
	}
	return names
}

func (c Category) String() string {
	return string(c)
}
