// Package types implements value types shared across the ledger.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Month is a calendar month in a specific year and location.
//
// The underlying time is always the first instant of the month.
type Month time.Time

// NewMonth returns a new Month in UTC.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// ParseMonth parses a "YYYY-MM" string in the given location.
func ParseMonth(s string, loc *time.Location) (Month, error) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), loc)
	if err != nil {
		return Month{}, fmt.Errorf("month must be formatted as YYYY-MM: %w", err)
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON encodes the month as "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM" or a full RFC3339 timestamp. Everything
// except the year and month is discarded.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	pattern := time.RFC3339
	if len(value) == len("2006-01") {
		pattern = "2006-01"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*m = MonthOf(t)
	return nil
}

// Scan writes the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = Month(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Start is the first instant of the month.
func (m Month) Start() time.Time {
	return time.Time(m)
}

// End is the first instant of the following month.
func (m Month) End() time.Time {
	return time.Time(m.AddDate(0, 1))
}

// Days is the number of days in the month.
func (m Month) Days() int {
	return m.End().AddDate(0, 0, -1).Day()
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	t = t.In(time.Time(m).Location())
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return m.String() == n.String()
}

// ElapsedFraction returns the share of the month that has passed at now,
// counted in whole days: day-of-month / days-in-month.
//
// Months entirely in the past return 1, months in the future return 0.
func (m Month) ElapsedFraction(now time.Time) decimal.Decimal {
	now = now.In(time.Time(m).Location())

	if !now.Before(m.End()) {
		return decimal.NewFromInt(1)
	}

	if now.Before(m.Start()) {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(now.Day())).Div(decimal.NewFromInt(int64(m.Days())))
}
