package csv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KJ21-ENG/natraj-metallic/pkg/domain/entities"
)

// Row gives header-addressed, typed access to one data row. The first conversion
// failure is kept and reported by Err; later calls return zero values.
type Row struct {
	index  map[string]int
	values []string
	line   int
	err    error
}

func newRow(index map[string]int, values []string, line int) *Row {
	return &Row{index: index, values: values, line: line}
}

// Line is the 1-based line number of the row in its file
func (r *Row) Line() int {
	return r.line
}

// Err returns the first conversion error
func (r *Row) Err() error {
	return r.err
}

func (r *Row) fail(col, value, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %q (expected %s)", col, value, want)
	}
}

// String returns the raw value of col, or "" when the column is absent
func (r *Row) String(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Decimal parses col as a decimal; an empty cell is zero
func (r *Row) Decimal(col string) decimal.Decimal {
	v := strings.TrimSpace(r.String(col))
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(col, v, "decimal")
		return decimal.Zero
	}
	return d
}

// Int parses col as a base-10 integer; an empty cell is zero
func (r *Row) Int(col string) int64 {
	v := strings.TrimSpace(r.String(col))
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(col, v, "integer")
		return 0
	}
	return n
}

// Bool parses col as a boolean; an empty cell is false
func (r *Row) Bool(col string) bool {
	v := strings.TrimSpace(r.String(col))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(col, v, "true or false")
		return false
	}
	return b
}

// Date parses col as YYYY-MM-DD; an empty cell is the zero time
func (r *Row) Date(col string) time.Time {
	v := strings.TrimSpace(r.String(col))
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(entities.DateLayout, v)
	if err != nil {
		r.fail(col, v, "YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

// List splits a comma-separated cell into trimmed, non-empty values
func (r *Row) List(col string) []string {
	v := r.String(col)
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Parse applies a custom parser to col, recording its error
func (r *Row) Parse(col string, parse func(string) error) {
	if err := parse(r.String(col)); err != nil && r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", col, err)
	}
}

// FormatDecimal renders d without rounding
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}

// FormatInt renders n in base 10
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatBool renders b as true or false
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(entities.DateLayout)
}

// FormatList joins values with commas
func FormatList(values []string) string {
	return strings.Join(values, ",")
}
