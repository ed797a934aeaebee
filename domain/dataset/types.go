package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Kind identifies the raw storage type of a single cell value.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindString
	KindBool
	KindTime
)

// Value is a single cell in a column. Exactly one of the payload fields is
// meaningful, selected by Kind. Missing values carry no payload.
type Value struct {
	Kind   Kind
	Number float64
	Str    string
	Bool   bool
	Time   time.Time
}

// Missing reports whether the value is a missing marker.
func (v Value) Missing() bool { return v.Kind == KindMissing }

// Display returns the human-readable form of the value, used in mode and
// most-common tables.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindTime:
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// Value constructors.
func Num(f float64) Value         { return Value{Kind: KindNumber, Number: f} }
func Str(s string) Value          { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Bool: b} }
func TimeVal(t time.Time) Value   { return Value{Kind: KindTime, Time: t} }
func Missing() Value              { return Value{Kind: KindMissing} }

// Column is a named, ordered sequence of scalar values. Columns are immutable
// once loaded; analysis code only ever reads them.
type Column struct {
	Name   string
	Values []Value
}

// Len returns the total number of rows, missing entries included.
func (c Column) Len() int { return len(c.Values) }

// MissingCount returns the number of missing entries.
func (c Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Missing() {
			n++
		}
	}
	return n
}

// NonMissing returns the non-missing values in order.
func (c Column) NonMissing() []Value {
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.Missing() {
			out = append(out, v)
		}
	}
	return out
}

// Floats returns the non-missing numeric payloads. Only meaningful for
// columns whose values are KindNumber.
func (c Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.Kind == KindNumber {
			out = append(out, v.Number)
		}
	}
	return out
}

// NumericKind reports whether the column's non-missing values are stored as
// numbers. Boolean-coded 0/1 columns satisfy this, which is what lets them
// participate in correlation analysis.
func (c Column) NumericKind() bool {
	seen := false
	for _, v := range c.Values {
		switch v.Kind {
		case KindMissing:
		case KindNumber:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// UniqueCount returns the number of distinct non-missing values.
func (c Column) UniqueCount() int {
	set := make(map[string]struct{}, len(c.Values))
	for _, v := range c.Values {
		if !v.Missing() {
			set[v.Display()] = struct{}{}
		}
	}
	return len(set)
}

// UniqueDisplays returns the sorted distinct display forms of the non-missing
// values.
func (c Column) UniqueDisplays() []string {
	set := make(map[string]struct{})
	for _, v := range c.Values {
		if !v.Missing() {
			set[v.Display()] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Table is the two-dimensional input to the analysis pipeline: an ordered set
// of equally long columns.
type Table struct {
	Columns []Column
}

// Rows returns the row count. All columns share it.
func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Cols returns the number of columns.
func (t Table) Cols() int { return len(t.Columns) }

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in input order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// VariableType is the closed set of semantic column types. Every column is
// assigned exactly one.
type VariableType uint8

const (
	TypeNumeric VariableType = iota
	TypeNumericFewLevels
	TypeBoolean
	TypeCategorical
	TypeDatetime
)

// Label returns the contractual type label used in reports.
func (t VariableType) Label() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeNumericFewLevels:
		return "numeric (<10 levels)"
	case TypeBoolean:
		return "boolean"
	case TypeCategorical:
		return "categorical"
	case TypeDatetime:
		return "datetime"
	default:
		return fmt.Sprintf("VariableType(%d)", t)
	}
}

func (t VariableType) String() string { return t.Label() }

// Categorical reports whether the type is summarized with categorical
// statistics (mode, frequency tables).
func (t VariableType) Categorical() bool {
	switch t {
	case TypeBoolean, TypeCategorical, TypeNumericFewLevels:
		return true
	default:
		return false
	}
}
