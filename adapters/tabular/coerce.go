package tabular

import (
	"strconv"
	"strings"
	"time"

	"edareport/domain/dataset"
)

// missingMarkers are the cell spellings treated as missing values,
// lower-cased.
var missingMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
}

// timeLayouts are tried in order when coercing a column to datetime.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// CoerceColumn converts a column of raw strings into typed values. The whole
// column gets a single storage kind, decided by what every non-missing cell
// parses as: number, then boolean literal, then timestamp, otherwise string.
// This mirrors dtype inference at load time so that classification can rely
// on a column's sole kind.
func CoerceColumn(name string, raw []string) dataset.Column {
	col := dataset.Column{Name: name, Values: make([]dataset.Value, len(raw))}

	allNumeric := true
	allBool := true
	layout := ""
	allTime := true

	for _, cell := range raw {
		if isMissing(cell) {
			continue
		}
		trimmed := strings.TrimSpace(cell)
		if allNumeric {
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				allNumeric = false
			}
		}
		if allBool {
			lower := strings.ToLower(trimmed)
			if lower != "true" && lower != "false" {
				allBool = false
			}
		}
		if allTime {
			var ok bool
			layout, ok = matchLayout(trimmed, layout)
			if !ok {
				allTime = false
			}
		}
	}

	for i, cell := range raw {
		if isMissing(cell) {
			col.Values[i] = dataset.Missing()
			continue
		}
		trimmed := strings.TrimSpace(cell)
		switch {
		case allNumeric:
			f, _ := strconv.ParseFloat(trimmed, 64)
			col.Values[i] = dataset.Num(f)
		case allBool:
			col.Values[i] = dataset.Bool(strings.EqualFold(trimmed, "true"))
		case allTime:
			t, _ := time.Parse(layout, trimmed)
			col.Values[i] = dataset.TimeVal(t.UTC())
		default:
			col.Values[i] = dataset.Str(trimmed)
		}
	}

	return col
}

func isMissing(cell string) bool {
	_, ok := missingMarkers[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// matchLayout finds a layout parsing the cell. Once a column commits to a
// layout it must keep matching; mixed layouts demote the column to string.
func matchLayout(cell, committed string) (string, bool) {
	if committed != "" {
		if _, err := time.Parse(committed, cell); err == nil {
			return committed, true
		}
		return "", false
	}
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return layout, true
		}
	}
	return "", false
}
