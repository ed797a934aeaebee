package analysis

import (
	"strings"

	"edareport/domain/dataset"
)

// fewLevelsThreshold is the cardinality below which a numeric column is
// treated as categorical-like. Continuous-style statistics on coded or
// ordinal data with a handful of levels would be misleading.
const fewLevelsThreshold = 10

// booleanVocabularies are the recognized two-value string vocabularies,
// lower-cased.
var booleanVocabularies = [][2]string{
	{"false", "true"},
	{"no", "yes"},
	{"n", "y"},
}

// Classify assigns a VariableType to the column. Classification is total and
// deterministic; it never fails. An empty column defaults to categorical
// since there are no values to inspect for numeric-ness.
func Classify(col dataset.Column) dataset.VariableType {
	values := col.NonMissing()
	if len(values) == 0 {
		return dataset.TypeCategorical
	}

	switch values[0].Kind {
	case dataset.KindBool:
		return dataset.TypeBoolean
	case dataset.KindNumber:
		if isZeroOneColumn(values) {
			return dataset.TypeBoolean
		}
		if col.UniqueCount() < fewLevelsThreshold {
			return dataset.TypeNumericFewLevels
		}
		return dataset.TypeNumeric
	case dataset.KindTime:
		return dataset.TypeDatetime
	default:
		if isBooleanVocabulary(col) {
			return dataset.TypeBoolean
		}
		return dataset.TypeCategorical
	}
}

// isZeroOneColumn reports whether the numeric values are exactly the set
// {0, 1}, a common boolean encoding.
func isZeroOneColumn(values []dataset.Value) bool {
	var seenZero, seenOne bool
	for _, v := range values {
		switch v.Number {
		case 0:
			seenZero = true
		case 1:
			seenOne = true
		default:
			return false
		}
	}
	return seenZero && seenOne
}

// isBooleanVocabulary reports whether a string column's distinct values,
// compared case-insensitively, match a recognized boolean vocabulary.
func isBooleanVocabulary(col dataset.Column) bool {
	set := make(map[string]struct{}, 2)
	for _, u := range col.UniqueDisplays() {
		set[strings.ToLower(u)] = struct{}{}
		if len(set) > 2 {
			return false
		}
	}
	if len(set) != 2 {
		return false
	}
	lowered := make([]string, 0, 2)
	for u := range set {
		lowered = append(lowered, u)
	}
	a, b := lowered[0], lowered[1]
	if a > b {
		a, b = b, a
	}
	for _, vocab := range booleanVocabularies {
		if a == vocab[0] && b == vocab[1] {
			return true
		}
	}
	return false
}
