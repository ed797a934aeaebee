package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	domstats "edareport/domain/stats"
)

// The narrative functions are pure: fixed templates, no side effects, no
// randomness. The bucket boundaries and wording are contractual; golden
// output tests depend on them verbatim.

// DescribeCorrelation explains the nature and magnitude of a correlation
// coefficient.
func DescribeCorrelation(value float64) string {
	nature := " positive"
	if value <= 0 {
		nature = " negative"
	}

	var strength string
	switch abs := math.Abs(value); {
	case abs >= 0.8:
		strength = "very strong"
	case abs >= 0.6:
		strength = "strong"
	case abs >= 0.4:
		strength = "moderate"
	case abs >= 0.2:
		strength = "weak"
	case abs >= 0.05:
		strength = "very weak"
	default:
		strength = "virtually no"
		nature = ""
	}

	return fmt.Sprintf("%s%s correlation (%.2f)", strength, nature, value)
}

// DescribeOverview summarizes the dataset's shape: row and column counts with
// correct pluralization, and a numeric-column clause omitted when no numeric
// columns exist.
func DescribeOverview(rows, cols, numericCols int) string {
	rowText := "1 row (observation)"
	if rows != 1 {
		rowText = fmt.Sprintf("%s rows (observations)", domstats.FormatCount(rows))
	}

	colText := "1 column (feature)"
	if cols != 1 {
		colText = fmt.Sprintf("%s columns (features)", domstats.FormatCount(cols))
	}

	var numericText string
	switch {
	case numericCols == 1:
		numericText = ", 1 of which is numeric"
	case numericCols > 1:
		numericText = fmt.Sprintf(", %d of which are numeric", numericCols)
	}

	return fmt.Sprintf("The dataset consists of %s and %s%s.", rowText, colText, numericText)
}

// DescribeVariable summarizes one column: capitalized name, type label,
// pluralized unique-value count and missing-value clause.
func DescribeVariable(v domstats.Variable) string {
	uniqueText := "1 unique value"
	if v.NumUnique != 1 {
		uniqueText = fmt.Sprintf("%s unique values", domstats.FormatCount(v.NumUnique))
	}

	return fmt.Sprintf("%s is a %s variable with %s. %s of its values are missing.",
		capitalize(v.Name), v.Type.Label(), uniqueText, v.Missing)
}

// PairSummary is the narrative sentence for a single correlation pair.
type PairSummary struct {
	X    string
	Y    string
	Text string
}

// SummarizePairs produces the narrative sentences for the leading
// correlation pairs, capped at stats.RankingCap entries. A nil ranking
// yields nil.
func SummarizePairs(ranking domstats.CorrelationRanking) []PairSummary {
	if ranking == nil {
		return nil
	}

	top := ranking.Top(domstats.RankingCap)
	summaries := make([]PairSummary, len(top))
	for i, pair := range top {
		summaries[i] = PairSummary{
			X: pair.X,
			Y: pair.Y,
			Text: fmt.Sprintf("%s and %s have %s.",
				titleCase(pair.X), titleCase(pair.Y),
				DescribeCorrelation(pair.Coefficient)),
		}
	}
	return summaries
}

// capitalize upper-cases the first rune and lower-cases the rest, the way
// sentence-leading names read in the report.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// titleCase upper-cases the first character of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
