package analysis

import (
	"sort"
	"strconv"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"
)

// contingencyCardinalityLimit is the highest number of levels a column may
// have and still be cross-tabulated. Anything above would clutter the report.
const contingencyCardinalityLimit = 20

// buildContingencyTables cross-tabulates each non-numeric column against the
// grouping column. The grouping column itself and columns with more than
// contingencyCardinalityLimit levels are skipped. Nil when no grouping
// column applies.
func buildContingencyTables(tbl dataset.Table, variables []domstats.Variable, groupBy string) []domstats.ContingencyTable {
	if groupBy == "" {
		return nil
	}
	groups, ok := tbl.Column(groupBy)
	if !ok {
		return nil
	}

	var tables []domstats.ContingencyTable
	for i, v := range variables {
		if v.Type == dataset.TypeNumeric || v.Name == groupBy {
			continue
		}
		col := tbl.Columns[i]
		if col.UniqueCount() > contingencyCardinalityLimit {
			continue
		}
		if t, ok := crossTabulate(col, groups); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// crossTabulate counts the complete (level, group) observations of two
// columns and assembles them into a margin-totaled table. Rows where either
// value is missing are excluded. False when no complete observation exists.
func crossTabulate(col, groups dataset.Column) (domstats.ContingencyTable, bool) {
	counts := make(map[string]map[string]int)
	groupSet := make(map[string]struct{})
	for i, v := range col.Values {
		if i >= groups.Len() {
			break
		}
		gv := groups.Values[i]
		if v.Missing() || gv.Missing() {
			continue
		}
		level, group := v.Display(), gv.Display()
		if counts[level] == nil {
			counts[level] = make(map[string]int)
		}
		counts[level][group]++
		groupSet[group] = struct{}{}
	}
	if len(counts) == 0 {
		return domstats.ContingencyTable{}, false
	}

	levels := make([]string, 0, len(counts))
	for l := range counts {
		levels = append(levels, l)
	}
	sortLevels(levels)
	groupNames := make([]string, 0, len(groupSet))
	for g := range groupSet {
		groupNames = append(groupNames, g)
	}
	sortLevels(groupNames)

	table := domstats.ContingencyTable{
		Column:      col.Name,
		Groups:      groupNames,
		GroupTotals: make([]int, len(groupNames)),
	}
	for _, level := range levels {
		row := domstats.ContingencyRow{Level: level, Counts: make([]int, len(groupNames))}
		for gi, g := range groupNames {
			n := counts[level][g]
			row.Counts[gi] = n
			row.Total += n
			table.GroupTotals[gi] += n
		}
		table.GrandTotal += row.Total
		table.Rows = append(table.Rows, row)
	}
	return table, true
}

// sortLevels orders labels numerically when every label parses as a number,
// lexicographically otherwise.
func sortLevels(labels []string) {
	numbers := make(map[string]float64, len(labels))
	for _, l := range labels {
		f, err := strconv.ParseFloat(l, 64)
		if err != nil {
			sort.Strings(labels)
			return
		}
		numbers[l] = f
	}
	sort.Slice(labels, func(i, j int) bool { return numbers[labels[i]] < numbers[labels[j]] })
}
