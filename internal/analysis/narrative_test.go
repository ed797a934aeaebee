package analysis

import (
	"fmt"
	"testing"

	"edareport/domain/dataset"
	domstats "edareport/domain/stats"

	"github.com/stretchr/testify/assert"
)

func TestDescribeCorrelation(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0.95, "very strong positive correlation (0.95)"},
		{0.8, "very strong positive correlation (0.80)"},
		{-0.85, "very strong negative correlation (-0.85)"},
		{0.7, "strong positive correlation (0.70)"},
		{-0.6, "strong negative correlation (-0.60)"},
		{0.5, "moderate positive correlation (0.50)"},
		{0.25, "weak positive correlation (0.25)"},
		{-0.2, "weak negative correlation (-0.20)"},
		{0.098, "very weak positive correlation (0.10)"},
		{0.05, "very weak positive correlation (0.05)"},
		{-0.07, "very weak negative correlation (-0.07)"},
		{0.03, "virtually no correlation (0.03)"},
		{-0.01, "virtually no correlation (-0.01)"},
		{0, "virtually no correlation (0.00)"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DescribeCorrelation(c.value), "value %v", c.value)
	}
}

func TestDescribeOverview(t *testing.T) {
	assert.Equal(t,
		"The dataset consists of 50 rows (observations) and 3 columns (features), 2 of which are numeric.",
		DescribeOverview(50, 3, 2))
	assert.Equal(t,
		"The dataset consists of 1 row (observation) and 1 column (feature).",
		DescribeOverview(1, 1, 0))
	assert.Equal(t,
		"The dataset consists of 1,234 rows (observations) and 2 columns (features), 1 of which is numeric.",
		DescribeOverview(1234, 2, 1))
}

func TestDescribeVariable(t *testing.T) {
	v := domstats.Variable{
		Name:      "age",
		Type:      dataset.TypeNumeric,
		NumUnique: 74,
		Missing:   domstats.MissingInfo{Count: 0, Total: 100},
	}
	assert.Equal(t,
		"Age is a numeric variable with 74 unique values. None of its values are missing.",
		DescribeVariable(v))

	v = domstats.Variable{
		Name:      "rating",
		Type:      dataset.TypeNumericFewLevels,
		NumUnique: 5,
		Missing:   domstats.MissingInfo{Count: 150, Total: 1000},
	}
	assert.Equal(t,
		"Rating is a numeric (<10 levels) variable with 5 unique values. 150 (15.00%) of its values are missing.",
		DescribeVariable(v))

	v = domstats.Variable{
		Name:      "flag",
		Type:      dataset.TypeBoolean,
		NumUnique: 1,
		Missing:   domstats.MissingInfo{Count: 0, Total: 10},
	}
	assert.Equal(t,
		"Flag is a boolean variable with 1 unique value. None of its values are missing.",
		DescribeVariable(v))
}

func TestDescribeVariableNameCasing(t *testing.T) {
	v := domstats.Variable{
		Name:      "aGE",
		Type:      dataset.TypeNumeric,
		NumUnique: 74,
		Missing:   domstats.MissingInfo{Count: 0, Total: 100},
	}
	assert.Equal(t,
		"Age is a numeric variable with 74 unique values. None of its values are missing.",
		DescribeVariable(v))

	v.Name = "école"
	assert.Equal(t,
		"École is a numeric variable with 74 unique values. None of its values are missing.",
		DescribeVariable(v))
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"age":    "Age",
		"aGE":    "Age",
		"Weight": "Weight",
		"école":  "École",
	}
	for in, want := range cases {
		assert.Equal(t, want, capitalize(in), "input %q", in)
	}
}

func TestSummarizePairs(t *testing.T) {
	assert.Nil(t, SummarizePairs(nil))

	ranking := domstats.CorrelationRanking{
		{X: "body mass", Y: "flipper length", Coefficient: 0.87},
	}
	got := SummarizePairs(ranking)
	assert.Len(t, got, 1)
	assert.Equal(t,
		"Body Mass and Flipper Length have very strong positive correlation (0.87).",
		got[0].Text)
}

func TestSummarizePairsCapped(t *testing.T) {
	var ranking domstats.CorrelationRanking
	for i := 0; i < 30; i++ {
		ranking = append(ranking, domstats.CorrelationPair{
			X:           fmt.Sprintf("x%d", i),
			Y:           fmt.Sprintf("y%d", i),
			Coefficient: 0.5,
		})
	}
	assert.Len(t, SummarizePairs(ranking), domstats.RankingCap)
}
