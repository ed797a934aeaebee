package analysis

import (
	"math"
	"testing"

	"edareport/internal/testkit"
)

func TestNormalitySkipsSmallSamples(t *testing.T) {
	if got := TestNormality(testkit.QuasiNormal(7), SignificanceLevel); got != nil {
		t.Error("7 observations should skip the battery")
	}
	if got := TestNormality(testkit.QuasiNormal(8), SignificanceLevel); got == nil {
		t.Error("8 observations should run the battery")
	}
}

func TestNormalitySkipsZeroVariance(t *testing.T) {
	constant := make([]float64, 20)
	for i := range constant {
		constant[i] = 3.5
	}
	if got := TestNormality(constant, SignificanceLevel); got != nil {
		t.Error("constant data should skip the battery")
	}
}

func TestNormalityBatteryNames(t *testing.T) {
	res := TestNormality(testkit.QuasiNormal(40), SignificanceLevel)
	if res == nil {
		t.Fatal("expected results")
	}
	want := []string{
		"D'Agostino's K-squared test",
		"Kolmogorov-Smirnov test",
		"Shapiro-Wilk test",
	}
	if len(res.Tests) != len(want) {
		t.Fatalf("got %d tests", len(res.Tests))
	}
	for i, name := range want {
		if res.Tests[i].Name != name {
			t.Errorf("test %d: got %q, want %q", i, res.Tests[i].Name, name)
		}
	}
	if res.Alpha != 0.05 {
		t.Errorf("alpha: got %v", res.Alpha)
	}
}

func TestNormalityAcceptsNormalShape(t *testing.T) {
	res := TestNormality(testkit.QuasiNormal(40), SignificanceLevel)
	if res == nil {
		t.Fatal("expected results")
	}
	for _, tc := range res.Tests {
		if tc.Conclusion != "Possibly normal" {
			t.Errorf("%s: got %q (p=%v)", tc.Name, tc.Conclusion, tc.PValue)
		}
	}
}

func TestNormalityRejectsSkewedShape(t *testing.T) {
	res := TestNormality(testkit.Exponentialish(40), SignificanceLevel)
	if res == nil {
		t.Fatal("expected results")
	}
	for _, tc := range res.Tests {
		if tc.Conclusion != "Unlikely to be normal" {
			t.Errorf("%s: got %q (p=%v)", tc.Name, tc.Conclusion, tc.PValue)
		}
	}
}

func TestNormalitySmallSampleBranch(t *testing.T) {
	// n = 10 exercises the n <= 11 Shapiro-Wilk transform.
	res := TestNormality(testkit.QuasiNormal(10), SignificanceLevel)
	if res == nil {
		t.Fatal("expected results")
	}
	for _, tc := range res.Tests {
		if tc.Conclusion != "Possibly normal" {
			t.Errorf("%s: got %q (p=%v)", tc.Name, tc.Conclusion, tc.PValue)
		}
	}
}

func TestDagostinoK2Value(t *testing.T) {
	// Reference value from an independent computation of the same transforms.
	got := dagostinoK2(testkit.QuasiNormal(40))
	if math.Abs(got-0.9971) > 1e-3 {
		t.Errorf("p-value: got %v, want ~0.9971", got)
	}
}

func TestShapiroWilkExactN3(t *testing.T) {
	cases := []struct {
		data []float64
		p    float64
	}{
		{[]float64{1, 2, 3}, 0.89377},
		{[]float64{1, 2, 10}, 0.18737},
		{[]float64{5, 5.1, 20}, 0.00589},
	}
	for _, c := range cases {
		got := shapiroWilk(c.data)
		if math.Abs(got-c.p) > 1e-4 {
			t.Errorf("shapiroWilk(%v): got %v, want %v", c.data, got, c.p)
		}
	}
}

func TestKolmogorovSmirnovUnfitted(t *testing.T) {
	// The comparison is against the standard normal as-is. Shifting an
	// otherwise normal sample must reject.
	shifted := testkit.QuasiNormal(50)
	for i := range shifted {
		shifted[i] += 100
	}
	if p := kolmogorovSmirnov(shifted); p > 1e-6 {
		t.Errorf("shifted sample: got p=%v, want ~0", p)
	}

	if p := kolmogorovSmirnov(testkit.QuasiNormal(50)); p < 0.99 {
		t.Errorf("quasi-normal sample: got p=%v, want ~1", p)
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	data := testkit.Sequence(100)
	a := sampleWithoutReplacement(data, 10, 42)
	b := sampleWithoutReplacement(data, 10, 42)
	if len(a) != 10 {
		t.Fatalf("got %d elements", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed should give same sample")
		}
	}

	seen := make(map[float64]bool)
	for _, x := range a {
		if seen[x] {
			t.Fatalf("value %v drawn twice", x)
		}
		seen[x] = true
	}
}
