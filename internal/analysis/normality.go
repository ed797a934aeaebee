package analysis

import (
	"math"
	"math/rand"
	"sort"

	domstats "edareport/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// SignificanceLevel is the α used for all normality test conclusions.
const SignificanceLevel = 0.05

// minNormalitySample is the floor below which the test battery is skipped.
// The skewness transform behind D'Agostino's K-squared test needs at least 8
// observations, so that bound is applied to the whole battery.
const minNormalitySample = 8

// shapiroSampleCap bounds the Shapiro-Wilk input: the W statistic stays
// accurate for larger samples but its p-value does not.
const shapiroSampleCap = 5000

// shapiroSampleSeed makes the large-sample draw reproducible.
const shapiroSampleSeed = 2063

const (
	conclusionNormal    = "Possibly normal"
	conclusionNotNormal = "Unlikely to be normal"
)

// TestNormality runs the D'Agostino's K-squared, Kolmogorov-Smirnov and
// Shapiro-Wilk tests against the sample. It returns nil when the sample is
// too small or has zero variance; callers treat absence as a normal state.
func TestNormality(data []float64, alpha float64) *domstats.NormalityResult {
	if len(data) < minNormalitySample {
		return nil
	}
	if zeroVariance(data) {
		return nil
	}

	shapiroData := data
	if len(data) > shapiroSampleCap {
		shapiroData = sampleWithoutReplacement(data, shapiroSampleCap, shapiroSampleSeed)
	}

	tests := []domstats.NormalityTest{
		{Name: "D'Agostino's K-squared test", PValue: dagostinoK2(data)},
		{Name: "Kolmogorov-Smirnov test", PValue: kolmogorovSmirnov(data)},
		{Name: "Shapiro-Wilk test", PValue: shapiroWilk(shapiroData)},
	}
	for i := range tests {
		if tests[i].PValue > alpha {
			tests[i].Conclusion = conclusionNormal
		} else {
			tests[i].Conclusion = conclusionNotNormal
		}
	}

	return &domstats.NormalityResult{Alpha: alpha, Tests: tests}
}

func zeroVariance(data []float64) bool {
	for _, x := range data[1:] {
		if x != data[0] {
			return false
		}
	}
	return true
}

// sampleWithoutReplacement draws size elements deterministically.
func sampleWithoutReplacement(data []float64, size int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(data))[:size]
	out := make([]float64, size)
	for i, idx := range perm {
		out[i] = data[idx]
	}
	return out
}

// dagostinoK2 computes the p-value of D'Agostino and Pearson's omnibus test,
// which combines transformed skewness and kurtosis statistics into a
// chi-squared variable with two degrees of freedom.
func dagostinoK2(data []float64) float64 {
	zs := skewnessZ(data)
	zk := kurtosisZ(data)
	k2 := zs*zs + zk*zk
	chi2 := distuv.ChiSquared{K: 2}
	return 1 - chi2.CDF(k2)
}

// skewnessZ is the D'Agostino (1970) normal transform of sample skewness.
func skewnessZ(data []float64) float64 {
	n := float64(len(data))
	m2, m3, _ := centralMoments(data)
	b1 := m3 / math.Pow(m2, 1.5)

	y := b1 * math.Sqrt((n+1)*(n+3)/(6*(n-2)))
	beta2 := 3 * (n*n + 27*n - 70) * (n + 1) * (n + 3) /
		((n - 2) * (n + 5) * (n + 7) * (n + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		return 0
	}
	return delta * math.Log(y/alpha+math.Sqrt(math.Pow(y/alpha, 2)+1))
}

// kurtosisZ is the Anscombe-Glynn (1983) normal transform of sample kurtosis.
func kurtosisZ(data []float64) float64 {
	n := float64(len(data))
	m2, _, m4 := centralMoments(data)
	b2 := m4 / (m2 * m2)

	e := 3 * (n - 1) / (n + 1)
	variance := 24 * n * (n - 2) * (n - 3) / ((n + 1) * (n + 1) * (n + 3) * (n + 5))
	x := (b2 - e) / math.Sqrt(variance)

	sqrtBeta1 := 6 * (n*n - 5*n + 2) / ((n + 7) * (n + 9)) *
		math.Sqrt(6*(n+3)*(n+5)/(n*(n-2)*(n-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	term := (1 - 2/a) / (1 + x*math.Sqrt(2/(a-4)))
	return ((1 - 2/(9*a)) - math.Cbrt(term)) / math.Sqrt(2/(9*a))
}

// kolmogorovSmirnov computes the p-value of the one-sample KS test against
// the standard normal distribution. The sample is compared as-is, without
// fitting location or scale.
func kolmogorovSmirnov(data []float64) float64 {
	n := len(data)
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	normal := distuv.UnitNormal
	d := 0.0
	for i, x := range sorted {
		cdf := normal.CDF(x)
		upper := float64(i+1)/float64(n) - cdf
		lower := cdf - float64(i)/float64(n)
		if upper > d {
			d = upper
		}
		if lower > d {
			d = lower
		}
	}

	return kolmogorovSurvival(d, n)
}

// kolmogorovSurvival approximates Q(λ) for the Kolmogorov distribution using
// the Stephens (1970) effective-sample correction.
func kolmogorovSurvival(d float64, n int) float64 {
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d

	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j*j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}

	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// shapiroWilk computes the p-value of the Shapiro-Wilk W test using
// Royston's (1995) approximation, valid for 3 <= n <= 5000.
func shapiroWilk(data []float64) float64 {
	n := len(data)
	if n < 3 {
		return 1
	}

	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)

	w := shapiroWilkW(sorted)

	// Exact distribution for n = 3.
	if n == 3 {
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		if p < 0 {
			return 0
		}
		return p
	}

	nf := float64(n)
	var z float64
	if n <= 11 {
		gamma := -2.273 + 0.459*nf
		mu := 0.5440 - 0.39978*nf + 0.025054*nf*nf - 0.0006714*nf*nf*nf
		sigma := math.Exp(1.3822 - 0.77857*nf + 0.062767*nf*nf - 0.0020322*nf*nf*nf)
		z = (-math.Log(gamma-math.Log(1-w)) - mu) / sigma
	} else {
		ln := math.Log(nf)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		z = (math.Log(1-w) - mu) / sigma
	}

	return 1 - distuv.UnitNormal.CDF(z)
}

// shapiroWilkW computes the W statistic from an ascending sample, with
// weights built from Blom scores and Royston's polynomial corrections.
func shapiroWilkW(sorted []float64) float64 {
	n := len(sorted)
	nf := float64(n)

	// Expected normal order statistics (Blom scores).
	m := make([]float64, n)
	sumM2 := 0.0
	for i := 0; i < n; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (nf + 0.25))
		sumM2 += m[i] * m[i]
	}

	rsn := 1 / math.Sqrt(nf)
	a := make([]float64, n)

	cn := m[n-1] / math.Sqrt(sumM2)
	an := cn + rsn*(0.221157+rsn*(-0.147981+rsn*(-2.071190+rsn*(4.434685+rsn*(-2.706056)))))

	if n <= 5 {
		// At n = 3 only the middle Blom score remains and phi degenerates
		// to 0/0; the middle weight is exactly 0 there.
		phi := (sumM2 - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		for i := 1; i < n-1; i++ {
			if phi > 0 {
				a[i] = m[i] / math.Sqrt(phi)
			}
		}
		a[n-1] = an
		a[0] = -an
	} else {
		cn1 := m[n-2] / math.Sqrt(sumM2)
		an1 := cn1 + rsn*(0.042981+rsn*(-0.293762+rsn*(-1.752461+rsn*(5.682633+rsn*(-3.582633)))))
		phi := (sumM2 - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*an*an - 2*an1*an1)
		for i := 2; i < n-2; i++ {
			a[i] = m[i] / math.Sqrt(phi)
		}
		a[n-1] = an
		a[n-2] = an1
		a[0] = -an
		a[1] = -an1
	}

	mean := 0.0
	for _, x := range sorted {
		mean += x
	}
	mean /= nf

	num := 0.0
	den := 0.0
	for i, x := range sorted {
		num += a[i] * x
		den += (x - mean) * (x - mean)
	}

	w := num * num / den
	if w > 1 {
		w = 1
	}
	return w
}
