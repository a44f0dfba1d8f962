package gk

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertRankWithin checks the returned value against a brute-force oracle:
// its true rank in the fully sorted stream must lie within eps*n of the
// ideal rank floor(q*(n-1))+1.
func assertRankWithin(t *testing.T, sorted []float64, v, q, eps float64) {
	t.Helper()
	n := float64(len(sorted))
	lo := sort.SearchFloat64s(sorted, v)
	hi := sort.SearchFloat64s(sorted, math.Nextafter(v, math.Inf(1)))
	if lo == hi {
		t.Fatalf("q=%v: returned %v which is not in the stream", q, v)
	}
	target := math.Floor(q*(n-1)) + 1
	minRank := float64(lo + 1)
	maxRank := float64(hi)
	if maxRank < target-eps*n || minRank > target+eps*n {
		t.Errorf("q=%v: value %v holds ranks [%v, %v], want within %v of %v",
			q, v, minRank, maxRank, eps*n, target)
	}
}

func testQuantileQs() []float64 {
	qs := make([]float64, 0, 101)
	for i := 0; i <= 100; i++ {
		qs = append(qs, float64(i)/100)
	}
	return qs
}

func TestQuantileErrorBound(t *testing.T) {
	eps := 0.01
	n := 10000
	sketch, err := New(eps)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	vals := make([]float64, 0, n)
	for _, v := range rng.Perm(n) {
		sketch.Add(float64(v + 1))
		vals = append(vals, float64(v+1))
	}
	sort.Float64s(vals)

	for _, q := range testQuantileQs() {
		assertRankWithin(t, vals, sketch.Quantile(q), q, eps)
	}
}

func TestQuantileErrorBoundNormal(t *testing.T) {
	eps := 0.02
	n := 30000
	sketch, err := New(eps)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(99))
	vals := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := rng.NormFloat64() * 50
		sketch.Add(v)
		vals = append(vals, v)
	}
	sort.Float64s(vals)

	for _, q := range testQuantileQs() {
		assertRankWithin(t, vals, sketch.Quantile(q), q, eps)
	}
}

func TestQuantileMonotonic(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20000; i++ {
		sketch.Add(rng.ExpFloat64())
	}

	prev := math.Inf(-1)
	for _, q := range testQuantileQs() {
		v := sketch.Quantile(q)
		if v < prev {
			t.Errorf("q=%v: expected monotonic quantiles, got %v after %v", q, v, prev)
		}
		prev = v
	}
}

func TestQuantileOutOfRange(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		sketch.Add(float64(i))
	}
	if !math.IsNaN(sketch.Quantile(-0.01)) {
		t.Error("expected NaN for q < 0")
	}
	if !math.IsNaN(sketch.Quantile(1.01)) {
		t.Error("expected NaN for q > 1")
	}
}

func TestQuantileSmallSample(t *testing.T) {
	assert := assert.New(t)
	sketch, err := New(0.05)
	assert.NoError(err)

	// Fewer than 1/eps values: quantiles are exact, linearly interpolated.
	for _, v := range []float64{7, 1, 9, 3, 5, 10, 2, 8, 6, 4} {
		sketch.Add(v)
	}

	assert.InDelta(1.0, sketch.Quantile(0), 1e-12)
	assert.InDelta(3.25, sketch.Quantile(0.25), 1e-12)
	assert.InDelta(5.5, sketch.Quantile(0.5), 1e-12)
	assert.InDelta(10.0, sketch.Quantile(1), 1e-12)
}

func TestQuantilesSortedMatchesSingle(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 15000; i++ {
		sketch.Add(rng.Float64())
	}

	qs := testQuantileQs()
	batch := sketch.Quantiles(qs)
	if len(batch) != len(qs) {
		t.Fatalf("expected %v results, got %v", len(qs), len(batch))
	}
	for i, q := range qs {
		if single := sketch.Quantile(q); batch[i] != single {
			t.Errorf("q=%v: batch %v != single %v", q, batch[i], single)
		}
	}
}

func TestQuantilesUnsortedFallback(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 15000; i++ {
		sketch.Add(rng.Float64())
	}

	qs := []float64{0.9, 0.1, 0.5, 0.99, 0.25}
	batch := sketch.Quantiles(qs)
	for i, q := range qs {
		if single := sketch.Quantile(q); batch[i] != single {
			t.Errorf("q=%v: batch %v != single %v", q, batch[i], single)
		}
	}
}

func TestQuantilesOutOfRangePositions(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		sketch.Add(float64(i))
	}

	got := sketch.Quantiles([]float64{-0.5, 0.5, 1.5})
	if !math.IsNaN(got[0]) {
		t.Error("expected NaN at position 0, got", got[0])
	}
	if math.IsNaN(got[1]) {
		t.Error("expected a value at position 1, got NaN")
	}
	if !math.IsNaN(got[2]) {
		t.Error("expected NaN at position 2, got", got[2])
	}
}

func TestQuantilesEmptySketch(t *testing.T) {
	sketch, err := New(0.01)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range sketch.Quantiles([]float64{0, 0.5, 1}) {
		if !math.IsNaN(v) {
			t.Error("expected NaN on empty sketch, got", v)
		}
	}
}
