package main

import (
	"fmt"
	"math/rand"

	"github.com/beorn7/perks/quantile"
	"github.com/stripe/veneur/tdigest"

	"github.com/axiomhq/gk"
)

// Feeds the same normally distributed stream to a GK sketch, a CKMS
// estimator and a merging t-digest, then prints their answers side by side.
func main() {
	rand.Seed(1234)

	sketch, err := gk.New(0.01)
	if err != nil {
		panic(err)
	}
	ckms := quantile.NewTargeted(map[float64]float64{
		0.5:  0.01,
		0.9:  0.01,
		0.99: 0.001,
	})
	td := tdigest.NewMerging(100, false)

	for i := 0; i < 1e6; i++ {
		v := rand.NormFloat64()
		sketch.Add(v)
		ckms.Insert(v)
		td.Add(v, 1)
	}

	for _, q := range []float64{0.5, 0.9, 0.99} {
		fmt.Printf("q=%.2f\tgk=%f\tckms=%f\ttdigest=%f\n",
			q, sketch.Quantile(q), ckms.Query(q), td.Quantile(q))
	}
	fmt.Println("entries:", sketch.Size())
	fmt.Println("count:", sketch.Count(), "mean:", sketch.Mean(), "min:", sketch.Min(), "max:", sketch.Max())
}
