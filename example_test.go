package subsample_test

import (
	"fmt"

	"github.com/hupe1980/subsample"
	"github.com/hupe1980/subsample/pattern"
	"github.com/hupe1980/subsample/rng"
)

func ExampleSampler_Filter() {
	s, err := subsample.New[*pattern.Pattern](0.4, rng.New(42))
	if err != nil {
		panic(err)
	}

	p := pattern.New("iris-0", []float64{5.1, 3.5, 1.4, 0.2, 1.8})
	if err := s.Filter(p); err != nil {
		panic(err)
	}

	fmt.Println(p.Dim())
	// Output: 2
}

func ExampleSampler_BatchFilterCopy() {
	s, err := subsample.New[*pattern.Pattern](0.5, rng.New(7))
	if err != nil {
		panic(err)
	}

	batch := []*pattern.Pattern{
		pattern.New("a", []float64{1, 2, 3, 4}),
		pattern.New("b", []float64{5, 6, 7, 8}),
	}

	filtered, err := s.BatchFilterCopy(batch)
	if err != nil {
		panic(err)
	}

	// The originals keep all 4 features; every copy keeps the same 2 columns.
	fmt.Println(batch[0].Dim(), filtered[0].Dim(), filtered[1].Dim())
	// Output: 4 2 2
}
