// Package split partitions labeled records into training and testing sets
// while keeping each class's share of the data.
package split

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
)

// Result holds row indices of the training and testing sets.
// Train and Test are disjoint and together cover every input row.
type Result struct {
	Train []int
	Test  []int
}

// Option configures Stratified
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithSeed makes the shuffle reproducible
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithRand uses r for the shuffle
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rng = r
	}
}

// Stratified shuffles the row indices of labels, groups them by label and
// assigns the first floor(count*proportion) rows of every class to training.
// A class keeps at least one training row whenever proportion > 0.
//
// Classes are emitted in sorted label order. Within a class, rows keep their
// shuffled order.
func Stratified(labels []string, proportion float64, opts ...Option) (*Result, error) {
	if math.IsNaN(proportion) || proportion < 0 || proportion > 1 {
		return nil, errors.NewValidationError("proportion", "must be within [0, 1]", proportion)
	}
	if len(labels) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "split.Stratified")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	// Group shuffled indices by class
	buckets := make(map[string][]int)
	for _, i := range cfg.rng.Perm(len(labels)) {
		buckets[labels[i]] = append(buckets[labels[i]], i)
	}

	res := &Result{
		Train: make([]int, 0, int(float64(len(labels))*proportion)+len(buckets)),
		Test:  make([]int, 0, len(labels)),
	}
	for _, label := range sortedKeys(buckets) {
		indices := buckets[label]
		n := TrainCount(len(indices), proportion)
		res.Train = append(res.Train, indices[:n]...)
		res.Test = append(res.Test, indices[n:]...)
	}
	return res, nil
}

// TrainCount returns how many of count rows of one class go to training.
func TrainCount(count int, proportion float64) int {
	n := int(math.Floor(float64(count) * proportion))
	if n == 0 && proportion > 0 && count > 0 {
		n = 1
	}
	if n > count {
		n = count
	}
	return n
}

// Counts returns the number of rows per label
func Counts(labels []string) map[string]int {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
