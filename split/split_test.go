package split

import (
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/YuminosukeSato/dataprep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStratifiedSmallExample(t *testing.T) {
	labels := []string{"a", "b", "a"}

	for seed := uint64(0); seed < 20; seed++ {
		res, err := Stratified(labels, 0.5, WithSeed(seed))
		require.NoError(t, err)

		require.Len(t, res.Train, 2)
		require.Len(t, res.Test, 1)
		assert.Equal(t, "a", labels[res.Train[0]])
		assert.Equal(t, 1, res.Train[1], "the only b row trains")
		assert.Equal(t, "a", labels[res.Test[0]])
		assert.NotEqual(t, res.Train[0], res.Test[0])
	}
}

func TestStratifiedPartition(t *testing.T) {
	labels := make([]string, 0, 150)
	for _, class := range []string{"setosa", "versicolor", "virginica"} {
		for i := 0; i < 50; i++ {
			labels = append(labels, class)
		}
	}

	tests := []struct {
		proportion float64
		wantTrain  int
	}{
		{0, 0},
		{0.1, 15},
		{0.7, 105},
		{0.75, 111},
		{1, 150},
	}

	for _, tt := range tests {
		res, err := Stratified(labels, tt.proportion, WithSeed(42))
		require.NoError(t, err)

		assert.Len(t, res.Train, tt.wantTrain, "proportion %v", tt.proportion)

		all := append(append([]int(nil), res.Train...), res.Test...)
		sort.Ints(all)
		for i, idx := range all {
			require.Equal(t, i, idx, "train and test must cover each row exactly once")
		}

		trainCounts := make(map[string]int)
		for _, i := range res.Train {
			trainCounts[labels[i]]++
		}
		for class, n := range Counts(labels) {
			want := TrainCount(n, tt.proportion)
			assert.Equal(t, want, trainCounts[class], "class %s", class)
			assert.LessOrEqual(t, math.Abs(float64(trainCounts[class])-float64(n)*tt.proportion), 1.0)
		}
	}
}

func TestStratifiedClassOrder(t *testing.T) {
	labels := []string{"c", "a", "b", "a", "c", "b"}
	res, err := Stratified(labels, 0.5, WithSeed(7))
	require.NoError(t, err)

	var got []string
	for _, i := range res.Train {
		got = append(got, labels[i])
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestStratifiedReproducible(t *testing.T) {
	labels := []string{"x", "y", "x", "y", "x", "y", "x", "y", "x", "x"}

	a, err := Stratified(labels, 0.6, WithSeed(123))
	require.NoError(t, err)
	b, err := Stratified(labels, 0.6, WithRand(rand.New(rand.NewPCG(123, 123))))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestStratifiedErrors(t *testing.T) {
	for _, p := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := Stratified([]string{"a"}, p)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve), "proportion %v", p)
	}

	_, err := Stratified(nil, 0.5)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestTrainCount(t *testing.T) {
	tests := []struct {
		count      int
		proportion float64
		want       int
	}{
		{2, 0.5, 1},
		{1, 0.5, 1},
		{1, 0, 0},
		{3, 0.9, 2},
		{10, 1, 10},
		{0, 0.5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrainCount(tt.count, tt.proportion), "TrainCount(%d, %v)", tt.count, tt.proportion)
	}
}
