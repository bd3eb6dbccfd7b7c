package algorithm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sauravbiswasiupr/futures-core/algorithm"
)

func TestReduceSumsSquares(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4}
	sum, err := algorithm.Reduce(items, 0,
		func(n int) (int, error) { return n * n, nil },
		func(acc, v int) int { return acc + v },
		nil,
	)

	assert.NoError(t, err)
	assert.Equal(t, 30, sum)
}
