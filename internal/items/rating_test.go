package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatedRatingFirstRating(t *testing.T) {
	t.Parallel()

	avg, count := UpdatedRating(0, 0, 4)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, count)
}

func TestUpdatedRatingRunningAverage(t *testing.T) {
	t.Parallel()

	avg, count := UpdatedRating(4.0, 2, 1)
	assert.InDelta(t, 3.0, avg, 1e-9)
	assert.Equal(t, 3, count)

	avg, count = UpdatedRating(avg, count, 5)
	assert.InDelta(t, 3.5, avg, 1e-9)
	assert.Equal(t, 4, count)
}

func TestUpdatedRatingMatchesFullRecompute(t *testing.T) {
	t.Parallel()

	ratings := []int{5, 3, 4, 1, 2, 5, 5, 4}

	var avg float64
	var count int
	var sum int
	for _, r := range ratings {
		avg, count = UpdatedRating(avg, count, r)
		sum += r
	}

	assert.Equal(t, len(ratings), count)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), avg, 1e-9)
}
