package items

// UpdatedRating folds one new rating into a seller's running average.
func UpdatedRating(oldAvg float64, oldCount, rating int) (float64, int) {
	newCount := oldCount + 1
	return (oldAvg*float64(oldCount) + float64(rating)) / float64(newCount), newCount
}
