package models

// Product is a catalog item. Rating is the average of its review ratings
// and is recomputed whenever a review changes.
type Product struct {
	ID          int64
	Name        string
	Price       float64
	ImageKey    string
	Description string
	Rating      float64
	Ingredients string
}
