package models

import "time"

// Review is a user's rating of a product, at most one per (user, product).
// Username is joined in on reads for display purposes.
type Review struct {
	ID        int64
	UserID    int64
	ProductID int64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
}
