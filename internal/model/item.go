// Package model defines domain entities for the application.
package model

import "time"

// Item represents a row in the food inventory.
// The ID is supplied by the client on creation and is unique.
type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ExpiryDate Date      `json:"expiry_date"`
	CreatedAt  time.Time `json:"-"`
}

// IsExpired reports whether the item's expiry date is before the given day.
func (i *Item) IsExpired(today Date) bool {
	return i.ExpiryDate.Before(today)
}

// ExpiresWithin reports whether the item expires in the next `days` days,
// today included, but is not already expired.
func (i *Item) ExpiresWithin(today Date, days int) bool {
	if i.IsExpired(today) {
		return false
	}
	return !i.ExpiryDate.Time().After(today.AddDays(days).Time())
}
