package domain

import "time"

// CartLine is one line of a user's cart, keyed by (ProductID, SelectedOption).
// Quantity is always >= 1: setting it to zero removes the line.
type CartLine struct {
	ID             int64
	UserID         string
	ProductID      int64
	ProductName    string
	UnitPrice      float64
	Quantity       int
	SelectedOption *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameKey reports whether another line addresses the same cart key.
func (l *CartLine) SameKey(productID int64, selectedOption *string) bool {
	if l.ProductID != productID {
		return false
	}
	if l.SelectedOption == nil || selectedOption == nil {
		return l.SelectedOption == nil && selectedOption == nil
	}
	return *l.SelectedOption == *selectedOption
}
