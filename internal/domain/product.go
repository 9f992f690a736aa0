package domain

import "time"

// ProductCategory is one of the menu sections.
type ProductCategory string

const (
	CategoryCoffees      ProductCategory = "Coffees"
	CategoryTeas         ProductCategory = "Teas"
	CategoryCakes        ProductCategory = "Cakes"
	CategoryHotChocolate ProductCategory = "Hot Chocolate"
)

// ValidProductCategory reports whether c is a known menu section.
func ValidProductCategory(c string) bool {
	switch ProductCategory(c) {
	case CategoryCoffees, CategoryTeas, CategoryCakes, CategoryHotChocolate:
		return true
	default:
		return false
	}
}

// Product is one menu item.
type Product struct {
	ID               int64
	Name             string
	Description      string
	Price            float64
	Category         ProductCategory
	ImageURL         string
	IsAvailable      bool
	AvailableOptions []string // product-option ids from Settings
	DefaultOption    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOption reports whether the option id is offered for this product.
func (p *Product) HasOption(optionID string) bool {
	for _, id := range p.AvailableOptions {
		if id == optionID {
			return true
		}
	}
	return false
}
