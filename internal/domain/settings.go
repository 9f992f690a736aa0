package domain

import "time"

// ProductOption is a named price add-on (e.g. a size) selectable per cart line.
type ProductOption struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	IsDefault bool    `json:"isDefault,omitempty"`
}

// Settings is the single storefront settings document.
type Settings struct {
	MaxOrdersPerSlot int
	BlockedDates     []string // "YYYY-MM-DD"
	ProductOptions   []ProductOption

	UpdatedAt time.Time
}

// DefaultSettings returns the document written on first load.
func DefaultSettings() *Settings {
	return &Settings{
		MaxOrdersPerSlot: DefaultMaxOrdersPerSlot,
		BlockedDates:     []string{},
		ProductOptions:   []ProductOption{},
	}
}

// IsDateBlocked reports whether the "YYYY-MM-DD" form of date is blocked.
func (s *Settings) IsDateBlocked(date time.Time) bool {
	str := date.Format(DateFormat)
	for _, d := range s.BlockedDates {
		if d == str {
			return true
		}
	}
	return false
}

// OptionPrice returns the price of the option with the given id, or 0 when
// the id is unknown. Missing options price as zero, matching the storefront
// fallback.
func (s *Settings) OptionPrice(optionID string) float64 {
	for _, opt := range s.ProductOptions {
		if opt.ID == optionID {
			return opt.Price
		}
	}
	return 0
}

// FindOption returns the option with the given id.
func (s *Settings) FindOption(optionID string) (ProductOption, bool) {
	for _, opt := range s.ProductOptions {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return ProductOption{}, false
}
