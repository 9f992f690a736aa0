package domain

// OptionPriceLookup resolves a product-option id to its add-on price.
// Unknown ids must resolve to 0.
type OptionPriceLookup func(optionID string) float64

// LineTotal computes the total of one cart line: the unit price plus the
// selected option's add-on price, multiplied by quantity.
func LineTotal(line *CartLine, optionPrice OptionPriceLookup) float64 {
	total := line.UnitPrice * float64(line.Quantity)
	if line.SelectedOption != nil && optionPrice != nil {
		total += optionPrice(*line.SelectedOption) * float64(line.Quantity)
	}
	return total
}

// CartTotal sums LineTotal over all lines. The same lookup must back both the
// cart summary and checkout so the two totals cannot diverge.
func CartTotal(lines []*CartLine, optionPrice OptionPriceLookup) float64 {
	var total float64
	for _, line := range lines {
		total += LineTotal(line, optionPrice)
	}
	return total
}
