package models

// DefaultStockDivisor converts Isleventory counts into solver units: one
// recipe material unit corresponds to five items held.
const DefaultStockDivisor = 5

// Inventory is the player's Isleventory as read from the stock file.
type Inventory struct {
	// Raw holds the counts exactly as entered.
	Raw Quantities

	// Workshops is the workshop count declared in the file, 0 if absent.
	Workshops int
}

// Stocks returns the raw counts divided by divisor, which is what the
// solver consumes. A divisor below 1 leaves counts unchanged.
func (inv *Inventory) Stocks(divisor int) Quantities {
	if divisor < 1 {
		divisor = 1
	}
	var out Quantities
	for i, v := range inv.Raw {
		out[i] = v / divisor
	}
	return out
}
