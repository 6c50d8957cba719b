package models

import (
	"math"
	"os"
	"strconv"
)

const defaultDiscountRate = 0.8

// DiscountRate returns the storewide price multiplier. Applied exactly
// once, at order-creation time; every display derives from the stored
// total rather than recomputing its own.
func DiscountRate() float64 {
	if v := os.Getenv("DISCOUNT_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate > 0 && rate <= 1 {
			return rate
		}
	}
	return defaultDiscountRate
}

// CartTotal is the single authoritative total: sum of unit price times
// quantity over all items, discounted, rounded to currency precision.
func CartTotal(items []CartItem, rate float64) float64 {
	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity) * rate
	}
	return math.Round(total*100) / 100
}
