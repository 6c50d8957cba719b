package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	items := []CartItem{
		{Product: Product{Price: 500}, Quantity: 2},
	}
	require.Equal(t, 800.00, CartTotal(items, 0.8))

	items = append(items, CartItem{Product: Product{Price: 249.50}, Quantity: 3})
	// 1000*0.8 + 748.5*0.8
	require.Equal(t, 1398.80, CartTotal(items, 0.8))

	require.Equal(t, 0.00, CartTotal(nil, 0.8))
}

func TestCartTotalRounding(t *testing.T) {
	items := []CartItem{
		{Product: Product{Price: 33.33}, Quantity: 1},
	}
	// 33.33 * 0.8 = 26.664, rounds to currency precision
	require.Equal(t, 26.66, CartTotal(items, 0.8))
}

func TestDiscountRate(t *testing.T) {
	t.Setenv("DISCOUNT_RATE", "")
	require.Equal(t, 0.8, DiscountRate())

	t.Setenv("DISCOUNT_RATE", "0.9")
	require.Equal(t, 0.9, DiscountRate())

	// Out-of-range or garbage values fall back to the default
	t.Setenv("DISCOUNT_RATE", "1.5")
	require.Equal(t, 0.8, DiscountRate())
	t.Setenv("DISCOUNT_RATE", "abc")
	require.Equal(t, 0.8, DiscountRate())
}
