package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNetUnitPrice(t *testing.T) {
	t.Run("tax-exclusive price minus per-unit discount", func(t *testing.T) {
		li := &storefront.LineItem{
			Quantity:            1,
			Price:               dec("100"),
			DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("5")}},
		}

		got := netUnitPrice(li, false)
		assert.True(t, got.Equal(dec("95")), "got %s", got)
	})

	t.Run("tax-inclusive price removes tax and discount", func(t *testing.T) {
		li := &storefront.LineItem{
			Quantity:            1,
			Price:               dec("115"),
			TaxLines:            []storefront.TaxLine{{Title: "VAT", Rate: dec("0.15"), Price: dec("15")}},
			DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("5")}},
		}

		got := netUnitPrice(li, true)
		assert.True(t, got.Equal(dec("95")), "got %s", got)
	})

	t.Run("discount and tax are averaged over the quantity", func(t *testing.T) {
		li := &storefront.LineItem{
			Quantity:            4,
			Price:               dec("25"),
			TaxLines:            []storefront.TaxLine{{Price: dec("8")}},
			DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("4")}},
		}

		// 25 - (8+4)/4 = 22
		got := netUnitPrice(li, true)
		assert.True(t, got.Equal(dec("22")), "got %s", got)
	})

	t.Run("zero quantity returns the gross price unchanged", func(t *testing.T) {
		li := &storefront.LineItem{
			Quantity:            0,
			Price:               dec("100"),
			DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("5")}},
		}

		got := netUnitPrice(li, false)
		assert.True(t, got.Equal(dec("100")), "got %s", got)
	})
}

func TestPerUnitDiscount(t *testing.T) {
	t.Run("sums allocations and divides by quantity", func(t *testing.T) {
		li := &storefront.LineItem{
			Quantity: 3,
			DiscountAllocations: []storefront.DiscountAllocation{
				{Amount: dec("4")},
				{Amount: dec("2")},
			},
		}

		got := perUnitDiscount(li)
		assert.True(t, got.Equal(dec("2")), "got %s", got)
	})

	t.Run("zero quantity yields zero", func(t *testing.T) {
		li := &storefront.LineItem{
			DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("4")}},
		}

		assert.True(t, perUnitDiscount(li).IsZero())
	})
}

func TestTaxDescription(t *testing.T) {
	t.Run("prefers the mapped account description", func(t *testing.T) {
		got := taxDescription("Output VAT", "VAT", dec("0.15"))
		assert.Equal(t, "Output VAT - 15.00%", got)
	})

	t.Run("falls back to the storefront tax title", func(t *testing.T) {
		got := taxDescription("", "GST", dec("0.1"))
		assert.Equal(t, "GST - 10.00%", got)
	})

	t.Run("keeps two decimals on fractional rates", func(t *testing.T) {
		got := taxDescription("", "State Tax", dec("0.0625"))
		assert.Equal(t, "State Tax - 6.25%", got)
	})
}

func TestShippingChargeAmount(t *testing.T) {
	sl := &storefront.ShippingLine{
		Title:               "Standard",
		Price:               dec("20"),
		TaxLines:            []storefront.TaxLine{{Price: dec("3")}},
		DiscountAllocations: []storefront.DiscountAllocation{{Amount: dec("2")}},
	}

	t.Run("tax-exclusive removes only the discount", func(t *testing.T) {
		got := shippingChargeAmount(sl, false)
		assert.True(t, got.Equal(dec("18")), "got %s", got)
	})

	t.Run("tax-inclusive removes discount and tax", func(t *testing.T) {
		got := shippingChargeAmount(sl, true)
		assert.True(t, got.Equal(dec("15")), "got %s", got)
	})
}

func TestItemWiseTaxDetail(t *testing.T) {
	blob := itemWiseTaxDetail("ITEM-001", storefront.TaxLine{
		Title: "VAT",
		Rate:  dec("0.15"),
		Price: dec("7.5"),
	})

	assert.JSONEq(t, `{"ITEM-001":["15","7.5"]}`, blob)
}
