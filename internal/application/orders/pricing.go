package orders

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// Pure pricing math for order mapping. Everything here is side-effect free;
// catalog and ledger lookups stay in the mapper so these functions can be
// tested against the documented formulas directly.

var oneHundred = decimal.NewFromInt(100)

// perUnitDiscount averages the line's discount allocations over its quantity.
func perUnitDiscount(li *storefront.LineItem) decimal.Decimal {
	if li.Quantity == 0 {
		return decimal.Zero
	}
	return li.TotalDiscount().Div(decimal.NewFromInt(li.Quantity))
}

// netUnitPrice removes line-level discounts from the gross unit price, and
// the per-unit tax as well when prices are tax-inclusive.
func netUnitPrice(li *storefront.LineItem, taxesInclusive bool) decimal.Decimal {
	if li.Quantity == 0 {
		return li.Price
	}
	qty := decimal.NewFromInt(li.Quantity)

	if !taxesInclusive {
		return li.Price.Sub(li.TotalDiscount().Div(qty))
	}
	return li.Price.Sub(li.TotalTax().Add(li.TotalDiscount()).Div(qty))
}

// taxDescription renders the charge description: the mapped account
// description when configured, otherwise the storefront tax title, suffixed
// with the rate as a percentage to two decimals.
func taxDescription(accountDescription, taxTitle string, rate decimal.Decimal) string {
	description := accountDescription
	if description == "" {
		description = taxTitle
	}
	return fmt.Sprintf("%s - %s%%", description, rate.Mul(oneHundred).StringFixed(2))
}

// shippingChargeAmount computes the consolidated net shipping charge:
// price minus the shipping line's discount allocations, further reduced by
// its taxes when prices are tax-inclusive.
func shippingChargeAmount(sl *storefront.ShippingLine, taxesInclusive bool) decimal.Decimal {
	amount := sl.Price.Sub(sl.TotalDiscount())
	if taxesInclusive {
		amount = amount.Sub(sl.TotalTax())
	}
	return amount
}

// itemWiseTaxDetail renders the audit blob {item_code: [rate*100, amount]}
// recorded on item tax charges.
func itemWiseTaxDetail(itemCode string, tax storefront.TaxLine) string {
	detail := map[string][2]decimal.Decimal{
		itemCode: {tax.Rate.Mul(oneHundred), tax.Price},
	}
	blob, err := json.Marshal(detail)
	if err != nil {
		return ""
	}
	return string(blob)
}
