package storefront

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Order is the decoded storefront order payload as delivered by webhook or
// bulk fetch. It is an immutable snapshot of the remote state: the sync
// pipeline reads it, maps it, and discards it.
type Order struct {
	// ID is the order identifier assigned by the storefront platform.
	// It is the idempotency and cross-reference key for every document
	// created from this order.
	ID int64 `json:"id" validate:"required"`
	// Name is the display order number shown to the buyer (e.g. "#1001").
	Name string `json:"name"`
	// Customer is the buyer record, absent for guest checkouts.
	Customer *Customer `json:"customer"`
	// BillingAddress and ShippingAddress are the order-level addresses.
	BillingAddress  *Address `json:"billing_address"`
	ShippingAddress *Address `json:"shipping_address"`
	// LineItems are the purchased products.
	LineItems []LineItem `json:"line_items" validate:"required,min=1,dive"`
	// ShippingLines carry the shipping charges and their tax lines.
	ShippingLines []ShippingLine `json:"shipping_lines"`
	// FinancialStatus is the payment state reported by the platform.
	FinancialStatus FinancialStatus `json:"financial_status"`
	// Fulfillments is non-empty once any items have been handed off.
	Fulfillments []Fulfillment `json:"fulfillments"`
	// TaxesIncluded reports whether line prices already contain tax.
	TaxesIncluded bool `json:"taxes_included"`
	// Note is the free-text order note entered by the buyer or merchant.
	Note string `json:"note"`
	// CreatedAt is when the order was placed on the platform.
	CreatedAt time.Time `json:"created_at"`
}

// ExternalID returns the order id in the string form used by the
// cross-reference fields on ERP documents.
func (o *Order) ExternalID() string {
	return strconv.FormatInt(o.ID, 10)
}

// TransactionDate returns the payload creation date, falling back to now
// when the platform omitted it.
func (o *Order) TransactionDate(now time.Time) time.Time {
	if o.CreatedAt.IsZero() {
		return now
	}
	return o.CreatedAt
}

// Customer is the buyer as reported by the storefront platform.
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Address is a storefront billing or shipping address.
type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
}

// LineItem is a single product entry within an order.
type LineItem struct {
	// ID is the line item id on the platform.
	ID int64 `json:"id" validate:"required"`
	// ProductID is the id of the backing product on the platform. Item
	// mappings are keyed on it; zero means a custom line with no product.
	ProductID int64 `json:"product_id"`
	// Title is the product title, used in error reporting for items that
	// cannot be resolved against the catalog.
	Title string `json:"title"`
	// Name is the full display name (title plus variant).
	Name string `json:"name"`
	// Quantity is the ordered quantity.
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
	// Price is the gross unit price as charged by the platform.
	Price decimal.Decimal `json:"price"`
	// UOM is the stock unit of measure, empty when the platform does not
	// report one.
	UOM string `json:"uom"`
	// TaxLines are the taxes applied to this line.
	TaxLines []TaxLine `json:"tax_lines"`
	// DiscountAllocations are the absolute discount amounts allocated to
	// this line by the platform's discount engine.
	DiscountAllocations []DiscountAllocation `json:"discount_allocations"`
	// ProductExists is resolved by the item sync before mapping: true when
	// the backing product is known to the ERP catalog.
	ProductExists bool `json:"product_exists"`
}

// TotalDiscount returns the sum of all discount allocations on the line.
func (li *LineItem) TotalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range li.DiscountAllocations {
		total = total.Add(d.Amount)
	}
	return total
}

// TotalTax returns the sum of all tax line amounts on the line.
func (li *LineItem) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, t := range li.TaxLines {
		total = total.Add(t.Price)
	}
	return total
}

// TaxLine is a single tax applied to a line item or shipping line.
type TaxLine struct {
	// Title is the platform's tax name, the key into the tax-account mapping.
	Title string `json:"title"`
	// Rate is the tax rate as a fraction (0.15 = 15%).
	Rate decimal.Decimal `json:"rate"`
	// Price is the absolute tax amount.
	Price decimal.Decimal `json:"price"`
}

// DiscountAllocation is an absolute discount amount allocated to a line.
type DiscountAllocation struct {
	Amount decimal.Decimal `json:"amount"`
}

// ShippingLine is one shipping charge on the order, with its own taxes and
// discount allocations.
type ShippingLine struct {
	// Title is the shipping method name, also the key into the tax-account
	// mapping for the consolidated shipping charge entry.
	Title               string               `json:"title"`
	Price               decimal.Decimal      `json:"price"`
	TaxLines            []TaxLine            `json:"tax_lines"`
	DiscountAllocations []DiscountAllocation `json:"discount_allocations"`
}

// TotalDiscount returns the sum of the shipping line's discount allocations.
func (sl *ShippingLine) TotalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range sl.DiscountAllocations {
		total = total.Add(d.Amount)
	}
	return total
}

// TotalTax returns the sum of the shipping line's tax amounts.
func (sl *ShippingLine) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, t := range sl.TaxLines {
		total = total.Add(t.Price)
	}
	return total
}

// Fulfillment records that some or all of an order's items were shipped.
type Fulfillment struct {
	ID             int64     `json:"id"`
	Status         string    `json:"status"`
	TrackingNumber string    `json:"tracking_number"`
	CreatedAt      time.Time `json:"created_at"`
}
