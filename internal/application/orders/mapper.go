package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/storefront-sync/internal/domain/document"
	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/logger"
)

// defaultNamingSeries is used when settings carry no series.
const defaultNamingSeries = "SO-WEB-"

// defaultStockUOM is stamped on items the platform reports no unit for.
const defaultStockUOM = "Nos"

// placeholderTaxCategory keeps the ERP's tax templates from recomputing the
// imported charge rows.
const placeholderTaxCategory = "Ecommerce Integration"

// MapperService builds ERP sales orders from storefront order payloads.
type MapperService struct {
	orders      document.SalesOrderRepository
	customers   storefront.CustomerSync
	catalog     storefront.ItemCatalog
	taxAccounts storefront.TaxAccountResolver

	now func() time.Time
}

// NewMapperService creates a new MapperService.
func NewMapperService(
	orders document.SalesOrderRepository,
	customers storefront.CustomerSync,
	catalog storefront.ItemCatalog,
	taxAccounts storefront.TaxAccountResolver,
) *MapperService {
	return &MapperService{
		orders:      orders,
		customers:   customers,
		catalog:     catalog,
		taxAccounts: taxAccounts,
		now:         time.Now,
	}
}

// CreateOrder maps the payload to a sales order and persists it submitted.
//
// It is idempotent on the external order id: when a sales order already
// exists it is returned unchanged. When any line item's backing product is
// unresolved the whole mapping aborts and an error wrapping
// storefront.ErrItemNotResolved names the offending items.
func (s *MapperService) CreateOrder(ctx context.Context, order *storefront.Order, settings *storefront.Settings, company string) (*document.SalesOrder, error) {
	existing, err := s.orders.FindByExternalID(ctx, order.ExternalID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, document.ErrSalesOrderNotFound) {
		return nil, err
	}

	transactionDate := order.TransactionDate(s.now())

	items, unresolved, err := s.orderItems(ctx, order, settings, transactionDate)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", storefront.ErrItemNotResolved, strings.Join(unresolved, ", "))
	}

	taxes, err := s.orderTaxes(ctx, order, settings)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerName(ctx, order, settings)
	if err != nil {
		return nil, err
	}

	so := document.NewSalesOrder(order.ExternalID())
	so.NamingSeries = settings.SalesOrderSeries
	if so.NamingSeries == "" {
		so.NamingSeries = defaultNamingSeries
	}
	so.ExternalOrderNumber = order.Name
	so.Customer = customer
	so.TransactionDate = transactionDate
	so.DeliveryDate = transactionDate
	so.Company = settings.Company
	if company != "" {
		so.Company = company
	}
	so.SellingPriceList = settings.PriceList
	so.IgnorePricingRule = true
	so.TaxCategory = placeholderTaxCategory
	so.Items = items
	so.Taxes = taxes

	if err := so.Submit(); err != nil {
		return nil, err
	}
	if order.Note != "" {
		so.Comment = fmt.Sprintf("Order Note: %s", order.Note)
	}
	if err := s.orders.Save(ctx, so); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("sales order created",
		zap.String("external_order_id", so.ExternalOrderID),
		zap.String("sales_order_id", so.ID.String()),
	)
	return so, nil
}

// customerName resolves the payload customer to an ERP customer name,
// falling back to the configured default customer.
func (s *MapperService) customerName(ctx context.Context, order *storefront.Order, settings *storefront.Settings) (string, error) {
	if order.Customer != nil && order.Customer.ID != 0 {
		name, err := s.customers.CustomerName(ctx, order.Customer.ID)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return settings.DefaultCustomer, nil
}

// orderItems maps the payload line items. Mapping is all-or-nothing: once
// any item's product is unresolved, every item accumulated so far is
// discarded and only the unresolved titles keep collecting, so the caller
// can name them. The returned slice is empty whenever at least one item was
// unresolvable.
func (s *MapperService) orderItems(ctx context.Context, order *storefront.Order, settings *storefront.Settings, deliveryDate time.Time) ([]document.OrderItem, []string, error) {
	items := make([]document.OrderItem, 0, len(order.LineItems))
	allResolved := true
	var unresolved []string

	for i := range order.LineItems {
		li := &order.LineItems[i]
		if !li.ProductExists {
			allResolved = false
			unresolved = append(unresolved, fmt.Sprintf("%s (%d)", li.Title, li.ID))
			continue
		}

		if allResolved {
			itemCode, err := s.catalog.ItemCode(ctx, li)
			if err != nil {
				return nil, nil, err
			}
			uom := li.UOM
			if uom == "" {
				uom = defaultStockUOM
			}
			items = append(items, document.OrderItem{
				ItemCode:        itemCode,
				ItemName:        li.Name,
				Rate:            netUnitPrice(li, order.TaxesIncluded),
				Qty:             decimal.NewFromInt(li.Quantity),
				DeliveryDate:    deliveryDate,
				StockUOM:        uom,
				Warehouse:       settings.Warehouse,
				DiscountPerUnit: perUnitDiscount(li),
			})
		} else {
			items = items[:0]
		}
	}

	if !allResolved {
		return nil, unresolved, nil
	}
	return items, nil, nil
}

// orderTaxes emits one Actual charge per line item tax line, then folds the
// shipping lines in: one consolidated net shipping charge per priced
// shipping line plus one undiminished charge per shipping tax line.
func (s *MapperService) orderTaxes(ctx context.Context, order *storefront.Order, settings *storefront.Settings) ([]document.TaxCharge, error) {
	var taxes []document.TaxCharge

	for i := range order.LineItems {
		li := &order.LineItems[i]
		itemCode, err := s.catalog.ItemCode(ctx, li)
		if err != nil {
			return nil, err
		}
		for _, tax := range li.TaxLines {
			account, err := s.taxAccounts.Resolve(ctx, tax.Title)
			if err != nil {
				return nil, err
			}
			taxes = append(taxes, document.TaxCharge{
				ChargeType:          document.ChargeTypeActual,
				AccountHead:         account.AccountHead,
				Description:         taxDescription(account.Description, tax.Title, tax.Rate),
				TaxAmount:           tax.Price,
				CostCenter:          settings.CostCenter,
				IncludedInPrintRate: false,
				ItemWiseTaxDetail:   itemWiseTaxDetail(itemCode, tax),
				DontRecomputeTax:    true,
			})
		}
	}

	return s.foldShippingLines(ctx, taxes, order, settings)
}

// foldShippingLines appends the shipping charges. Shipping taxes are booked
// twice on purpose: once inside the consolidated shipping charge reduction
// (when tax-inclusive) and once as standalone tax rows.
func (s *MapperService) foldShippingLines(ctx context.Context, taxes []document.TaxCharge, order *storefront.Order, settings *storefront.Settings) ([]document.TaxCharge, error) {
	for i := range order.ShippingLines {
		sl := &order.ShippingLines[i]

		if !sl.Price.IsZero() {
			account, err := s.taxAccounts.Resolve(ctx, sl.Title)
			if err != nil {
				return nil, err
			}
			description := account.Description
			if description == "" {
				description = sl.Title
			}
			taxes = append(taxes, document.TaxCharge{
				ChargeType:  document.ChargeTypeActual,
				AccountHead: account.AccountHead,
				Description: description,
				TaxAmount:   shippingChargeAmount(sl, order.TaxesIncluded),
				CostCenter:  settings.CostCenter,
			})
		}

		for _, tax := range sl.TaxLines {
			account, err := s.taxAccounts.Resolve(ctx, tax.Title)
			if err != nil {
				return nil, err
			}
			taxes = append(taxes, document.TaxCharge{
				ChargeType:  document.ChargeTypeActual,
				AccountHead: account.AccountHead,
				Description: taxDescription(account.Description, tax.Title, tax.Rate),
				TaxAmount:   tax.Price,
				CostCenter:  settings.CostCenter,
			})
		}
	}
	return taxes, nil
}
