package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/storefront-sync/internal/domain/document"
)

// SalesOrderModel is the persistence model for the SalesOrder document.
type SalesOrderModel struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primary_key"`
	NamingSeries        string             `gorm:"type:varchar(50);not null"`
	ExternalOrderID     string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_external_id"`
	ExternalOrderNumber string             `gorm:"type:varchar(50)"`
	ExternalStatus      string             `gorm:"type:varchar(30)"`
	Customer            string             `gorm:"type:varchar(200);not null"`
	Company             string             `gorm:"type:varchar(200);not null"`
	TransactionDate     time.Time          `gorm:"not null"`
	DeliveryDate        time.Time          `gorm:"not null"`
	SellingPriceList    string             `gorm:"type:varchar(100)"`
	IgnorePricingRule   bool               `gorm:"not null;default:false"`
	TaxCategory         string             `gorm:"type:varchar(100)"`
	Items               []OrderItemModel   `gorm:"foreignKey:OrderID;references:ID"`
	Taxes               []TaxChargeModel   `gorm:"foreignKey:OrderID;references:ID"`
	Comment             string             `gorm:"type:text"`
	Status              document.DocStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt           time.Time          `gorm:"not null"`
	UpdatedAt           time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *document.SalesOrder {
	so := &document.SalesOrder{
		ID:                  m.ID,
		NamingSeries:        m.NamingSeries,
		ExternalOrderID:     m.ExternalOrderID,
		ExternalOrderNumber: m.ExternalOrderNumber,
		ExternalStatus:      m.ExternalStatus,
		Customer:            m.Customer,
		Company:             m.Company,
		TransactionDate:     m.TransactionDate,
		DeliveryDate:        m.DeliveryDate,
		SellingPriceList:    m.SellingPriceList,
		IgnorePricingRule:   m.IgnorePricingRule,
		TaxCategory:         m.TaxCategory,
		Comment:             m.Comment,
		Status:              m.Status,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		Items:               make([]document.OrderItem, len(m.Items)),
		Taxes:               make([]document.TaxCharge, len(m.Taxes)),
	}
	for i, item := range m.Items {
		so.Items[i] = item.ToDomain()
	}
	for i, tax := range m.Taxes {
		so.Taxes[i] = tax.ToDomain()
	}
	return so
}

// FromDomain populates the persistence model from a domain SalesOrder.
func (m *SalesOrderModel) FromDomain(so *document.SalesOrder) {
	m.ID = so.ID
	m.NamingSeries = so.NamingSeries
	m.ExternalOrderID = so.ExternalOrderID
	m.ExternalOrderNumber = so.ExternalOrderNumber
	m.ExternalStatus = so.ExternalStatus
	m.Customer = so.Customer
	m.Company = so.Company
	m.TransactionDate = so.TransactionDate
	m.DeliveryDate = so.DeliveryDate
	m.SellingPriceList = so.SellingPriceList
	m.IgnorePricingRule = so.IgnorePricingRule
	m.TaxCategory = so.TaxCategory
	m.Comment = so.Comment
	m.Status = so.Status
	m.CreatedAt = so.CreatedAt
	m.UpdatedAt = so.UpdatedAt
	m.Items = make([]OrderItemModel, len(so.Items))
	for i, item := range so.Items {
		m.Items[i] = OrderItemModelFromDomain(so.ID, i, item)
	}
	m.Taxes = make([]TaxChargeModel, len(so.Taxes))
	for i, tax := range so.Taxes {
		m.Taxes[i] = TaxChargeModelFromDomain(so.ID, i, tax)
	}
}

// SalesOrderModelFromDomain creates a persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(so *document.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(so)
	return m
}

// OrderItemModel is the persistence model for one sales order line.
type OrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Idx             int             `gorm:"not null"`
	ItemCode        string          `gorm:"type:varchar(100);not null"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Qty             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeliveryDate    time.Time       `gorm:"not null"`
	StockUOM        string          `gorm:"type:varchar(20);not null"`
	Warehouse       string          `gorm:"type:varchar(200)"`
	DiscountPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() document.OrderItem {
	return document.OrderItem{
		ItemCode:        m.ItemCode,
		ItemName:        m.ItemName,
		Rate:            m.Rate,
		Qty:             m.Qty,
		DeliveryDate:    m.DeliveryDate,
		StockUOM:        m.StockUOM,
		Warehouse:       m.Warehouse,
		DiscountPerUnit: m.DiscountPerUnit,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem.
func OrderItemModelFromDomain(orderID uuid.UUID, idx int, item document.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:              uuid.New(),
		OrderID:         orderID,
		Idx:             idx,
		ItemCode:        item.ItemCode,
		ItemName:        item.ItemName,
		Rate:            item.Rate,
		Qty:             item.Qty,
		DeliveryDate:    item.DeliveryDate,
		StockUOM:        item.StockUOM,
		Warehouse:       item.Warehouse,
		DiscountPerUnit: item.DiscountPerUnit,
	}
}

// TaxChargeModel is the persistence model for one tax or shipping charge row.
type TaxChargeModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	Idx                 int             `gorm:"not null"`
	ChargeType          string          `gorm:"type:varchar(20);not null"`
	AccountHead         string          `gorm:"type:varchar(200);not null"`
	Description         string          `gorm:"type:varchar(500);not null"`
	TaxAmount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostCenter          string          `gorm:"type:varchar(200)"`
	IncludedInPrintRate bool            `gorm:"not null;default:false"`
	ItemWiseTaxDetail   string          `gorm:"type:text"`
	DontRecomputeTax    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TaxChargeModel) TableName() string {
	return "sales_order_taxes"
}

// ToDomain converts the persistence model to a domain TaxCharge.
func (m *TaxChargeModel) ToDomain() document.TaxCharge {
	return document.TaxCharge{
		ChargeType:          m.ChargeType,
		AccountHead:         m.AccountHead,
		Description:         m.Description,
		TaxAmount:           m.TaxAmount,
		CostCenter:          m.CostCenter,
		IncludedInPrintRate: m.IncludedInPrintRate,
		ItemWiseTaxDetail:   m.ItemWiseTaxDetail,
		DontRecomputeTax:    m.DontRecomputeTax,
	}
}

// TaxChargeModelFromDomain creates a persistence model from a domain TaxCharge.
func TaxChargeModelFromDomain(orderID uuid.UUID, idx int, tax document.TaxCharge) TaxChargeModel {
	return TaxChargeModel{
		ID:                  uuid.New(),
		OrderID:             orderID,
		Idx:                 idx,
		ChargeType:          tax.ChargeType,
		AccountHead:         tax.AccountHead,
		Description:         tax.Description,
		TaxAmount:           tax.TaxAmount,
		CostCenter:          tax.CostCenter,
		IncludedInPrintRate: tax.IncludedInPrintRate,
		ItemWiseTaxDetail:   tax.ItemWiseTaxDetail,
		DontRecomputeTax:    tax.DontRecomputeTax,
	}
}

// SalesInvoiceModel is the persistence model for the SalesInvoice document.
type SalesInvoiceModel struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key"`
	ExternalOrderID string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_invoice_external_id"`
	ExternalStatus  string             `gorm:"type:varchar(30)"`
	SalesOrderID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	Customer        string             `gorm:"type:varchar(200);not null"`
	Company         string             `gorm:"type:varchar(200);not null"`
	PostingDate     time.Time          `gorm:"not null"`
	GrandTotal      decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Status          document.DocStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt       time.Time          `gorm:"not null"`
	UpdatedAt       time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesInvoiceModel) TableName() string {
	return "sales_invoices"
}

// ToDomain converts the persistence model to a domain SalesInvoice.
func (m *SalesInvoiceModel) ToDomain() *document.SalesInvoice {
	return &document.SalesInvoice{
		ID:              m.ID,
		ExternalOrderID: m.ExternalOrderID,
		ExternalStatus:  m.ExternalStatus,
		SalesOrderID:    m.SalesOrderID,
		Customer:        m.Customer,
		Company:         m.Company,
		PostingDate:     m.PostingDate,
		GrandTotal:      m.GrandTotal,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain SalesInvoice.
func (m *SalesInvoiceModel) FromDomain(si *document.SalesInvoice) {
	m.ID = si.ID
	m.ExternalOrderID = si.ExternalOrderID
	m.ExternalStatus = si.ExternalStatus
	m.SalesOrderID = si.SalesOrderID
	m.Customer = si.Customer
	m.Company = si.Company
	m.PostingDate = si.PostingDate
	m.GrandTotal = si.GrandTotal
	m.Status = si.Status
	m.CreatedAt = si.CreatedAt
	m.UpdatedAt = si.UpdatedAt
}

// DeliveryNoteModel is the persistence model for the DeliveryNote document.
type DeliveryNoteModel struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primary_key"`
	ExternalOrderID       string             `gorm:"type:varchar(50);not null;index"`
	ExternalFulfillmentID string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_delivery_note_fulfillment_id"`
	ExternalStatus        string             `gorm:"type:varchar(30)"`
	SalesOrderID          uuid.UUID          `gorm:"type:uuid;not null;index"`
	Customer              string             `gorm:"type:varchar(200);not null"`
	Company               string             `gorm:"type:varchar(200);not null"`
	PostingDate           time.Time          `gorm:"not null"`
	Status                document.DocStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	CreatedAt             time.Time          `gorm:"not null"`
	UpdatedAt             time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryNoteModel) TableName() string {
	return "delivery_notes"
}

// ToDomain converts the persistence model to a domain DeliveryNote.
func (m *DeliveryNoteModel) ToDomain() document.DeliveryNote {
	return document.DeliveryNote{
		ID:                    m.ID,
		ExternalOrderID:       m.ExternalOrderID,
		ExternalFulfillmentID: m.ExternalFulfillmentID,
		ExternalStatus:        m.ExternalStatus,
		SalesOrderID:          m.SalesOrderID,
		Customer:              m.Customer,
		Company:               m.Company,
		PostingDate:           m.PostingDate,
		Status:                m.Status,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain DeliveryNote.
func (m *DeliveryNoteModel) FromDomain(dn *document.DeliveryNote) {
	m.ID = dn.ID
	m.ExternalOrderID = dn.ExternalOrderID
	m.ExternalFulfillmentID = dn.ExternalFulfillmentID
	m.ExternalStatus = dn.ExternalStatus
	m.SalesOrderID = dn.SalesOrderID
	m.Customer = dn.Customer
	m.Company = dn.Company
	m.PostingDate = dn.PostingDate
	m.Status = dn.Status
	m.CreatedAt = dn.CreatedAt
	m.UpdatedAt = dn.UpdatedAt
}
