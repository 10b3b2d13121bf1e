package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/erp/storefront-sync/internal/domain/storefront"
)

// SyncLogModel is the persistence model for sync audit log entries.
type SyncLogModel struct {
	ID          uuid.UUID             `gorm:"type:uuid;primary_key"`
	RequestID   string                `gorm:"type:varchar(100);index"`
	Method      string                `gorm:"type:varchar(50);not null;index"`
	Status      storefront.LogStatus  `gorm:"type:varchar(20);not null;index"`
	Message     string                `gorm:"type:varchar(500)"`
	Exception   string                `gorm:"type:text"`
	Rollback    bool                  `gorm:"not null;default:false"`
	RequestData string                `gorm:"type:text"`
	CreatedAt   time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the persistence model to a domain LogEntry.
func (m *SyncLogModel) ToDomain() storefront.LogEntry {
	return storefront.LogEntry{
		ID:          m.ID,
		RequestID:   m.RequestID,
		Method:      m.Method,
		Status:      m.Status,
		Message:     m.Message,
		Exception:   m.Exception,
		Rollback:    m.Rollback,
		RequestData: m.RequestData,
		CreatedAt:   m.CreatedAt,
	}
}

// SyncLogModelFromDomain creates a persistence model from a domain LogEntry.
func SyncLogModelFromDomain(e storefront.LogEntry) *SyncLogModel {
	return &SyncLogModel{
		ID:          e.ID,
		RequestID:   e.RequestID,
		Method:      e.Method,
		Status:      e.Status,
		Message:     e.Message,
		Exception:   e.Exception,
		Rollback:    e.Rollback,
		RequestData: e.RequestData,
		CreatedAt:   e.CreatedAt,
	}
}

// SettingsModel is the persistence model for the integration settings
// singleton. Exactly one row exists, keyed by a fixed ID of 1.
type SettingsModel struct {
	ID               int       `gorm:"primary_key"`
	SalesOrderSeries string    `gorm:"type:varchar(50);not null"`
	DefaultCustomer  string    `gorm:"type:varchar(200)"`
	Company          string    `gorm:"type:varchar(200);not null"`
	PriceList        string    `gorm:"type:varchar(100)"`
	Warehouse        string    `gorm:"type:varchar(200)"`
	CostCenter       string    `gorm:"type:varchar(200)"`
	SyncOldOrders    bool      `gorm:"not null;default:false"`
	OldOrdersFrom    time.Time `gorm:""`
	OldOrdersTo      time.Time `gorm:""`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "sync_settings"
}

// SettingsRowID is the fixed primary key of the settings singleton row.
const SettingsRowID = 1

// ToDomain converts the persistence model to domain Settings.
func (m *SettingsModel) ToDomain() *storefront.Settings {
	return &storefront.Settings{
		SalesOrderSeries: m.SalesOrderSeries,
		DefaultCustomer:  m.DefaultCustomer,
		Company:          m.Company,
		PriceList:        m.PriceList,
		Warehouse:        m.Warehouse,
		CostCenter:       m.CostCenter,
		SyncOldOrders:    m.SyncOldOrders,
		OldOrdersFrom:    m.OldOrdersFrom,
		OldOrdersTo:      m.OldOrdersTo,
	}
}

// FromDomain populates the persistence model from domain Settings.
func (m *SettingsModel) FromDomain(s *storefront.Settings) {
	m.ID = SettingsRowID
	m.SalesOrderSeries = s.SalesOrderSeries
	m.DefaultCustomer = s.DefaultCustomer
	m.Company = s.Company
	m.PriceList = s.PriceList
	m.Warehouse = s.Warehouse
	m.CostCenter = s.CostCenter
	m.SyncOldOrders = s.SyncOldOrders
	m.OldOrdersFrom = s.OldOrdersFrom
	m.OldOrdersTo = s.OldOrdersTo
	m.UpdatedAt = time.Now()
}

// TaxAccountMappingModel maps one storefront tax title to a ledger account.
type TaxAccountMappingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	TaxTitle    string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_tax_mapping_title"`
	AccountHead string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:varchar(500)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaxAccountMappingModel) TableName() string {
	return "tax_account_mappings"
}

// ItemMappingModel maps one storefront product to an ERP item code.
type ItemMappingModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	ExternalProductID int64     `gorm:"not null;uniqueIndex:idx_item_mapping_product"`
	ItemCode          string    `gorm:"type:varchar(100);not null"`
	ItemName          string    `gorm:"type:varchar(200)"`
	StockUOM          string    `gorm:"type:varchar(20)"`
	Disabled          bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemMappingModel) TableName() string {
	return "item_mappings"
}

// CustomerModel is the ERP-side customer record backing synced orders.
type CustomerModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	ExternalCustomerID int64     `gorm:"not null;uniqueIndex:idx_customer_external_id"`
	Name               string    `gorm:"type:varchar(200);not null"`
	Email              string    `gorm:"type:varchar(200)"`
	Phone              string    `gorm:"type:varchar(50)"`
	BillingAddress     string    `gorm:"type:text"`
	ShippingAddress    string    `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}
