package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/erp/storefront-sync/internal/domain/storefront"
	"github.com/erp/storefront-sync/internal/infrastructure/persistence/models"
)

// GormCustomerRepository implements storefront.CustomerSync backed by the
// customers table.
type GormCustomerRepository struct {
	db *gorm.DB
}

var _ storefront.CustomerSync = (*GormCustomerRepository)(nil)

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// SyncCustomer creates the customer when absent, or refreshes the stored
// addresses when it already exists. Guest checkouts (nil customer) are a
// no-op; the order falls back to the configured default customer.
func (r *GormCustomerRepository) SyncCustomer(ctx context.Context, customer *storefront.Customer, billing, shipping *storefront.Address) error {
	if customer == nil || customer.ID == 0 {
		return nil
	}

	db := dbFromContext(ctx, r.db).WithContext(ctx)
	now := time.Now()

	model := models.CustomerModel{
		ID:                 uuid.New(),
		ExternalCustomerID: customer.ID,
		Name:               customerDisplayName(customer),
		Email:              customer.Email,
		Phone:              customer.Phone,
		BillingAddress:     marshalAddress(billing),
		ShippingAddress:    marshalAddress(shipping),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "phone", "billing_address", "shipping_address", "updated_at",
		}),
	}).Create(&model).Error
}

// CustomerName returns the ERP customer name for an external customer id,
// or empty when the customer is unknown.
func (r *GormCustomerRepository) CustomerName(ctx context.Context, externalCustomerID int64) (string, error) {
	var model models.CustomerModel
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("external_customer_id = ?", externalCustomerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return model.Name, nil
}

// customerDisplayName builds the stored customer name from the payload,
// falling back to the email for nameless buyer records.
func customerDisplayName(c *storefront.Customer) string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name != "" {
		return name
	}
	return c.Email
}

func marshalAddress(a *storefront.Address) string {
	if a == nil {
		return ""
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return ""
	}
	return string(raw)
}
