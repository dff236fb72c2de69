// internal/services/customer_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/models"
	"github.com/lapalette/backend/internal/utils"
)

// CustomerService stores demo customer profiles keyed by email,
// case-insensitively. Writes are upserts where each field coalesces against
// the stored value: absent input never erases existing data.
type CustomerService struct {
	db *gorm.DB
}

type RegisterCustomerRequest struct {
	Email        string  `json:"email" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Phone        *string `json:"phone"`
	CompanyName  *string `json:"companyName"`
	Address      *string `json:"address"`
	CustomerCode *string `json:"customerCode"`
	VatNumber    *string `json:"vatNumber"`
	Siret        *string `json:"siret"`
	ApeCode      *string `json:"apeCode"`
}

type UpdateProfileRequest struct {
	Email        string  `json:"email" validate:"required"`
	CustomerCode *string `json:"customerCode"`
	CompanyName  *string `json:"companyName"`
	ContactName  *string `json:"contactName"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	PostalCode   *string `json:"postalCode"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	VatNumber    *string `json:"vatNumber"`
	Siret        *string `json:"siret"`
	ApeCode      *string `json:"apeCode"`
}

type UpsertResult struct {
	ID      int64
	Created bool
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{
		db: db,
	}
}

// Register creates or refreshes the basic profile captured at sign-up. The
// form's name and address map to contact_name and address_line1.
func (s *CustomerService) Register(req *RegisterCustomerRequest) (*UpsertResult, error) {
	name := req.Name
	return s.upsert(req.Email, &models.Customer{
		CustomerCode: utils.NormalizeString(req.CustomerCode),
		CompanyName:  utils.NormalizeString(req.CompanyName),
		ContactName:  utils.NormalizeString(&name),
		Phone:        utils.NormalizeString(req.Phone),
		AddressLine1: utils.NormalizeString(req.Address),
		VatNumber:    utils.NormalizeString(req.VatNumber),
		Siret:        utils.NormalizeString(req.Siret),
		ApeCode:      utils.NormalizeString(req.ApeCode),
	})
}

// UpdateProfile upserts the full profile form.
func (s *CustomerService) UpdateProfile(req *UpdateProfileRequest) (*UpsertResult, error) {
	return s.upsert(req.Email, &models.Customer{
		CustomerCode: utils.NormalizeString(req.CustomerCode),
		CompanyName:  utils.NormalizeString(req.CompanyName),
		ContactName:  utils.NormalizeString(req.ContactName),
		Phone:        utils.NormalizeString(req.Phone),
		AddressLine1: utils.NormalizeString(req.AddressLine1),
		AddressLine2: utils.NormalizeString(req.AddressLine2),
		PostalCode:   utils.NormalizeString(req.PostalCode),
		City:         utils.NormalizeString(req.City),
		Country:      utils.NormalizeString(req.Country),
		VatNumber:    utils.NormalizeString(req.VatNumber),
		Siret:        utils.NormalizeString(req.Siret),
		ApeCode:      utils.NormalizeString(req.ApeCode),
	})
}

// GetByEmail resolves a profile case-insensitively.
func (s *CustomerService) GetByEmail(email string) (*models.Customer, error) {
	normalized := utils.NormalizeString(&email)
	if normalized == nil {
		return nil, ErrCustomerNotFound
	}

	var customer models.Customer
	err := s.db.Where("LOWER(email) = LOWER(?)", *normalized).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	return &customer, nil
}

func (s *CustomerService) upsert(email string, fields *models.Customer) (*UpsertResult, error) {
	normalized := utils.NormalizeString(&email)
	if normalized == nil {
		return nil, ErrCustomerNotFound
	}

	var existing models.Customer
	err := s.db.Where("LOWER(email) = LOWER(?)", *normalized).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{}
		addUpdate(updates, "customer_code", fields.CustomerCode)
		addUpdate(updates, "company_name", fields.CompanyName)
		addUpdate(updates, "contact_name", fields.ContactName)
		addUpdate(updates, "phone", fields.Phone)
		addUpdate(updates, "address_line1", fields.AddressLine1)
		addUpdate(updates, "address_line2", fields.AddressLine2)
		addUpdate(updates, "postal_code", fields.PostalCode)
		addUpdate(updates, "city", fields.City)
		addUpdate(updates, "country", fields.Country)
		addUpdate(updates, "vat_number", fields.VatNumber)
		addUpdate(updates, "siret", fields.Siret)
		addUpdate(updates, "ape_code", fields.ApeCode)

		if len(updates) > 0 {
			if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update customer: %w", err)
			}
		}

		return &UpsertResult{ID: existing.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	customer := *fields
	customer.Email = *normalized
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &UpsertResult{ID: customer.ID, Created: true}, nil
}

// addUpdate keeps the coalesce semantics: nil input leaves the column alone.
func addUpdate(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}
