// internal/models/customer.go
package models

import (
	"time"
)

// Customer is the demo account/profile keyed by email. At most one row per
// lower-cased email; the upsert paths look rows up case-insensitively.
type Customer struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	CustomerCode *string   `json:"customerCode" gorm:"size:50"`
	CompanyName  *string   `json:"companyName" gorm:"size:255"`
	ContactName  *string   `json:"contactName" gorm:"size:255"`
	Phone        *string   `json:"phone" gorm:"size:50"`
	AddressLine1 *string   `json:"addressLine1" gorm:"size:255"`
	AddressLine2 *string   `json:"addressLine2" gorm:"size:255"`
	PostalCode   *string   `json:"postalCode" gorm:"size:20"`
	City         *string   `json:"city" gorm:"size:100"`
	Country      *string   `json:"country" gorm:"size:100"`
	VatNumber    *string   `json:"vatNumber" gorm:"size:50"`
	Siret        *string   `json:"siret" gorm:"size:50"`
	ApeCode      *string   `json:"apeCode" gorm:"size:20"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
