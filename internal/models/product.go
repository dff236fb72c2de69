// internal/models/product.go
package models

type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    *string `json:"imageUrl" gorm:"size:500;column:image_url"`
	Active      bool    `json:"-" gorm:"not null;default:true;index"`
}

// Shop is a fulfillment location referenced by orders. Shops are provisioned
// by seed data, never created through the API.
type Shop struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name string `json:"name" gorm:"size:255;not null"`
}
