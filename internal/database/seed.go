// internal/database/seed.go
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/models"
)

func strPtr(s string) *string { return &s }

// SeedInitialData provisions the shops and catalog the front-end expects.
// Shop ids are fixed because the demo credential list binds users to them.
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var shopCount int64
	if err := db.Model(&models.Shop{}).Count(&shopCount).Error; err != nil {
		return fmt.Errorf("failed to count shops: %w", err)
	}

	if shopCount == 0 {
		shops := []models.Shop{
			{ID: 3, Code: "CONVENTION", Name: "Convention (Paris 15e)"},
			{ID: 4, Code: "DAUMESNIL", Name: "Daumesnil (Paris 12e)"},
			{ID: 6, Code: "PYRENEES", Name: "Pyrénées (Paris 20e)"},
			{ID: 7, Code: "ST-ANTOINE", Name: "St Antoine (Paris 11e)"},
			{ID: 8, Code: "ARCUEIL", Name: "Arcueil"},
			{ID: 9, Code: "ANTONY", Name: "Antony"},
			{ID: 10, Code: "BOUGIVAL", Name: "Bougival"},
			{ID: 11, Code: "BOULOGNE", Name: "Boulogne"},
			{ID: 12, Code: "BOURG-LA-REINE", Name: "Bourg la Reine"},
			{ID: 13, Code: "CLICHY", Name: "Clichy"},
			{ID: 14, Code: "CLICHY-SOUS-BOIS", Name: "Clichy sous bois"},
			{ID: 15, Code: "COURBEVOIE", Name: "Courbevoie"},
			{ID: 16, Code: "JOINVILLE", Name: "Joinville"},
			{ID: 17, Code: "LE-PERREUX", Name: "Le Perreux-sur-Marne"},
			{ID: 18, Code: "LEVALLOIS", Name: "Levallois"},
			{ID: 19, Code: "ORMESSON", Name: "Ormesson"},
			{ID: 20, Code: "SAINT-OUEN", Name: "Saint Ouen"},
			{ID: 21, Code: "SAINT-MAUR", Name: "Saint-Maur"},
		}

		if err := db.Create(&shops).Error; err != nil {
			return fmt.Errorf("failed to seed shops: %w", err)
		}
		log.Printf("Seeded %d shops", len(shops))
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		products := []models.Product{
			{Name: "Peinture acrylique mate 10L", Description: "Peinture acrylique mate blanche pour murs et plafonds.", Price: 64.90, ImageURL: strPtr("/images/acrylique-mate-10l.jpg"), Active: true},
			{Name: "Peinture satinée 5L", Description: "Finition satinée lessivable, pièces humides.", Price: 49.50, ImageURL: strPtr("/images/satinee-5l.jpg"), Active: true},
			{Name: "Sous-couche universelle 10L", Description: "Sous-couche d'accrochage tous supports.", Price: 39.90, ImageURL: strPtr("/images/sous-couche-10l.jpg"), Active: true},
			{Name: "Lasure bois extérieur 5L", Description: "Protection UV et intempéries, ton chêne clair.", Price: 58.00, ImageURL: strPtr("/images/lasure-5l.jpg"), Active: true},
			{Name: "Kit rouleau + bac", Description: "Rouleau anti-goutte 180mm avec bac et grille.", Price: 12.90, ImageURL: strPtr("/images/kit-rouleau.jpg"), Active: true},
			{Name: "Ruban de masquage 50m", Description: "Ruban de masquage surfaces délicates.", Price: 6.40, ImageURL: strPtr("/images/ruban-masquage.jpg"), Active: true},
		}

		if err := db.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		log.Printf("Seeded %d products", len(products))
	}

	log.Println("Initial data seeding completed")
	return nil
}
