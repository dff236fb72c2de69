// internal/services/credential_store.go
package services

import (
	"strings"
	"sync"

	"github.com/lapalette/backend/internal/models"
)

// DemoUser is one hardcoded demo account. Passwords are plaintext on purpose:
// this is a throwaway demo login, not an authentication system.
type DemoUser struct {
	ID          int64
	Email       string
	Password    string
	Role        models.UserRole
	ShopID      *int64
	DisplayName string
}

// CredentialStore abstracts the demo user list so tests can substitute a
// fake. The in-memory implementation mutates passwords in place and loses
// them on restart.
type CredentialStore interface {
	FindByEmail(email string) (*DemoUser, bool)
	UpdatePassword(id int64, newPassword string) bool
}

type InMemoryCredentialStore struct {
	mtx   sync.Mutex
	users []*DemoUser
}

func NewInMemoryCredentialStore(users []*DemoUser) *InMemoryCredentialStore {
	return &InMemoryCredentialStore{
		users: users,
	}
}

// FindByEmail matches case-insensitively and returns a copy so callers never
// hold a reference into the mutable list.
func (s *InMemoryCredentialStore) FindByEmail(email string) (*DemoUser, bool) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, false
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.users {
		if strings.ToLower(user.Email) == normalized {
			found := *user
			return &found, true
		}
	}
	return nil, false
}

func (s *InMemoryCredentialStore) UpdatePassword(id int64, newPassword string) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			user.Password = newPassword
			return true
		}
	}
	return false
}

func shopIDPtr(id int64) *int64 { return &id }

// DemoUsers is the shipped roster: one admin, one client, one account per
// La Palette shop (bound to its shop id so the front-end can filter orders)
// and one delivery driver.
func DemoUsers() []*DemoUser {
	return []*DemoUser{
		{ID: 1, Email: "admin@lapalette.demo", Password: "admin123", Role: models.UserRoleAdmin, DisplayName: "Admin La Palette"},
		{ID: 2, Email: "client@lapalette.demo", Password: "client123", Role: models.UserRoleClient, DisplayName: "Client démo"},
		{ID: 10, Email: "shop1@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(9), DisplayName: "Magasin 1 – Antony"},
		{ID: 11, Email: "shop2@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(8), DisplayName: "Magasin 2 – Arcueil"},
		{ID: 12, Email: "shop3@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(10), DisplayName: "Magasin 3 – Bougival"},
		{ID: 13, Email: "shop4@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(11), DisplayName: "Magasin 4 – Boulogne"},
		{ID: 14, Email: "shop5@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(12), DisplayName: "Magasin 5 – Bourg la Reine"},
		{ID: 15, Email: "shop6@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(13), DisplayName: "Magasin 6 – Clichy"},
		{ID: 16, Email: "shop7@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(14), DisplayName: "Magasin 7 – Clichy sous bois"},
		{ID: 17, Email: "shop8@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(3), DisplayName: "Magasin 8 – Convention (Paris15e)"},
		{ID: 18, Email: "shop9@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(15), DisplayName: "Magasin 9 – Courbevoie"},
		{ID: 19, Email: "shop10@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(4), DisplayName: "Magasin 10 – Daumesnil (Paris12e)"},
		{ID: 20, Email: "shop11@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(16), DisplayName: "Magasin 11 – Joinville"},
		{ID: 21, Email: "shop12@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(17), DisplayName: "Magasin 12 – Le Perreux-sur-Marne"},
		{ID: 22, Email: "shop13@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(18), DisplayName: "Magasin 13 – Levallois"},
		{ID: 23, Email: "shop14@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(19), DisplayName: "Magasin 14 – Ormesson"},
		{ID: 24, Email: "shop15@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(6), DisplayName: "Magasin 15 – Pyrénées (Paris20e)"},
		{ID: 25, Email: "shop16@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(20), DisplayName: "Magasin 16 – Saint Ouen"},
		{ID: 26, Email: "shop17@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(21), DisplayName: "Magasin 17 – Saint-Maur"},
		{ID: 27, Email: "shop18@lapalette.demo", Password: "shop123", Role: models.UserRoleShop, ShopID: shopIDPtr(7), DisplayName: "Magasin 18 – St Antoine (Paris11e)"},
		{ID: 50, Email: "delivery@lapalette.demo", Password: "delivery123", Role: models.UserRoleDelivery, ShopID: shopIDPtr(9), DisplayName: "Livreur démo"},
	}
}
