// internal/handlers/customer.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lapalette/backend/internal/services"
	"github.com/lapalette/backend/internal/utils"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// POST /api/customers/register
func (h *CustomerHandler) Register(c *gin.Context) {
	var req services.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" {
		utils.BadRequestResponse(c, "email and name are required")
		return
	}

	result, err := h.customerService.Register(&req)
	if err != nil {
		utils.InternalErrorResponse(c, err, "internal_error")
		return
	}

	if result.Created {
		c.JSON(http.StatusCreated, gin.H{"success": true, "id": result.ID, "created": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": result.ID, "updated": true})
}

// GET /api/customers/me?email=...  (demo: identified by email)
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "email is required")
		return
	}

	customer, err := h.customerService.GetByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrCustomerNotFound) {
			utils.NotFoundResponse(c, "not_found")
			return
		}
		utils.InternalErrorResponse(c, err, "internal_error")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// PUT /api/customers/me  (demo: identified by email in body)
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if req.Email == "" {
		utils.BadRequestResponse(c, "email is required")
		return
	}

	result, err := h.customerService.UpdateProfile(&req)
	if err != nil {
		utils.InternalErrorResponse(c, err, "internal_error")
		return
	}

	if result.Created {
		c.JSON(http.StatusOK, gin.H{"success": true, "id": result.ID, "created": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": result.ID, "updated": true})
}
