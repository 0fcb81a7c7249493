// internal/api/handlers/kit_handler.go
package handlers

import (
	"net/http"
	"time"

	"equipment-inventory-api-server/internal/booking"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type KitHandler struct {
	Store    inventory.Store
	Bookings *booking.Service
}

type CreateKitRequest struct {
	KitNumber        string                   `json:"kitNumber" binding:"required"`
	Name             string                   `json:"name" binding:"required"`
	Type             models.KitType           `json:"type" binding:"required"`
	BoundAssets      []models.BoundAsset      `json:"boundAssets"`
	PoolRequirements []models.PoolRequirement `json:"poolRequirements"`
}

// CreateKit enforces the kit invariants up front: a fixed kit needs bound
// assets, a flexible kit needs pool requirements.
func (h *KitHandler) CreateKit(c *gin.Context) {
	var req CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Type {
	case models.KitTypeFixed:
		if len(req.BoundAssets) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A fixed kit needs at least one bound asset"})
			return
		}
	case models.KitTypeFlexible:
		if len(req.PoolRequirements) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A flexible kit needs at least one pool requirement"})
			return
		}
		for _, pool := range req.PoolRequirements {
			if pool.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Pool quantities must be at least 1"})
				return
			}
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kit type must be fixed or flexible"})
		return
	}

	// A fixed kit can only bind assets that exist.
	for _, bound := range req.BoundAssets {
		if _, err := h.Store.GetAsset(c.Request.Context(), bound.AssetID); err != nil {
			respondError(c, err)
			return
		}
	}

	now := time.Now()
	kit := &models.Kit{
		ID:               uuid.New().String(),
		KitNumber:        req.KitNumber,
		Name:             req.Name,
		Type:             req.Type,
		BoundAssets:      req.BoundAssets,
		PoolRequirements: req.PoolRequirements,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.Store.CreateKit(c.Request.Context(), kit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, kit)
}

func (h *KitHandler) GetKit(c *gin.Context) {
	kit, err := h.Store.GetKit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, kit)
}

// GetKitAvailability answers whether the whole bundle can be booked for a
// window given as RFC 3339 query parameters.
func (h *KitHandler) GetKitAvailability(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Bookings.IsKitAvailable(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
