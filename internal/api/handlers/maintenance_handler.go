// internal/api/handlers/maintenance_handler.go
package handlers

import (
	"net/http"
	"time"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MaintenanceHandler struct {
	Store inventory.Store
}

type OpenMaintenanceRequest struct {
	AssetID     string `json:"assetID" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// OpenMaintenance starts a service job and pulls the asset out of
// circulation: it stays broken until the job completes.
func (h *MaintenanceHandler) OpenMaintenance(c *gin.Context) {
	var req OpenMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.Store.GetAsset(c.Request.Context(), req.AssetID)
	if err != nil {
		respondError(c, err)
		return
	}
	if asset.Status == models.AssetStatusInUse {
		c.JSON(http.StatusConflict, gin.H{"error": "Asset is checked out; check it in before servicing"})
		return
	}

	actor, err := h.Store.CurrentActor(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	now := time.Now()
	stamp := models.NewActorStamp(actor, now)
	m := &models.Maintenance{
		ID:          uuid.New().String(),
		AssetID:     req.AssetID,
		Description: req.Description,
		Status:      models.MaintenanceOpen,
		OpenedBy:    &stamp,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Store.CreateMaintenance(c.Request.Context(), m); err != nil {
		respondError(c, err)
		return
	}

	asset.Status = models.AssetStatusBroken
	if _, err := h.Store.UpdateAsset(c.Request.Context(), asset); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

type CompleteMaintenanceRequest struct {
	Resolution string          `json:"resolution" binding:"required"`
	Cost       decimal.Decimal `json:"cost"`
}

// CompleteMaintenance closes the job and returns the asset to available.
func (h *MaintenanceHandler) CompleteMaintenance(c *gin.Context) {
	var req CompleteMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.Store.GetMaintenance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if m.Status != models.MaintenanceOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "Maintenance job is already completed"})
		return
	}

	actor, err := h.Store.CurrentActor(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	now := time.Now()
	stamp := models.NewActorStamp(actor, now)
	m.Status = models.MaintenanceCompleted
	m.Resolution = req.Resolution
	m.Cost = req.Cost
	m.CompletedBy = &stamp
	updated, err := h.Store.UpdateMaintenance(c.Request.Context(), m)
	if err != nil {
		respondError(c, err)
		return
	}

	asset, err := h.Store.GetAsset(c.Request.Context(), m.AssetID)
	if err == nil {
		asset.Status = models.AssetStatusAvailable
		asset.Damaged = false
		asset.DamageNotes = ""
		if _, err := h.Store.UpdateAsset(c.Request.Context(), asset); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, updated)
}

func (h *MaintenanceHandler) ListByAsset(c *gin.Context) {
	jobs, err := h.Store.GetMaintenances(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if jobs == nil {
		jobs = []models.Maintenance{}
	}
	c.JSON(http.StatusOK, jobs)
}
