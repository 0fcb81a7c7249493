// internal/api/handlers/asset_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"equipment-inventory-api-server/internal/groups"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetHandler struct {
	Store  inventory.Store
	Groups *groups.Service
}

type CreateAssetRequest struct {
	AssetNumber       string            `json:"assetNumber" binding:"required"`
	Name              string            `json:"name" binding:"required"`
	AssetTypeID       string            `json:"assetTypeID" binding:"required"`
	Bookable          *bool             `json:"bookable"`
	PurchasePrice     decimal.Decimal   `json:"purchasePrice"`
	ReplacementCost   decimal.Decimal   `json:"replacementCost"`
	CustomFieldValues map[string]string `json:"customFieldValues"`
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Asset numbers are the user-facing unique code.
	existing, err := h.Store.GetAssets(c.Request.Context(), inventory.AssetFilter{AssetNumber: req.AssetNumber})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(existing) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Asset with this number already exists"})
		return
	}

	bookable := true
	if req.Bookable != nil {
		bookable = *req.Bookable
	}
	now := time.Now()
	asset := &models.Asset{
		ID:                uuid.New().String(),
		AssetNumber:       req.AssetNumber,
		Name:              req.Name,
		AssetTypeID:       req.AssetTypeID,
		Status:            models.AssetStatusAvailable,
		Bookable:          bookable,
		PurchasePrice:     req.PurchasePrice,
		ReplacementCost:   req.ReplacementCost,
		CustomFieldValues: req.CustomFieldValues,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := h.Store.CreateAsset(c.Request.Context(), asset); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.Store.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	filter := inventory.AssetFilter{
		AssetTypeID:   c.Query("assetTypeID"),
		ParentAssetID: c.Query("parentAssetID"),
		GroupID:       c.Query("groupID"),
	}
	assets, err := h.Store.GetAssets(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	c.JSON(http.StatusOK, assets)
}

type UpdateAssetRequest struct {
	Name              *string            `json:"name"`
	Bookable          *bool              `json:"bookable"`
	Status            *string            `json:"status"`
	PurchasePrice     *decimal.Decimal   `json:"purchasePrice"`
	ReplacementCost   *decimal.Decimal   `json:"replacementCost"`
	CustomFieldValues *map[string]string `json:"customFieldValues"`
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.Store.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Bookable != nil {
		asset.Bookable = *req.Bookable
	}
	if req.Status != nil {
		status := models.AssetStatus(*req.Status)
		if status == models.AssetStatusDeleted {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Use the delete endpoint to retire an asset"})
			return
		}
		asset.Status = status
	}
	if req.PurchasePrice != nil {
		asset.PurchasePrice = *req.PurchasePrice
	}
	if req.ReplacementCost != nil {
		asset.ReplacementCost = *req.ReplacementCost
	}
	if req.CustomFieldValues != nil {
		asset.CustomFieldValues = *req.CustomFieldValues
	}

	updated, err := h.Store.UpdateAsset(c.Request.Context(), asset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAsset retires an asset logically: status flips to deleted and the
// record stays in the store. Deleted assets never accept bookings.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	asset, err := h.Store.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	asset.Status = models.AssetStatusDeleted
	asset.Bookable = false
	if _, err := h.Store.UpdateAsset(c.Request.Context(), asset); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Asset deleted"})
}

type SplitToUnitsRequest struct {
	Count int `json:"count" binding:"required,min=1"`
}

// SplitToUnits turns an asset into a multi-unit parent by creating Count
// child units numbered after the parent's asset number.
func (h *AssetHandler) SplitToUnits(c *gin.Context) {
	var req SplitToUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parent, err := h.Store.GetAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if parent.ParentAssetID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot split a child unit"})
		return
	}

	now := time.Now()
	offset := len(parent.ChildAssetIDs)
	created := make([]models.Asset, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		child := models.Asset{
			ID:              uuid.New().String(),
			AssetNumber:     fmt.Sprintf("%s-%03d", parent.AssetNumber, offset+i+1),
			Name:            parent.Name,
			AssetTypeID:     parent.AssetTypeID,
			Status:          models.AssetStatusAvailable,
			Bookable:        true,
			ParentAssetID:   parent.ID,
			PurchasePrice:   parent.PurchasePrice,
			ReplacementCost: parent.ReplacementCost,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := h.Store.CreateAsset(c.Request.Context(), &child); err != nil {
			respondError(c, err)
			return
		}
		parent.ChildAssetIDs = append(parent.ChildAssetIDs, child.ID)
		created = append(created, child)
	}

	if _, err := h.Store.UpdateAsset(c.Request.Context(), parent); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"parent": parent, "units": created})
}

// GetEffectiveField resolves one field's authoritative value for an asset,
// taking group inheritance and overrides into account.
func (h *AssetHandler) GetEffectiveField(c *gin.Context) {
	resolution, err := h.Groups.ResolveAssetField(c.Request.Context(), c.Param("id"), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resolution)
}
