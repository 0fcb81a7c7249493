// internal/api/handlers/group_handler.go
package handlers

import (
	"net/http"

	"equipment-inventory-api-server/internal/groups"
	"equipment-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	Store  inventory.Store
	Groups *groups.Service
}

func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req groups.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.Groups.CreateGroup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.Store.GetAssetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

type MemberRequest struct {
	AssetID string `json:"assetID" binding:"required"`
}

func (h *GroupHandler) AddMember(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Groups.AddMember(c.Request.Context(), c.Param("id"), req.AssetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *GroupHandler) RemoveMember(c *gin.Context) {
	if err := h.Groups.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("assetID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type BulkUpdateRequest struct {
	Patch          groups.GroupPatch `json:"patch"`
	ClearOverrides bool              `json:"clearOverrides"`
}

// BulkUpdate edits the group and fans the new values out to every member.
func (h *GroupHandler) BulkUpdate(c *gin.Context) {
	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.Groups.BulkUpdateGroupMembers(c.Request.Context(), c.Param("id"), req.Patch, groups.BulkUpdateOptions{ClearOverrides: req.ClearOverrides})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}
