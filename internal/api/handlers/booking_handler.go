// internal/api/handlers/booking_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"equipment-inventory-api-server/internal/booking"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
	"equipment-inventory-api-server/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	Store    inventory.Store
	Bookings *booking.Service
	Uploader *s3.Uploader
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type GroupBookingRequest struct {
	AssetIDs    []string                     `json:"assetIDs" binding:"required"`
	Template    booking.CreateBookingRequest `json:"template" binding:"required"`
	StopOnError bool                         `json:"stopOnError"`
}

// CreateGroupBooking books several members of a group in one call. Member
// failures come back in the failures list; the call itself only errors when
// the group is unknown.
func (h *BookingHandler) CreateGroupBooking(c *gin.Context) {
	var req GroupBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Bookings.CreateGroupBooking(c.Request.Context(), c.Param("id"), req.AssetIDs, req.Template, req.StopOnError)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := inventory.BookingFilter{
		AssetID: c.Query("assetID"),
		KitID:   c.Query("kitID"),
		GroupID: c.Query("groupID"),
	}
	if status := c.Query("status"); status != "" {
		filter.Statuses = []models.BookingStatus{models.BookingStatus(status)}
	}
	bookings, err := h.Store.GetBookings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetAssetAvailability answers whether an asset is free for a window given
// as RFC 3339 query parameters.
func (h *BookingHandler) GetAssetAvailability(c *gin.Context) {
	start, end, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available, err := h.Bookings.IsAssetAvailable(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assetID": c.Param("id"), "available": available})
}

func (h *BookingHandler) AllocateQuantity(c *gin.Context) {
	var req booking.AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Bookings.AllocateBookingQuantity(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	updated, err := h.Bookings.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type CheckOutRequest struct {
	Condition *models.ConditionAssessment `json:"condition"`
}

func (h *BookingHandler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Bookings.CheckOut(c.Request.Context(), c.Param("id"), req.Condition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type CheckInRequest struct {
	Condition models.ConditionAssessment `json:"condition" binding:"required"`
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Bookings.CheckIn(c.Request.Context(), c.Param("id"), req.Condition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	updated, err := h.Bookings.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted"})
}

// UploadConditionPhoto stores a checkout/checkin photo in S3 and returns its
// URL for inclusion in a condition assessment.
func (h *BookingHandler) UploadConditionPhoto(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage is not configured"})
		return
	}

	bookingID := c.Param("id")
	if _, err := h.Store.GetBooking(c.Request.Context(), bookingID); err != nil {
		respondError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A photo file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	objectKey := fmt.Sprintf("condition-photos/%s/%s-%s", bookingID, uuid.New().String()[:8], fileHeader.Filename)
	url, err := h.Uploader.UploadFile(c.Request.Context(), file, objectKey, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photo", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}
