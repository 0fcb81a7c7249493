// internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"equipment-inventory-api-server/internal/inventory"

	"github.com/gin-gonic/gin"
)

// respondError maps the core's error taxonomy onto HTTP statuses:
// validation → 400, not-found → 404, state and availability conflicts → 409.
func respondError(c *gin.Context, err error) {
	var validationErr *inventory.ValidationError
	var stateErr *inventory.StateError
	var availErr *inventory.AvailabilityError

	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusConflict, gin.H{"error": stateErr.Error()})
	case errors.As(err, &availErr):
		body := gin.H{"error": availErr.Error()}
		if len(availErr.UnavailableAssets) > 0 {
			body["unavailableAssets"] = availErr.UnavailableAssets
		}
		c.JSON(http.StatusConflict, body)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
