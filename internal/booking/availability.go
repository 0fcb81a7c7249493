// internal/booking/availability.go
package booking

import (
	"context"
	"time"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

// IsAssetAvailable reports whether an asset is free for [start, end].
//
// Windows are closed intervals: a booking ending exactly when another starts
// is a conflict. Only approved and active bookings block; pending, completed
// and cancelled never do. An asset with no booking history is trivially
// available.
func (s *Service) IsAssetAvailable(ctx context.Context, assetID string, start, end time.Time) (bool, error) {
	blocking, err := s.store.GetBookings(ctx, inventory.BookingFilter{
		AssetID:  assetID,
		Statuses: []models.BookingStatus{models.BookingStatusApproved, models.BookingStatusActive},
	})
	if err != nil {
		return false, err
	}
	for i := range blocking {
		if blocking[i].Overlaps(start, end) {
			return false, nil
		}
	}
	return true, nil
}
