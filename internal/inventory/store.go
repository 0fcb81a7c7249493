// internal/inventory/store.go
package inventory

import (
	"context"

	"equipment-inventory-api-server/internal/models"
)

// AssetFilter narrows GetAssets. Zero values mean "any".
type AssetFilter struct {
	AssetTypeID   string
	ParentAssetID string
	AssetNumber   string
	GroupID       string
	Bookable      *bool
}

// BookingFilter narrows GetBookings. Zero values mean "any".
type BookingFilter struct {
	AssetID  string
	KitID    string
	GroupID  string
	Statuses []models.BookingStatus
}

// Store is the typed facade over the remote record store that the core
// consumes. Implementations: RemoteStore (production, backed by the
// record-store HTTP client) and MemoryStore (tests).
//
// All writes are keyed by caller-supplied ids, so retries do not duplicate
// records. Reads followed by writes are NOT atomic; see the booking service
// for the consequences.
type Store interface {
	GetAsset(ctx context.Context, id string) (*models.Asset, error)
	// GetAssets returns matching assets sorted by asset number. The ordering
	// is load-bearing: the quantity allocator takes candidates in this order.
	GetAssets(ctx context.Context, filter AssetFilter) ([]models.Asset, error)
	CreateAsset(ctx context.Context, asset *models.Asset) error
	UpdateAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error

	GetKit(ctx context.Context, id string) (*models.Kit, error)
	CreateKit(ctx context.Context, kit *models.Kit) error

	GetAssetGroup(ctx context.Context, id string) (*models.AssetGroup, error)
	CreateAssetGroup(ctx context.Context, group *models.AssetGroup) error
	UpdateAssetGroup(ctx context.Context, group *models.AssetGroup) (*models.AssetGroup, error)

	GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error)
	GetMaintenances(ctx context.Context, assetID string) ([]models.Maintenance, error)
	CreateMaintenance(ctx context.Context, m *models.Maintenance) error
	UpdateMaintenance(ctx context.Context, m *models.Maintenance) (*models.Maintenance, error)

	// CurrentActor reports the acting user for audit stamping.
	CurrentActor(ctx context.Context) (models.Actor, error)
}

// MatchAsset reports whether an asset passes the filter.
func MatchAsset(a *models.Asset, f AssetFilter) bool {
	if f.AssetTypeID != "" && a.AssetTypeID != f.AssetTypeID {
		return false
	}
	if f.ParentAssetID != "" && a.ParentAssetID != f.ParentAssetID {
		return false
	}
	if f.AssetNumber != "" && a.AssetNumber != f.AssetNumber {
		return false
	}
	if f.GroupID != "" && (a.AssetGroup == nil || a.AssetGroup.ID != f.GroupID) {
		return false
	}
	if f.Bookable != nil && a.Bookable != *f.Bookable {
		return false
	}
	return true
}

// MatchBooking reports whether a booking passes the filter. The AssetID
// filter matches any booking referencing the asset: directly, or through the
// allocated child units of a quantity booking.
func MatchBooking(b *models.Booking, f BookingFilter) bool {
	if f.AssetID != "" && !b.References(f.AssetID) {
		return false
	}
	if f.KitID != "" && b.KitID != f.KitID {
		return false
	}
	if f.GroupID != "" && b.GroupID != f.GroupID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if b.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
