// internal/booking/kits.go
package booking

import (
	"context"
	"fmt"
	"time"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

// KitAvailability answers "can this bundle be booked for this window?".
type KitAvailability struct {
	Available         bool     `json:"available"`
	UnavailableAssets []string `json:"unavailableAssets,omitempty"`
	Reason            string   `json:"reason,omitempty"`
}

// IsKitAvailable checks a fixed kit by checking every bound asset, and a
// flexible kit by counting free pool assets per requirement. Purely a
// read/decision operation; no side effects.
func (s *Service) IsKitAvailable(ctx context.Context, kitID string, start, end time.Time) (*KitAvailability, error) {
	kit, err := s.store.GetKit(ctx, kitID)
	if err != nil {
		return nil, err
	}
	switch kit.Type {
	case models.KitTypeFixed:
		return s.fixedKitAvailability(ctx, kit, start, end)
	case models.KitTypeFlexible:
		return s.flexibleKitAvailability(ctx, kit, start, end)
	default:
		return nil, fmt.Errorf("kit %s has unknown type %q", kit.ID, kit.Type)
	}
}

func (s *Service) fixedKitAvailability(ctx context.Context, kit *models.Kit, start, end time.Time) (*KitAvailability, error) {
	if len(kit.BoundAssets) == 0 {
		// Creation enforces a non-empty list; hitting this means a corrupt
		// record, reported as unavailable rather than an internal error.
		return &KitAvailability{Available: false, Reason: "Fixed kit has no bound assets"}, nil
	}

	var unavailable []string
	for _, bound := range kit.BoundAssets {
		free, err := s.IsAssetAvailable(ctx, bound.AssetID, start, end)
		if err != nil {
			return nil, err
		}
		if !free {
			unavailable = append(unavailable, bound.AssetID)
		}
	}
	if len(unavailable) > 0 {
		return &KitAvailability{
			Available:         false,
			UnavailableAssets: unavailable,
			Reason:            fmt.Sprintf("%d asset(s) unavailable", len(unavailable)),
		}, nil
	}
	return &KitAvailability{Available: true}, nil
}

// flexibleKitAvailability fails fast on the first pool that comes up short
// rather than aggregating every shortfall.
func (s *Service) flexibleKitAvailability(ctx context.Context, kit *models.Kit, start, end time.Time) (*KitAvailability, error) {
	if len(kit.PoolRequirements) == 0 {
		return &KitAvailability{Available: false, Reason: "Flexible kit has no pool requirements"}, nil
	}

	for _, pool := range kit.PoolRequirements {
		assets, err := s.store.GetAssets(ctx, inventory.AssetFilter{AssetTypeID: pool.AssetTypeID})
		if err != nil {
			return nil, err
		}

		free := 0
		for i := range assets {
			a := &assets[i]
			if !matchesPoolFilters(a, pool.Filters) {
				continue
			}
			if !a.Bookable || a.Status.BlocksBooking() {
				continue
			}
			ok, err := s.IsAssetAvailable(ctx, a.ID, start, end)
			if err != nil {
				return nil, err
			}
			if ok {
				free++
				if free == pool.Quantity {
					break
				}
			}
		}
		if free < pool.Quantity {
			return &KitAvailability{
				Available: false,
				Reason:    fmt.Sprintf("pool %s: need %d, only %d available", pool.AssetTypeID, pool.Quantity, free),
			}, nil
		}
	}
	return &KitAvailability{Available: true}, nil
}

// matchesPoolFilters applies a pool's field-equality filters with AND
// semantics against the asset's own stored values.
func matchesPoolFilters(asset *models.Asset, filters map[string]string) bool {
	for key, want := range filters {
		got, ok := asset.FieldValue(key)
		if !ok || got != want {
			return false
		}
	}
	return true
}
