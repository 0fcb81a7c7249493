package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

func seedKit(t *testing.T, store *inventory.MemoryStore, kit models.Kit) {
	t.Helper()
	if err := store.CreateKit(context.Background(), &kit); err != nil {
		t.Fatalf("seed kit %s: %v", kit.ID, err)
	}
}

func TestFixedKitAvailable(t *testing.T) {
	svc, store := newTestService(t)
	seedAsset(t, store, models.Asset{ID: "cam", AssetNumber: "CAM-001", Bookable: true})
	seedAsset(t, store, models.Asset{ID: "mic", AssetNumber: "MIC-001", Bookable: true})
	seedKit(t, store, models.Kit{
		ID: "kit1", Type: models.KitTypeFixed,
		BoundAssets: []models.BoundAsset{{AssetID: "cam"}, {AssetID: "mic"}},
	})

	res, err := svc.IsKitAvailable(context.Background(), "kit1",
		mustParse(t, "2025-10-25T09:00:00Z"), mustParse(t, "2025-10-25T17:00:00Z"))
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if !res.Available {
		t.Errorf("kit should be available, got reason %q", res.Reason)
	}
}

func TestFixedKitCollectsUnavailableMembers(t *testing.T) {
	svc, store := newTestService(t)
	seedAsset(t, store, models.Asset{ID: "cam", AssetNumber: "CAM-001", Bookable: true})
	seedAsset(t, store, models.Asset{ID: "mic", AssetNumber: "MIC-001", Bookable: true})
	seedAsset(t, store, models.Asset{ID: "tripod", AssetNumber: "TRI-001", Bookable: true})
	seedKit(t, store, models.Kit{
		ID: "kit1", Type: models.KitTypeFixed,
		BoundAssets: []models.BoundAsset{{AssetID: "cam"}, {AssetID: "mic"}, {AssetID: "tripod"}},
	})

	start := mustParse(t, "2025-10-25T09:00:00Z")
	end := mustParse(t, "2025-10-25T17:00:00Z")
	seedBooking(t, store, models.Booking{ID: "b1", AssetID: "cam", Status: models.BookingStatusApproved, StartDate: start, EndDate: end})
	seedBooking(t, store, models.Booking{ID: "b2", AssetID: "tripod", Status: models.BookingStatusActive, StartDate: start, EndDate: end})

	res, err := svc.IsKitAvailable(context.Background(), "kit1", start, end)
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if res.Available {
		t.Fatal("kit with busy members should not be available")
	}
	if len(res.UnavailableAssets) != 2 {
		t.Errorf("unavailableAssets = %v, want cam and tripod", res.UnavailableAssets)
	}
	if res.Reason != "2 asset(s) unavailable" {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestFixedKitWithoutBoundAssets(t *testing.T) {
	svc, store := newTestService(t)
	seedKit(t, store, models.Kit{ID: "empty", Type: models.KitTypeFixed})

	res, err := svc.IsKitAvailable(context.Background(), "empty",
		mustParse(t, "2025-10-25T09:00:00Z"), mustParse(t, "2025-10-25T17:00:00Z"))
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if res.Available {
		t.Error("empty fixed kit is an error state, not available")
	}
	if res.Reason != "Fixed kit has no bound assets" {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestFlexibleKitPoolShortfall(t *testing.T) {
	svc, store := newTestService(t)
	// Pool of two matching radios, one busy for the window: need 2, have 1.
	seedAsset(t, store, models.Asset{
		ID: "r1", AssetNumber: "RAD-001", AssetTypeID: "radio", Bookable: true,
		CustomFieldValues: map[string]string{"band": "uhf"},
	})
	seedAsset(t, store, models.Asset{
		ID: "r2", AssetNumber: "RAD-002", AssetTypeID: "radio", Bookable: true,
		CustomFieldValues: map[string]string{"band": "uhf"},
	})
	seedKit(t, store, models.Kit{
		ID: "flex", Type: models.KitTypeFlexible,
		PoolRequirements: []models.PoolRequirement{
			{AssetTypeID: "radio", Quantity: 2, Filters: map[string]string{"band": "uhf"}},
		},
	})

	start := mustParse(t, "2025-10-25T09:00:00Z")
	end := mustParse(t, "2025-10-25T17:00:00Z")
	seedBooking(t, store, models.Booking{ID: "b1", AssetID: "r2", Status: models.BookingStatusApproved, StartDate: start, EndDate: end})

	res, err := svc.IsKitAvailable(context.Background(), "flex", start, end)
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if res.Available {
		t.Fatal("pool with shortfall should not be available")
	}
	if !strings.Contains(res.Reason, "radio") || !strings.Contains(res.Reason, "2") || !strings.Contains(res.Reason, "1") {
		t.Errorf("reason should name the pool and counts, got %q", res.Reason)
	}
}

func TestFlexibleKitFiltersAndSatisfaction(t *testing.T) {
	svc, store := newTestService(t)
	seedAsset(t, store, models.Asset{
		ID: "r1", AssetNumber: "RAD-001", AssetTypeID: "radio", Bookable: true,
		CustomFieldValues: map[string]string{"band": "uhf"},
	})
	// Wrong band: filtered out even though free.
	seedAsset(t, store, models.Asset{
		ID: "r2", AssetNumber: "RAD-002", AssetTypeID: "radio", Bookable: true,
		CustomFieldValues: map[string]string{"band": "vhf"},
	})
	// Broken: never counts regardless of calendar.
	seedAsset(t, store, models.Asset{
		ID: "r3", AssetNumber: "RAD-003", AssetTypeID: "radio", Bookable: true,
		Status:            models.AssetStatusBroken,
		CustomFieldValues: map[string]string{"band": "uhf"},
	})
	seedKit(t, store, models.Kit{
		ID: "flex", Type: models.KitTypeFlexible,
		PoolRequirements: []models.PoolRequirement{
			{AssetTypeID: "radio", Quantity: 1, Filters: map[string]string{"band": "uhf"}},
		},
	})

	res, err := svc.IsKitAvailable(context.Background(), "flex",
		mustParse(t, "2025-10-25T09:00:00Z"), mustParse(t, "2025-10-25T17:00:00Z"))
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if !res.Available {
		t.Errorf("one free uhf radio satisfies quantity 1, got reason %q", res.Reason)
	}
}

func TestFlexibleKitFailsFastOnFirstPool(t *testing.T) {
	svc, store := newTestService(t)
	seedKit(t, store, models.Kit{
		ID: "flex", Type: models.KitTypeFlexible,
		PoolRequirements: []models.PoolRequirement{
			{AssetTypeID: "radio", Quantity: 1},
			{AssetTypeID: "camera", Quantity: 1},
		},
	})

	res, err := svc.IsKitAvailable(context.Background(), "flex",
		mustParse(t, "2025-10-25T09:00:00Z"), mustParse(t, "2025-10-25T17:00:00Z"))
	if err != nil {
		t.Fatalf("IsKitAvailable: %v", err)
	}
	if res.Available {
		t.Fatal("empty pools cannot be satisfied")
	}
	if !strings.Contains(res.Reason, "radio") {
		t.Errorf("first failing pool should be reported, got %q", res.Reason)
	}
	if strings.Contains(res.Reason, "camera") {
		t.Errorf("later pools should not be aggregated, got %q", res.Reason)
	}
}

func TestKitAvailabilityUnknownKit(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.IsKitAvailable(context.Background(), "nope",
		mustParse(t, "2025-10-25T09:00:00Z"), mustParse(t, "2025-10-25T17:00:00Z"))
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("unknown kit should be a not-found error, got %v", err)
	}
}
