package booking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

func seedUnitPool(t *testing.T, store *inventory.MemoryStore, parentID string, count int) []string {
	t.Helper()
	seedAsset(t, store, models.Asset{ID: parentID, AssetNumber: "RAD-000", Bookable: true})
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		id := string(rune('a'+i)) + "-unit"
		ids[i] = id
		seedAsset(t, store, models.Asset{
			ID:            id,
			AssetNumber:   "RAD-00" + string(rune('1'+i)),
			Bookable:      true,
			ParentAssetID: parentID,
		})
	}
	return ids
}

func TestAllocateFulfilled(t *testing.T) {
	svc, store := newTestService(t)
	ids := seedUnitPool(t, store, "parent", 3)

	result, err := svc.AllocateBookingQuantity(context.Background(), AllocationRequest{
		Quantity:      2,
		ParentAssetID: "parent",
		Start:         mustParse(t, "2025-10-25T09:00:00Z"),
		End:           mustParse(t, "2025-10-25T17:00:00Z"),
	})
	if err != nil {
		t.Fatalf("AllocateBookingQuantity: %v", err)
	}
	if result.Status != AllocationFulfilled {
		t.Fatalf("status = %s, want %s", result.Status, AllocationFulfilled)
	}
	// First two in asset-number order.
	want := []string{ids[0], ids[1]}
	if !reflect.DeepEqual(result.Allocated, want) {
		t.Errorf("allocated = %v, want %v", result.Allocated, want)
	}
}

func TestAllocateSkipsUnfitCandidates(t *testing.T) {
	svc, store := newTestService(t)
	seedAsset(t, store, models.Asset{ID: "parent", AssetNumber: "RAD-000", Bookable: true})

	window := []string{"2025-10-25T09:00:00Z", "2025-10-25T17:00:00Z"}
	// Not bookable.
	seedAsset(t, store, models.Asset{ID: "u1", AssetNumber: "RAD-001", Bookable: false, ParentAssetID: "parent"})
	// Busy for the window.
	seedAsset(t, store, models.Asset{ID: "u2", AssetNumber: "RAD-002", Bookable: true, ParentAssetID: "parent"})
	seedBooking(t, store, models.Booking{
		ID: "busy", AssetID: "u2", Status: models.BookingStatusApproved,
		StartDate: mustParse(t, window[0]), EndDate: mustParse(t, window[1]),
	})
	// Tied to an active booking.
	seedAsset(t, store, models.Asset{
		ID: "u3", AssetNumber: "RAD-003", Bookable: true, ParentAssetID: "parent",
		Status: models.AssetStatusInUse, CurrentBookingID: "other",
	})
	// Free.
	seedAsset(t, store, models.Asset{ID: "u4", AssetNumber: "RAD-004", Bookable: true, ParentAssetID: "parent"})

	result, err := svc.AllocateBookingQuantity(context.Background(), AllocationRequest{
		Quantity:      1,
		ParentAssetID: "parent",
		Start:         mustParse(t, window[0]),
		End:           mustParse(t, window[1]),
	})
	if err != nil {
		t.Fatalf("AllocateBookingQuantity: %v", err)
	}
	if result.Status != AllocationFulfilled {
		t.Fatalf("status = %s, want %s", result.Status, AllocationFulfilled)
	}
	if len(result.Allocated) != 1 || result.Allocated[0] != "u4" {
		t.Errorf("allocated = %v, want [u4]", result.Allocated)
	}
}

func TestAllocateSkipsUnitsHeldByQuantityBooking(t *testing.T) {
	svc, store := newTestService(t)
	ids := seedUnitPool(t, store, "parent", 3)

	start := mustParse(t, "2025-10-25T09:00:00Z")
	end := mustParse(t, "2025-10-25T17:00:00Z")
	seedBooking(t, store, models.Booking{
		ID:                   "qty",
		AssetID:              "parent",
		Quantity:             2,
		AllocatedChildAssets: []string{ids[0], ids[1]},
		Status:               models.BookingStatusApproved,
		StartDate:            start,
		EndDate:              end,
	})

	result, err := svc.AllocateBookingQuantity(context.Background(), AllocationRequest{
		Quantity:      2,
		ParentAssetID: "parent",
		Start:         start,
		End:           end,
	})
	if err != nil {
		t.Fatalf("AllocateBookingQuantity: %v", err)
	}
	if result.Status != AllocationShortage {
		t.Fatalf("status = %s, want %s", result.Status, AllocationShortage)
	}
	if !reflect.DeepEqual(result.Allocated, []string{ids[2]}) {
		t.Errorf("allocated = %v, want only the unheld unit %s", result.Allocated, ids[2])
	}
	if s := result.Shortage; s == nil || s.Requested != 2 || s.Available != 1 {
		t.Errorf("shortage = %+v, want requested 2, available 1", result.Shortage)
	}
}

func TestAllocateShortage(t *testing.T) {
	svc, store := newTestService(t)
	seedUnitPool(t, store, "parent", 1)

	result, err := svc.AllocateBookingQuantity(context.Background(), AllocationRequest{
		Quantity:      3,
		ParentAssetID: "parent",
		Start:         mustParse(t, "2025-10-25T09:00:00Z"),
		End:           mustParse(t, "2025-10-25T17:00:00Z"),
	})
	if err != nil {
		t.Fatalf("AllocateBookingQuantity: %v", err)
	}
	if result.Status != AllocationShortage {
		t.Fatalf("status = %s, want %s", result.Status, AllocationShortage)
	}
	if len(result.Allocated) != 1 {
		t.Errorf("allocated should keep the lone survivor, got %v", result.Allocated)
	}
	s := result.Shortage
	if s == nil {
		t.Fatal("shortage details missing")
	}
	if s.Requested != 3 || s.Available != 1 || s.Missing != 2 {
		t.Errorf("shortage = %+v, want requested 3, available 1, missing 2", s)
	}
	if s.Message == "" {
		t.Error("shortage message should name the shortfall")
	}
}

func TestAllocateDeterministic(t *testing.T) {
	svc, store := newTestService(t)
	seedUnitPool(t, store, "parent", 4)

	req := AllocationRequest{
		Quantity:      2,
		ParentAssetID: "parent",
		ExcludeIDs:    []string{"a-unit"},
		Start:         mustParse(t, "2025-10-25T09:00:00Z"),
		End:           mustParse(t, "2025-10-25T17:00:00Z"),
	}
	first, err := svc.AllocateBookingQuantity(context.Background(), req)
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.AllocateBookingQuantity(context.Background(), req)
		if err != nil {
			t.Fatalf("repeat allocation: %v", err)
		}
		if !reflect.DeepEqual(first.Allocated, again.Allocated) {
			t.Fatalf("allocation changed between runs: %v vs %v", first.Allocated, again.Allocated)
		}
	}
	for _, id := range first.Allocated {
		if id == "a-unit" {
			t.Error("excluded unit was allocated")
		}
	}
}

func TestAllocateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AllocateBookingQuantity(context.Background(), AllocationRequest{Quantity: 0, ParentAssetID: "p"})
	var validationErr *inventory.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("quantity 0 should fail validation, got %v", err)
	}
	if validationErr.Field != "quantity" {
		t.Errorf("violated field = %s, want quantity", validationErr.Field)
	}

	_, err = svc.AllocateBookingQuantity(context.Background(), AllocationRequest{Quantity: 1})
	if !errors.As(err, &validationErr) {
		t.Fatalf("missing parent should fail validation, got %v", err)
	}
}
