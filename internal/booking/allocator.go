// internal/booking/allocator.go
package booking

import (
	"context"
	"fmt"
	"time"

	"equipment-inventory-api-server/internal/inventory"
)

type AllocationStatus string

const (
	AllocationFulfilled AllocationStatus = "fulfilled"
	AllocationShortage  AllocationStatus = "shortage"
)

// Shortage describes an allocation that could not be filled.
type Shortage struct {
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Missing   int    `json:"missing"`
	Message   string `json:"message"`
}

// AllocationResult is the allocator's answer. On shortage, Allocated still
// holds every qualifying unit so callers may partially fulfill.
type AllocationResult struct {
	Status    AllocationStatus `json:"status"`
	Allocated []string         `json:"allocated"`
	Shortage  *Shortage        `json:"shortage,omitempty"`
}

// AllocationRequest asks for Quantity units from the children of
// ParentAssetID, free during [Start, End], skipping ExcludeIDs.
type AllocationRequest struct {
	Quantity      int       `json:"quantity"`
	ParentAssetID string    `json:"parentAssetID"`
	ExcludeIDs    []string  `json:"excludeIDs"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// AllocateBookingQuantity picks concrete child units for a quantity booking.
//
// Candidates are taken in asset-number order as returned by the store, and
// the first Quantity survivors win. The determinism matters: the same pool
// and the same filters always allocate the same units.
func (s *Service) AllocateBookingQuantity(ctx context.Context, req AllocationRequest) (*AllocationResult, error) {
	if req.Quantity < 1 {
		return nil, &inventory.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if req.ParentAssetID == "" {
		return nil, &inventory.ValidationError{Field: "parentAssetID", Message: "is required"}
	}

	candidates, err := s.store.GetAssets(ctx, inventory.AssetFilter{ParentAssetID: req.ParentAssetID})
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var allocated []string
	for i := range candidates {
		c := &candidates[i]
		if !c.Bookable || c.Status.BlocksBooking() {
			continue
		}
		// A unit tied to an active booking is out even if its calendar has a
		// gap for the window.
		if c.CurrentBookingID != "" {
			continue
		}
		if _, skip := excluded[c.ID]; skip {
			continue
		}
		free, err := s.IsAssetAvailable(ctx, c.ID, req.Start, req.End)
		if err != nil {
			return nil, err
		}
		if !free {
			continue
		}
		allocated = append(allocated, c.ID)
		if len(allocated) == req.Quantity {
			return &AllocationResult{Status: AllocationFulfilled, Allocated: allocated}, nil
		}
	}

	missing := req.Quantity - len(allocated)
	return &AllocationResult{
		Status:    AllocationShortage,
		Allocated: allocated,
		Shortage: &Shortage{
			Requested: req.Quantity,
			Available: len(allocated),
			Missing:   missing,
			Message:   fmt.Sprintf("requested %d but only %d available", req.Quantity, len(allocated)),
		},
	}, nil
}
