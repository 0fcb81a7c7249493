// internal/booking/service.go
package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"equipment-inventory-api-server/internal/history"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// ChangeRecorder receives best-effort change notes for the history feed.
type ChangeRecorder interface {
	Record(ctx context.Context, change history.Change)
}

// Service implements the booking lifecycle on top of the record store.
//
// The store offers no multi-record transactions, so every operation here is
// read-then-decide-then-write. Two concurrent creates for the same asset and
// overlapping windows can both pass the availability check before either
// write lands; the engine accepts the second write as-is (last write wins).
// See the race regression test in service_test.go.
type Service struct {
	store   inventory.Store
	history ChangeRecorder
	now     func() time.Time
}

func NewService(store inventory.Store, recorder ChangeRecorder) *Service {
	return &Service{store: store, history: recorder, now: time.Now}
}

// CreateBookingRequest carries everything needed to create a booking.
// Exactly one of AssetID or KitID must be set.
type CreateBookingRequest struct {
	ID      string `json:"id"`
	AssetID string `json:"assetID"`
	KitID   string `json:"kitID"`
	GroupID string `json:"groupID"`

	Quantity  int       `json:"quantity"`
	SingleDay bool      `json:"singleDay"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Notes     string    `json:"notes"`

	// InitialStatus defaults to pending; approved is the only other value
	// accepted at creation time.
	InitialStatus models.BookingStatus `json:"initialStatus"`
}

func (req *CreateBookingRequest) validate() error {
	if req.AssetID == "" && req.KitID == "" {
		return &inventory.ValidationError{Field: "target", Message: "a booking needs an asset or kit reference"}
	}
	if req.AssetID != "" && req.KitID != "" {
		return &inventory.ValidationError{Field: "target", Message: "a booking targets either an asset or a kit, not both"}
	}
	if req.Quantity < 1 {
		return &inventory.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return &inventory.ValidationError{Field: "startDate", Message: "start and end dates are required"}
	}
	if req.SingleDay {
		if req.EndDate.Before(req.StartDate) {
			return &inventory.ValidationError{Field: "endDate", Message: "end time must not be before start time"}
		}
	} else if !req.EndDate.After(req.StartDate) {
		return &inventory.ValidationError{Field: "endDate", Message: "must be after startDate"}
	}
	switch req.InitialStatus {
	case "", models.BookingStatusPending, models.BookingStatusApproved:
	default:
		return &inventory.ValidationError{Field: "initialStatus", Message: fmt.Sprintf("cannot create a booking in status %q", req.InitialStatus)}
	}
	return nil
}

// Create validates, checks availability and persists a new booking.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:        req.ID,
		AssetID:   req.AssetID,
		KitID:     req.KitID,
		GroupID:   req.GroupID,
		Quantity:  req.Quantity,
		SingleDay: req.SingleDay,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Notes:     req.Notes,
		Status:    req.InitialStatus,
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	if req.AssetID != "" {
		if err := s.prepareAssetBooking(ctx, booking); err != nil {
			return nil, err
		}
	} else {
		res, err := s.IsKitAvailable(ctx, req.KitID, req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		if !res.Available {
			return nil, &inventory.AvailabilityError{
				Message:           fmt.Sprintf("kit %s is not available: %s", req.KitID, res.Reason),
				UnavailableAssets: res.UnavailableAssets,
			}
		}
	}

	actor, err := s.store.CurrentActor(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current actor: %w", err)
	}
	now := s.now()
	stamp := models.NewActorStamp(actor, now)
	booking.CreatedBy = &stamp
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist booking: %w", err)
	}
	s.note(ctx, booking.ID, "created", fmt.Sprintf("booking created with status %s", booking.Status))
	return booking, nil
}

func (s *Service) prepareAssetBooking(ctx context.Context, booking *models.Booking) error {
	asset, err := s.store.GetAsset(ctx, booking.AssetID)
	if err != nil {
		return err
	}
	if asset.Status.BlocksBooking() {
		return &inventory.StateError{
			Current: string(asset.Status),
			Action:  "book",
			Message: fmt.Sprintf("asset %s cannot be booked in status %q", asset.AssetNumber, asset.Status),
		}
	}

	if booking.Quantity > 1 {
		result, err := s.AllocateBookingQuantity(ctx, AllocationRequest{
			Quantity:      booking.Quantity,
			ParentAssetID: booking.AssetID,
			Start:         booking.StartDate,
			End:           booking.EndDate,
		})
		if err != nil {
			return err
		}
		if result.Status == AllocationShortage {
			return &inventory.AvailabilityError{Message: result.Shortage.Message}
		}
		booking.AllocatedChildAssets = result.Allocated
		return nil
	}

	available, err := s.IsAssetAvailable(ctx, booking.AssetID, booking.StartDate, booking.EndDate)
	if err != nil {
		return err
	}
	if !available {
		return &inventory.AvailabilityError{
			Message:           fmt.Sprintf("asset %s is not available for the requested window", asset.AssetNumber),
			UnavailableAssets: []string{asset.ID},
		}
	}
	return nil
}

// GroupBookingResult collects per-asset outcomes of a group booking. Member
// failures never abort the call unless stopOnError is set; there is no
// all-or-nothing guarantee.
type GroupBookingResult struct {
	Successes []GroupBookingSuccess `json:"successes"`
	Failures  []GroupBookingFailure `json:"failures"`
}

type GroupBookingSuccess struct {
	AssetID string          `json:"assetID"`
	Booking *models.Booking `json:"booking"`
}

type GroupBookingFailure struct {
	AssetID string `json:"assetID"`
	Error   string `json:"error"`
}

// CreateGroupBooking books each requested member of a group using template as
// the per-asset booking request.
func (s *Service) CreateGroupBooking(ctx context.Context, groupID string, assetIDs []string, template CreateBookingRequest, stopOnError bool) (*GroupBookingResult, error) {
	if len(assetIDs) == 0 {
		return nil, &inventory.ValidationError{Field: "assetIDs", Message: "at least one asset is required"}
	}
	group, err := s.store.GetAssetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := &GroupBookingResult{}
	for _, assetID := range assetIDs {
		if !group.HasMember(assetID) {
			result.Failures = append(result.Failures, GroupBookingFailure{
				AssetID: assetID,
				Error:   fmt.Sprintf("asset is not a member of group %s", group.GroupNumber),
			})
			if stopOnError {
				break
			}
			continue
		}

		req := template
		req.ID = ""
		req.AssetID = assetID
		req.KitID = ""
		req.GroupID = groupID
		booking, err := s.Create(ctx, req)
		if err != nil {
			result.Failures = append(result.Failures, GroupBookingFailure{AssetID: assetID, Error: err.Error()})
			if stopOnError {
				break
			}
			continue
		}
		result.Successes = append(result.Successes, GroupBookingSuccess{AssetID: assetID, Booking: booking})
	}
	return result, nil
}

// Approve moves a pending booking to approved.
func (s *Service) Approve(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Transition(booking.Status, models.BookingStatusApproved); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusApproved
	updated, err := s.store.UpdateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	s.note(ctx, booking.ID, "approved", "booking approved")
	return updated, nil
}

// CheckOut activates an approved booking and flips the asset to in-use.
func (s *Service) CheckOut(ctx context.Context, bookingID string, condition *models.ConditionAssessment) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Transition(booking.Status, models.BookingStatusActive); err != nil {
		return nil, err
	}

	actor, err := s.store.CurrentActor(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current actor: %w", err)
	}
	now := s.now()
	booking.Status = models.BookingStatusActive
	booking.CheckedOut = &models.CheckEvent{
		ActorStamp: models.NewActorStamp(actor, now),
		Condition:  condition,
	}
	updated, err := s.store.UpdateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	if booking.AssetID != "" {
		asset, err := s.store.GetAsset(ctx, booking.AssetID)
		if err != nil {
			return nil, err
		}
		asset.Status = models.AssetStatusInUse
		asset.CurrentBookingID = booking.ID
		asset.InUseBy = &models.InUseBy{
			BookingID: booking.ID,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Since:     now,
		}
		if _, err := s.store.UpdateAsset(ctx, asset); err != nil {
			return nil, fmt.Errorf("mark asset in use: %w", err)
		}
	}

	s.note(ctx, booking.ID, "checked-out", "booking checked out")
	return updated, nil
}

// CheckIn completes an active booking. A damaged or poor condition rating
// marks the asset broken; otherwise the asset returns to available.
func (s *Service) CheckIn(ctx context.Context, bookingID string, condition models.ConditionAssessment) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Transition(booking.Status, models.BookingStatusCompleted); err != nil {
		return nil, err
	}

	actor, err := s.store.CurrentActor(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current actor: %w", err)
	}
	now := s.now()
	booking.Status = models.BookingStatusCompleted
	booking.CheckedIn = &models.CheckEvent{
		ActorStamp: models.NewActorStamp(actor, now),
		Condition:  &condition,
	}
	if condition.Rating.FlagsDamage() {
		booking.Damaged = true
	}
	updated, err := s.store.UpdateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	if booking.AssetID != "" {
		asset, err := s.store.GetAsset(ctx, booking.AssetID)
		if err != nil {
			return nil, err
		}
		if condition.Rating.FlagsDamage() {
			asset.Status = models.AssetStatusBroken
			asset.Damaged = true
			asset.DamageNotes = condition.Notes
		} else {
			asset.Status = models.AssetStatusAvailable
		}
		asset.CurrentBookingID = ""
		asset.InUseBy = nil
		if _, err := s.store.UpdateAsset(ctx, asset); err != nil {
			return nil, fmt.Errorf("return asset: %w", err)
		}
	}

	s.note(ctx, booking.ID, "checked-in", fmt.Sprintf("booking completed, condition %s", condition.Rating))
	return updated, nil
}

// Cancel rejects terminal-state bookings per the transition table. Cancelling
// an active booking restores its asset to available first.
func (s *Service) Cancel(ctx context.Context, bookingID, reason string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := Transition(booking.Status, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusActive && booking.AssetID != "" {
		asset, err := s.store.GetAsset(ctx, booking.AssetID)
		if err != nil {
			return nil, err
		}
		asset.Status = models.AssetStatusAvailable
		asset.CurrentBookingID = ""
		asset.InUseBy = nil
		if _, err := s.store.UpdateAsset(ctx, asset); err != nil {
			return nil, fmt.Errorf("restore asset: %w", err)
		}
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelReason = reason
	updated, err := s.store.UpdateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}
	note := "booking cancelled"
	if reason != "" {
		note = fmt.Sprintf("booking cancelled: %s", reason)
	}
	s.note(ctx, booking.ID, "cancelled", note)
	return updated, nil
}

// Delete hard-removes a booking record. Resetting the referenced asset back
// to available is best-effort: a failure there is logged, never propagated,
// so a secondary reset can't block the deletion.
func (s *Service) Delete(ctx context.Context, bookingID string) error {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	if booking.AssetID != "" {
		asset, err := s.store.GetAsset(ctx, booking.AssetID)
		if err == nil {
			asset.Status = models.AssetStatusAvailable
			asset.CurrentBookingID = ""
			asset.InUseBy = nil
			_, err = s.store.UpdateAsset(ctx, asset)
		}
		if err != nil {
			log.Printf("booking %s deleted but asset %s reset failed: %v", bookingID, booking.AssetID, err)
		}
	}

	s.note(ctx, bookingID, "deleted", "booking deleted")
	return nil
}

func (s *Service) note(ctx context.Context, bookingID, action, note string) {
	if s.history == nil {
		return
	}
	s.history.Record(ctx, history.Change{
		EntityType: "booking",
		EntityID:   bookingID,
		Action:     action,
		Note:       note,
	})
}
