// internal/models/booking.go
package models

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Blocks reports whether a booking in this status makes its asset unavailable
// for an overlapping window. Only approved and active bookings block.
func (s BookingStatus) Blocks() bool {
	return s == BookingStatusApproved || s == BookingStatusActive
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusActive,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type ConditionRating string

const (
	ConditionExcellent ConditionRating = "excellent"
	ConditionGood      ConditionRating = "good"
	ConditionFair      ConditionRating = "fair"
	ConditionPoor      ConditionRating = "poor"
	ConditionDamaged   ConditionRating = "damaged"
)

// FlagsDamage reports whether a check-in with this rating marks the asset
// broken.
func (r ConditionRating) FlagsDamage() bool {
	return r == ConditionDamaged || r == ConditionPoor
}

// ConditionAssessment captures an asset's condition at checkout or checkin.
type ConditionAssessment struct {
	Rating    ConditionRating `bson:"rating" json:"rating"`
	Notes     string          `bson:"notes,omitempty" json:"notes,omitempty"`
	PhotoURLs []string        `bson:"photoURLs,omitempty" json:"photoURLs,omitempty"`
}

// CheckEvent stamps a checkout or checkin.
type CheckEvent struct {
	ActorStamp `bson:",inline" json:",inline"`
	Condition  *ConditionAssessment `bson:"condition,omitempty" json:"condition,omitempty"`
}

type Booking struct {
	ID string `bson:"id" json:"id"`

	// Target: exactly one of AssetID or KitID is set. GroupID is set in
	// addition to AssetID when the booking was created through a group.
	AssetID string `bson:"assetID,omitempty" json:"assetID,omitempty"`
	KitID   string `bson:"kitID,omitempty" json:"kitID,omitempty"`
	GroupID string `bson:"groupID,omitempty" json:"groupID,omitempty"`

	Quantity int `bson:"quantity" json:"quantity"`
	// AllocatedChildAssets holds the concrete unit ids chosen by the
	// allocator; present only for multi-unit quantity bookings.
	AllocatedChildAssets []string `bson:"allocatedChildAssets,omitempty" json:"allocatedChildAssets,omitempty"`

	// SingleDay bookings carry one date with start/end times; the window may
	// be zero-length. Date-range bookings require EndDate strictly after
	// StartDate.
	SingleDay bool      `bson:"singleDay" json:"singleDay"`
	StartDate time.Time `bson:"startDate" json:"startDate"`
	EndDate   time.Time `bson:"endDate" json:"endDate"`

	Status BookingStatus `bson:"status" json:"status"`
	Notes  string        `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedBy    *ActorStamp `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CheckedOut   *CheckEvent `bson:"checkedOut,omitempty" json:"checkedOut,omitempty"`
	CheckedIn    *CheckEvent `bson:"checkedIn,omitempty" json:"checkedIn,omitempty"`
	Damaged      bool        `bson:"damaged" json:"damaged"`
	CancelReason string      `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// References reports whether the booking holds the given asset, either as
// its direct target or as one of the concrete units the allocator chose for
// a quantity booking. A unit inside allocatedChildAssets is just as held as
// a directly booked asset.
func (b *Booking) References(assetID string) bool {
	if b.AssetID == assetID {
		return true
	}
	for _, id := range b.AllocatedChildAssets {
		if id == assetID {
			return true
		}
	}
	return false
}

// Overlaps reports whether the booking's window overlaps [start, end].
// Boundaries are inclusive: a booking ending exactly when another starts is a
// conflict.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
