// internal/models/asset.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetStatus string

const (
	AssetStatusAvailable AssetStatus = "available"
	AssetStatusInUse     AssetStatus = "in-use"
	AssetStatusBroken    AssetStatus = "broken"
	AssetStatusSold      AssetStatus = "sold"
	AssetStatusDestroyed AssetStatus = "destroyed"
	AssetStatusDeleted   AssetStatus = "deleted"
)

// BlocksBooking reports whether an asset in this status can never accept a
// new booking, regardless of its calendar.
func (s AssetStatus) BlocksBooking() bool {
	switch s {
	case AssetStatusBroken, AssetStatusSold, AssetStatusDestroyed, AssetStatusDeleted:
		return true
	}
	return false
}

// AssetGroupRef is the back-reference an asset keeps to its owning group.
// The group's memberAssetIDs set is the source of truth for membership; this
// reference is maintained by the group membership operations only.
type AssetGroupRef struct {
	ID          string `bson:"id" json:"id"`
	GroupNumber string `bson:"groupNumber" json:"groupNumber"`
	Name        string `bson:"name" json:"name"`
}

// InUseBy records who holds a checked-out asset.
type InUseBy struct {
	BookingID string    `bson:"bookingID" json:"bookingID"`
	ActorID   string    `bson:"actorID" json:"actorID"`
	ActorName string    `bson:"actorName" json:"actorName"`
	Since     time.Time `bson:"since" json:"since"`
}

type Asset struct {
	ID          string      `bson:"id" json:"id"`
	AssetNumber string      `bson:"assetNumber" json:"assetNumber"` // unique display code, e.g. "CAM-0042"
	Name        string      `bson:"name" json:"name"`
	AssetTypeID string      `bson:"assetTypeID" json:"assetTypeID"`
	Status      AssetStatus `bson:"status" json:"status"`
	Bookable    bool        `bson:"bookable" json:"bookable"`

	// Multi-unit assets: a parent holds interchangeable child units.
	ParentAssetID string   `bson:"parentAssetID,omitempty" json:"parentAssetID,omitempty"`
	ChildAssetIDs []string `bson:"childAssetIDs,omitempty" json:"childAssetIDs,omitempty"`

	AssetGroup        *AssetGroupRef         `bson:"assetGroup,omitempty" json:"assetGroup,omitempty"`
	FieldSources      map[string]FieldSource `bson:"fieldSources,omitempty" json:"fieldSources,omitempty"`
	CustomFieldValues map[string]string      `bson:"customFieldValues,omitempty" json:"customFieldValues,omitempty"`

	PurchasePrice   decimal.Decimal `bson:"purchasePrice" json:"purchasePrice"`
	ReplacementCost decimal.Decimal `bson:"replacementCost" json:"replacementCost"`

	CurrentBookingID string   `bson:"currentBookingID,omitempty" json:"currentBookingID,omitempty"`
	InUseBy          *InUseBy `bson:"inUseBy,omitempty" json:"inUseBy,omitempty"`

	Damaged     bool   `bson:"damaged" json:"damaged"`
	DamageNotes string `bson:"damageNotes,omitempty" json:"damageNotes,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FieldValue returns the asset's own stored value for a field key. Built-in
// fields are addressed by well-known keys; everything else reads from the
// custom field map. The second return reports whether the field is defined.
func (a *Asset) FieldValue(key string) (string, bool) {
	switch key {
	case "name":
		return a.Name, a.Name != ""
	case "assetNumber":
		return a.AssetNumber, a.AssetNumber != ""
	case "status":
		return string(a.Status), a.Status != ""
	case "assetTypeID":
		return a.AssetTypeID, a.AssetTypeID != ""
	}
	v, ok := a.CustomFieldValues[key]
	return v, ok
}

// SetFieldValue writes the asset's own stored value for a field key.
func (a *Asset) SetFieldValue(key, value string) {
	switch key {
	case "name":
		a.Name = value
		return
	case "status":
		a.Status = AssetStatus(value)
		return
	}
	if a.CustomFieldValues == nil {
		a.CustomFieldValues = make(map[string]string)
	}
	a.CustomFieldValues[key] = value
}

// ClearFieldValue removes a custom field value. Built-in fields are never
// cleared through field propagation.
func (a *Asset) ClearFieldValue(key string) {
	delete(a.CustomFieldValues, key)
}
