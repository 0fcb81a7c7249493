// internal/models/kit.go
package models

import "time"

type KitType string

const (
	KitTypeFixed    KitType = "fixed"    // a fixed list of specific assets
	KitTypeFlexible KitType = "flexible" // satisfied from pools of interchangeable assets
)

// BoundAsset is one member of a fixed kit.
type BoundAsset struct {
	AssetID string `bson:"assetID" json:"assetID"`
	// Inherits marks, per field key, whether the bound asset inherits that
	// field from the kit.
	Inherits map[string]bool `bson:"inherits,omitempty" json:"inherits,omitempty"`
}

// PoolRequirement is a flexible kit's need for N assets of a given type
// matching the given field filters.
type PoolRequirement struct {
	AssetTypeID string            `bson:"assetTypeID" json:"assetTypeID"`
	Quantity    int               `bson:"quantity" json:"quantity"`
	Filters     map[string]string `bson:"filters,omitempty" json:"filters,omitempty"`
}

type Kit struct {
	ID        string  `bson:"id" json:"id"`
	KitNumber string  `bson:"kitNumber" json:"kitNumber"`
	Name      string  `bson:"name" json:"name"`
	Type      KitType `bson:"type" json:"type"`

	// BoundAssets is non-empty for fixed kits, PoolRequirements for flexible
	// kits; both are enforced at creation.
	BoundAssets      []BoundAsset      `bson:"boundAssets,omitempty" json:"boundAssets,omitempty"`
	PoolRequirements []PoolRequirement `bson:"poolRequirements,omitempty" json:"poolRequirements,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
