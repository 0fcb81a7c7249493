// internal/models/asset_group.go
package models

import "time"

// InheritanceRule controls how one field behaves for all members of a group.
type InheritanceRule struct {
	Inherited   bool `bson:"inherited" json:"inherited"`
	Overridable bool `bson:"overridable" json:"overridable"`
}

type AssetGroup struct {
	ID          string `bson:"id" json:"id"`
	GroupNumber string `bson:"groupNumber" json:"groupNumber"`
	Name        string `bson:"name" json:"name"`

	// MemberAssetIDs is the single source of truth for membership. The
	// per-asset assetGroup back-reference must always agree with it.
	MemberAssetIDs []string `bson:"memberAssetIDs" json:"memberAssetIDs"`
	// MemberCount normally equals len(MemberAssetIDs); it may diverge only
	// while a migration explicitly overrides it.
	MemberCount int `bson:"memberCount" json:"memberCount"`

	InheritanceRules   map[string]InheritanceRule `bson:"inheritanceRules,omitempty" json:"inheritanceRules,omitempty"`
	SharedCustomFields map[string]string          `bson:"sharedCustomFields,omitempty" json:"sharedCustomFields,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// HasMember reports whether assetID is in the group's member set.
func (g *AssetGroup) HasMember(assetID string) bool {
	for _, id := range g.MemberAssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

// FieldValue returns the group's stored value for a field key. The second
// return reports whether the group defines the field at all.
func (g *AssetGroup) FieldValue(key string) (string, bool) {
	switch key {
	case "name":
		return g.Name, g.Name != ""
	case "groupNumber":
		return g.GroupNumber, g.GroupNumber != ""
	}
	v, ok := g.SharedCustomFields[key]
	return v, ok
}

// Ref builds the back-reference stored on member assets.
func (g *AssetGroup) Ref() *AssetGroupRef {
	return &AssetGroupRef{ID: g.ID, GroupNumber: g.GroupNumber, Name: g.Name}
}
