// internal/recordstore/migrate.go
package recordstore

import (
	"encoding/json"
	"fmt"

	"equipment-inventory-api-server/internal/models"
)

// Asset payloads have shape-shifted over the product's life. Instead of
// probing for optional fields, every record carries a schemaVersion and gets
// a migration function per version.
//
// v1: field sourcing was stored as two string lists, inheritedFields and
// overriddenFields, and the group back-reference was flattened into
// groupID/groupNumber/groupName.
// v2: fieldSources map plus a structured assetGroup reference (current).

type assetPayloadV1 struct {
	models.Asset     `json:",inline"`
	GroupID          string   `json:"groupID,omitempty"`
	GroupNumber      string   `json:"groupNumber,omitempty"`
	GroupName        string   `json:"groupName,omitempty"`
	InheritedFields  []string `json:"inheritedFields,omitempty"`
	OverriddenFields []string `json:"overriddenFields,omitempty"`
}

// DecodeAsset unmarshals an asset record at any known schema version into
// the current model.
func DecodeAsset(rec Record) (*models.Asset, error) {
	if rec.Category != CategoryAssets {
		return nil, fmt.Errorf("record %q has category %q, want %q", rec.ID, rec.Category, CategoryAssets)
	}
	switch rec.SchemaVersion {
	case AssetSchemaV1:
		return migrateAssetV1(rec)
	case AssetSchemaV2:
		var asset models.Asset
		if err := json.Unmarshal(rec.Payload, &asset); err != nil {
			return nil, fmt.Errorf("decode asset %q: %w", rec.ID, err)
		}
		return &asset, nil
	default:
		return nil, fmt.Errorf("asset record %q: unknown schema version %d", rec.ID, rec.SchemaVersion)
	}
}

func migrateAssetV1(rec Record) (*models.Asset, error) {
	var legacy assetPayloadV1
	if err := json.Unmarshal(rec.Payload, &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy asset %q: %w", rec.ID, err)
	}
	asset := legacy.Asset

	if legacy.GroupID != "" && asset.AssetGroup == nil {
		asset.AssetGroup = &models.AssetGroupRef{
			ID:          legacy.GroupID,
			GroupNumber: legacy.GroupNumber,
			Name:        legacy.GroupName,
		}
	}

	// Overrides win over inherited markers when a field appears in both
	// lists; the old UI wrote both.
	if len(legacy.InheritedFields) > 0 || len(legacy.OverriddenFields) > 0 {
		if asset.FieldSources == nil {
			asset.FieldSources = make(map[string]models.FieldSource)
		}
		for _, key := range legacy.InheritedFields {
			asset.FieldSources[key] = models.FieldSourceGroup
		}
		for _, key := range legacy.OverriddenFields {
			asset.FieldSources[key] = models.FieldSourceOverride
		}
	}

	return &asset, nil
}

// EncodeAsset wraps an asset in a current-version record envelope.
func EncodeAsset(asset *models.Asset) (Record, error) {
	return NewRecord(asset.ID, CategoryAssets, CurrentAssetSchema, asset)
}
