package recordstore

import (
	"encoding/json"
	"strings"
	"testing"

	"equipment-inventory-api-server/internal/models"
)

func TestDecodeAssetV1Migration(t *testing.T) {
	payload := []byte(`{
		"id": "a1",
		"assetNumber": "CAM-001",
		"name": "FX6 Body A",
		"status": "available",
		"bookable": true,
		"groupID": "g1",
		"groupNumber": "GRP-001",
		"groupName": "Cameras",
		"inheritedFields": ["manufacturer", "warranty"],
		"overriddenFields": ["warranty"]
	}`)
	rec := Record{ID: "a1", Category: CategoryAssets, SchemaVersion: AssetSchemaV1, Payload: payload}

	asset, err := DecodeAsset(rec)
	if err != nil {
		t.Fatalf("DecodeAsset: %v", err)
	}
	if asset.AssetNumber != "CAM-001" || asset.Status != models.AssetStatusAvailable {
		t.Errorf("base fields did not survive: %+v", asset)
	}
	if asset.AssetGroup == nil {
		t.Fatal("flattened group fields should become a structured reference")
	}
	if asset.AssetGroup.ID != "g1" || asset.AssetGroup.GroupNumber != "GRP-001" || asset.AssetGroup.Name != "Cameras" {
		t.Errorf("assetGroup = %+v", asset.AssetGroup)
	}
	if asset.FieldSources["manufacturer"] != models.FieldSourceGroup {
		t.Errorf("manufacturer source = %q, want group", asset.FieldSources["manufacturer"])
	}
	// warranty appears in both legacy lists; the override wins.
	if asset.FieldSources["warranty"] != models.FieldSourceOverride {
		t.Errorf("warranty source = %q, want override", asset.FieldSources["warranty"])
	}
}

func TestDecodeAssetV1WithoutGroup(t *testing.T) {
	payload := []byte(`{"id": "a1", "assetNumber": "CAM-001", "status": "available"}`)
	rec := Record{ID: "a1", Category: CategoryAssets, SchemaVersion: AssetSchemaV1, Payload: payload}

	asset, err := DecodeAsset(rec)
	if err != nil {
		t.Fatalf("DecodeAsset: %v", err)
	}
	if asset.AssetGroup != nil {
		t.Errorf("groupless legacy asset grew a reference: %+v", asset.AssetGroup)
	}
	if asset.FieldSources != nil {
		t.Errorf("fieldSources should stay nil, got %v", asset.FieldSources)
	}
}

func TestDecodeAssetV2Passthrough(t *testing.T) {
	original := &models.Asset{
		ID:          "a1",
		AssetNumber: "CAM-001",
		Status:      models.AssetStatusAvailable,
		Bookable:    true,
		AssetGroup:  &models.AssetGroupRef{ID: "g1", GroupNumber: "GRP-001", Name: "Cameras"},
		FieldSources: map[string]models.FieldSource{
			"manufacturer": models.FieldSourceGroup,
		},
	}
	rec, err := EncodeAsset(original)
	if err != nil {
		t.Fatalf("EncodeAsset: %v", err)
	}
	if rec.SchemaVersion != CurrentAssetSchema {
		t.Errorf("schemaVersion = %d, want %d", rec.SchemaVersion, CurrentAssetSchema)
	}

	decoded, err := DecodeAsset(rec)
	if err != nil {
		t.Fatalf("DecodeAsset: %v", err)
	}
	if decoded.ID != original.ID || decoded.AssetGroup == nil || decoded.AssetGroup.ID != "g1" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.FieldSources["manufacturer"] != models.FieldSourceGroup {
		t.Errorf("fieldSources lost in round trip: %v", decoded.FieldSources)
	}
}

func TestDecodeAssetUnknownVersion(t *testing.T) {
	rec := Record{ID: "a1", Category: CategoryAssets, SchemaVersion: 99, Payload: []byte(`{}`)}
	_, err := DecodeAsset(rec)
	if err == nil || !strings.Contains(err.Error(), "unknown schema version") {
		t.Fatalf("want unknown-version error, got %v", err)
	}
}

func TestDecodeAssetWrongCategory(t *testing.T) {
	rec := Record{ID: "b1", Category: CategoryBookings, SchemaVersion: AssetSchemaV2, Payload: []byte(`{}`)}
	if _, err := DecodeAsset(rec); err == nil {
		t.Fatal("booking record decoded as asset")
	}
}

func TestNewRecordWrapsPayload(t *testing.T) {
	rec, err := NewRecord("k1", CategoryKits, CurrentGenericSchema, map[string]string{"id": "k1"})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["id"] != "k1" || rec.Category != CategoryKits {
		t.Errorf("record = %+v", rec)
	}
}
