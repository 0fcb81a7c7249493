// internal/recordstore/record.go
package recordstore

import (
	"encoding/json"
	"time"
)

// Record categories. The remote store understands nothing beyond
// "category + JSON blob"; every typed entity travels inside a Record.
const (
	CategoryAssets       = "assets"
	CategoryBookings     = "bookings"
	CategoryKits         = "kits"
	CategoryAssetGroups  = "asset-groups"
	CategoryMaintenances = "maintenances"
	CategoryHistory      = "history"
)

// Schema versions per category. Payloads written before the fieldSources
// migration carry version 1; see migrate.go.
const (
	AssetSchemaV1 = 1
	AssetSchemaV2 = 2

	CurrentAssetSchema   = AssetSchemaV2
	CurrentGenericSchema = 1
)

// Record is the generic envelope the remote store persists.
type Record struct {
	ID            string          `json:"id"`
	Category      string          `json:"category"`
	SchemaVersion int             `json:"schemaVersion"`
	Payload       json.RawMessage `json:"payload"`
	CreatedBy     string          `json:"createdBy,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewRecord wraps a payload value in an envelope at the given schema version.
func NewRecord(id, category string, schemaVersion int, payload any) (Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:            id,
		Category:      category,
		SchemaVersion: schemaVersion,
		Payload:       raw,
	}, nil
}
