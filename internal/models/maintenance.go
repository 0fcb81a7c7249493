// internal/models/maintenance.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceOpen      MaintenanceStatus = "open"
	MaintenanceCompleted MaintenanceStatus = "completed"
)

// Maintenance is a service job on an asset. While a job is open the asset is
// held in broken status; completing the job returns it to available.
type Maintenance struct {
	ID          string            `bson:"id" json:"id"`
	AssetID     string            `bson:"assetID" json:"assetID"`
	Description string            `bson:"description" json:"description"`
	Status      MaintenanceStatus `bson:"status" json:"status"`
	Cost        decimal.Decimal   `bson:"cost" json:"cost"`
	Resolution  string            `bson:"resolution,omitempty" json:"resolution,omitempty"`

	OpenedBy    *ActorStamp `bson:"openedBy,omitempty" json:"openedBy,omitempty"`
	CompletedBy *ActorStamp `bson:"completedBy,omitempty" json:"completedBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
