// internal/models/common.go
package models

import "time"

// Actor identifies the user performing an operation, as reported by the
// record-store session.
type Actor struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// ActorStamp records who did something and when.
type ActorStamp struct {
	ActorID   string    `bson:"actorID" json:"actorID"`
	ActorName string    `bson:"actorName" json:"actorName"`
	At        time.Time `bson:"at" json:"at"`
}

// NewActorStamp stamps the given actor at time now.
func NewActorStamp(actor Actor, now time.Time) ActorStamp {
	return ActorStamp{ActorID: actor.ID, ActorName: actor.Name, At: now}
}

// FieldSource marks where an asset field's effective value comes from.
type FieldSource string

const (
	FieldSourceGroup    FieldSource = "group"    // inherited from the owning asset group
	FieldSourceLocal    FieldSource = "local"    // the asset's own stored value
	FieldSourceOverride FieldSource = "override" // explicit per-asset override of an inherited field
)
