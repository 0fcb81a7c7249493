// internal/history/history.go
package history

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"equipment-inventory-api-server/internal/models"
	"equipment-inventory-api-server/internal/recordstore"

	"github.com/google/uuid"
)

// Change is one entry in the change-history feed.
type Change struct {
	ID         string       `json:"id"`
	EntityType string       `json:"entityType"`
	EntityID   string       `json:"entityID"`
	Action     string       `json:"action"`
	Note       string       `json:"note,omitempty"`
	Actor      models.Actor `json:"actor"`
	At         time.Time    `json:"at"`
}

// Broadcaster pushes a change event to connected clients.
type Broadcaster interface {
	Broadcast(message []byte)
}

// Recorder writes change notes to the record store and fans them out over
// the websocket hub. Recording is best-effort everywhere it is used:
// failures are logged and swallowed so a history hiccup can never block the
// operation that produced it.
type Recorder struct {
	client *recordstore.Client
	hub    Broadcaster
}

func NewRecorder(client *recordstore.Client, hub Broadcaster) *Recorder {
	return &Recorder{client: client, hub: hub}
}

// Record persists and broadcasts one change note.
func (r *Recorder) Record(ctx context.Context, change Change) {
	if change.ID == "" {
		change.ID = uuid.New().String()
	}
	if change.At.IsZero() {
		change.At = time.Now()
	}
	if change.Actor.ID == "" && r.client != nil {
		if actor, err := r.client.CurrentActor(ctx); err == nil {
			change.Actor = actor
		}
	}

	if r.client != nil {
		rec, err := recordstore.NewRecord(change.ID, recordstore.CategoryHistory, recordstore.CurrentGenericSchema, change)
		if err == nil {
			_, err = r.client.CreateRecord(ctx, rec)
		}
		if err != nil {
			log.Printf("history record for %s %s failed: %v", change.EntityType, change.EntityID, err)
		}
	}

	if r.hub != nil {
		if raw, err := json.Marshal(change); err == nil {
			r.hub.Broadcast(raw)
		}
	}
}
