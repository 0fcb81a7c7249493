// internal/inventory/remote.go
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"equipment-inventory-api-server/internal/models"
	"equipment-inventory-api-server/internal/recordstore"
)

// RemoteStore implements Store on top of the record-store client. Each typed
// entity is encoded into a category + JSON blob record; asset records go
// through the schema-version migration on the way out.
type RemoteStore struct {
	client *recordstore.Client
}

func NewRemoteStore(client *recordstore.Client) *RemoteStore {
	return &RemoteStore{client: client}
}

// mapErr converts a remote 404 into the store's not-found error so callers
// can distinguish "doesn't exist" from other failures.
func mapErr(err error, kind, id string) error {
	var statusErr *recordstore.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return NotFound(kind, id)
	}
	return err
}

func (s *RemoteStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	rec, err := s.client.GetRecord(ctx, recordstore.CategoryAssets, id)
	if err != nil {
		return nil, mapErr(err, "asset", id)
	}
	return recordstore.DecodeAsset(*rec)
}

func (s *RemoteStore) GetAssets(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	recs, err := s.client.ListRecords(ctx, recordstore.CategoryAssets, nil)
	if err != nil {
		return nil, err
	}
	var out []models.Asset
	for _, rec := range recs {
		asset, err := recordstore.DecodeAsset(rec)
		if err != nil {
			return nil, err
		}
		if MatchAsset(asset, filter) {
			out = append(out, *asset)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetNumber < out[j].AssetNumber })
	return out, nil
}

func (s *RemoteStore) CreateAsset(ctx context.Context, asset *models.Asset) error {
	rec, err := recordstore.EncodeAsset(asset)
	if err != nil {
		return err
	}
	_, err = s.client.CreateRecord(ctx, rec)
	return err
}

func (s *RemoteStore) UpdateAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	asset.UpdatedAt = time.Now()
	rec, err := recordstore.EncodeAsset(asset)
	if err != nil {
		return nil, err
	}
	updated, err := s.client.UpdateRecord(ctx, rec)
	if err != nil {
		return nil, mapErr(err, "asset", asset.ID)
	}
	return recordstore.DecodeAsset(*updated)
}

func (s *RemoteStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.getTyped(ctx, recordstore.CategoryBookings, id, "booking", &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *RemoteStore) GetBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	// Asset matching stays client-side: a quantity booking references its
	// units only through allocatedChildAssets, which the remote's flat
	// assetID filter cannot see.
	query := map[string]string{}
	if filter.KitID != "" {
		query["kitID"] = filter.KitID
	}
	recs, err := s.client.ListRecords(ctx, recordstore.CategoryBookings, query)
	if err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, rec := range recs {
		var b models.Booking
		if err := decodePayload(rec, &b); err != nil {
			return nil, err
		}
		// The remote filter is advisory; re-check locally.
		if MatchBooking(&b, filter) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RemoteStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.createTyped(ctx, recordstore.CategoryBookings, booking.ID, booking)
}

func (s *RemoteStore) UpdateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.UpdatedAt = time.Now()
	var updated models.Booking
	if err := s.updateTyped(ctx, recordstore.CategoryBookings, booking.ID, "booking", booking, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RemoteStore) DeleteBooking(ctx context.Context, id string) error {
	if err := s.client.DeleteRecord(ctx, recordstore.CategoryBookings, id); err != nil {
		return mapErr(err, "booking", id)
	}
	return nil
}

func (s *RemoteStore) GetKit(ctx context.Context, id string) (*models.Kit, error) {
	var kit models.Kit
	if err := s.getTyped(ctx, recordstore.CategoryKits, id, "kit", &kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

func (s *RemoteStore) CreateKit(ctx context.Context, kit *models.Kit) error {
	return s.createTyped(ctx, recordstore.CategoryKits, kit.ID, kit)
}

func (s *RemoteStore) GetAssetGroup(ctx context.Context, id string) (*models.AssetGroup, error) {
	var group models.AssetGroup
	if err := s.getTyped(ctx, recordstore.CategoryAssetGroups, id, "asset group", &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *RemoteStore) CreateAssetGroup(ctx context.Context, group *models.AssetGroup) error {
	return s.createTyped(ctx, recordstore.CategoryAssetGroups, group.ID, group)
}

func (s *RemoteStore) UpdateAssetGroup(ctx context.Context, group *models.AssetGroup) (*models.AssetGroup, error) {
	group.UpdatedAt = time.Now()
	var updated models.AssetGroup
	if err := s.updateTyped(ctx, recordstore.CategoryAssetGroups, group.ID, "asset group", group, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RemoteStore) GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error) {
	var m models.Maintenance
	if err := s.getTyped(ctx, recordstore.CategoryMaintenances, id, "maintenance", &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *RemoteStore) GetMaintenances(ctx context.Context, assetID string) ([]models.Maintenance, error) {
	query := map[string]string{}
	if assetID != "" {
		query["assetID"] = assetID
	}
	recs, err := s.client.ListRecords(ctx, recordstore.CategoryMaintenances, query)
	if err != nil {
		return nil, err
	}
	var out []models.Maintenance
	for _, rec := range recs {
		var m models.Maintenance
		if err := decodePayload(rec, &m); err != nil {
			return nil, err
		}
		if assetID == "" || m.AssetID == assetID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RemoteStore) CreateMaintenance(ctx context.Context, m *models.Maintenance) error {
	return s.createTyped(ctx, recordstore.CategoryMaintenances, m.ID, m)
}

func (s *RemoteStore) UpdateMaintenance(ctx context.Context, m *models.Maintenance) (*models.Maintenance, error) {
	m.UpdatedAt = time.Now()
	var updated models.Maintenance
	if err := s.updateTyped(ctx, recordstore.CategoryMaintenances, m.ID, "maintenance", m, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *RemoteStore) CurrentActor(ctx context.Context) (models.Actor, error) {
	return s.client.CurrentActor(ctx)
}

func decodePayload(rec recordstore.Record, out any) error {
	if err := json.Unmarshal(rec.Payload, out); err != nil {
		return fmt.Errorf("decode %s record %q: %w", rec.Category, rec.ID, err)
	}
	return nil
}

func (s *RemoteStore) getTyped(ctx context.Context, category, id, kind string, out any) error {
	rec, err := s.client.GetRecord(ctx, category, id)
	if err != nil {
		return mapErr(err, kind, id)
	}
	return decodePayload(*rec, out)
}

func (s *RemoteStore) createTyped(ctx context.Context, category, id string, payload any) error {
	rec, err := recordstore.NewRecord(id, category, recordstore.CurrentGenericSchema, payload)
	if err != nil {
		return err
	}
	_, err = s.client.CreateRecord(ctx, rec)
	return err
}

func (s *RemoteStore) updateTyped(ctx context.Context, category, id, kind string, payload, out any) error {
	rec, err := recordstore.NewRecord(id, category, recordstore.CurrentGenericSchema, payload)
	if err != nil {
		return err
	}
	updated, err := s.client.UpdateRecord(ctx, rec)
	if err != nil {
		return mapErr(err, kind, id)
	}
	return decodePayload(*updated, out)
}
