// internal/inventory/memory.go
package inventory

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"

	"equipment-inventory-api-server/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local development. It
// mirrors the remote store's semantics: copies in, copies out, no
// multi-record transactions. Copies are deep — nested maps and slices are
// cloned both ways, so a caller can never alias the store's internal state.
type MemoryStore struct {
	mu           sync.RWMutex
	assets       map[string]models.Asset
	bookings     map[string]models.Booking
	kits         map[string]models.Kit
	groups       map[string]models.AssetGroup
	maintenances map[string]models.Maintenance
	actor        models.Actor
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assets:       make(map[string]models.Asset),
		bookings:     make(map[string]models.Booking),
		kits:         make(map[string]models.Kit),
		groups:       make(map[string]models.AssetGroup),
		maintenances: make(map[string]models.Maintenance),
		actor:        models.Actor{ID: "actor-1", Name: "Test Actor"},
	}
}

func cloneAsset(a models.Asset) models.Asset {
	a.ChildAssetIDs = slices.Clone(a.ChildAssetIDs)
	a.FieldSources = maps.Clone(a.FieldSources)
	a.CustomFieldValues = maps.Clone(a.CustomFieldValues)
	if a.AssetGroup != nil {
		ref := *a.AssetGroup
		a.AssetGroup = &ref
	}
	if a.InUseBy != nil {
		v := *a.InUseBy
		a.InUseBy = &v
	}
	return a
}

func cloneCheckEvent(e *models.CheckEvent) *models.CheckEvent {
	if e == nil {
		return nil
	}
	v := *e
	if v.Condition != nil {
		c := *v.Condition
		c.PhotoURLs = slices.Clone(c.PhotoURLs)
		v.Condition = &c
	}
	return &v
}

func cloneBooking(b models.Booking) models.Booking {
	b.AllocatedChildAssets = slices.Clone(b.AllocatedChildAssets)
	if b.CreatedBy != nil {
		v := *b.CreatedBy
		b.CreatedBy = &v
	}
	b.CheckedOut = cloneCheckEvent(b.CheckedOut)
	b.CheckedIn = cloneCheckEvent(b.CheckedIn)
	return b
}

func cloneKit(k models.Kit) models.Kit {
	k.BoundAssets = slices.Clone(k.BoundAssets)
	for i := range k.BoundAssets {
		k.BoundAssets[i].Inherits = maps.Clone(k.BoundAssets[i].Inherits)
	}
	k.PoolRequirements = slices.Clone(k.PoolRequirements)
	for i := range k.PoolRequirements {
		k.PoolRequirements[i].Filters = maps.Clone(k.PoolRequirements[i].Filters)
	}
	return k
}

func cloneGroup(g models.AssetGroup) models.AssetGroup {
	g.MemberAssetIDs = slices.Clone(g.MemberAssetIDs)
	g.InheritanceRules = maps.Clone(g.InheritanceRules)
	g.SharedCustomFields = maps.Clone(g.SharedCustomFields)
	return g
}

func cloneMaintenance(m models.Maintenance) models.Maintenance {
	if m.OpenedBy != nil {
		v := *m.OpenedBy
		m.OpenedBy = &v
	}
	if m.CompletedBy != nil {
		v := *m.CompletedBy
		m.CompletedBy = &v
	}
	return m
}

// SetActor overrides the actor returned by CurrentActor.
func (s *MemoryStore) SetActor(actor models.Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = actor
}

func (s *MemoryStore) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	if !ok {
		return nil, NotFound("asset", id)
	}
	a = cloneAsset(a)
	return &a, nil
}

func (s *MemoryStore) GetAssets(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Asset
	for _, a := range s.assets {
		if MatchAsset(&a, filter) {
			out = append(out, cloneAsset(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetNumber < out[j].AssetNumber })
	return out, nil
}

func (s *MemoryStore) CreateAsset(ctx context.Context, asset *models.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.ID] = cloneAsset(*asset)
	return nil
}

func (s *MemoryStore) UpdateAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[asset.ID]; !ok {
		return nil, NotFound("asset", asset.ID)
	}
	s.assets[asset.ID] = cloneAsset(*asset)
	updated := cloneAsset(s.assets[asset.ID])
	return &updated, nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, NotFound("booking", id)
	}
	b = cloneBooking(b)
	return &b, nil
}

func (s *MemoryStore) GetBookings(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if MatchBooking(&b, filter) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return nil, NotFound("booking", booking.ID)
	}
	s.bookings[booking.ID] = cloneBooking(*booking)
	updated := cloneBooking(s.bookings[booking.ID])
	return &updated, nil
}

func (s *MemoryStore) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return NotFound("booking", id)
	}
	delete(s.bookings, id)
	return nil
}

func (s *MemoryStore) GetKit(ctx context.Context, id string) (*models.Kit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.kits[id]
	if !ok {
		return nil, NotFound("kit", id)
	}
	k = cloneKit(k)
	return &k, nil
}

func (s *MemoryStore) CreateKit(ctx context.Context, kit *models.Kit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kits[kit.ID] = cloneKit(*kit)
	return nil
}

func (s *MemoryStore) GetAssetGroup(ctx context.Context, id string) (*models.AssetGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, NotFound("asset group", id)
	}
	g = cloneGroup(g)
	return &g, nil
}

func (s *MemoryStore) CreateAssetGroup(ctx context.Context, group *models.AssetGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = cloneGroup(*group)
	return nil
}

func (s *MemoryStore) UpdateAssetGroup(ctx context.Context, group *models.AssetGroup) (*models.AssetGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[group.ID]; !ok {
		return nil, NotFound("asset group", group.ID)
	}
	s.groups[group.ID] = cloneGroup(*group)
	updated := cloneGroup(s.groups[group.ID])
	return &updated, nil
}

func (s *MemoryStore) GetMaintenance(ctx context.Context, id string) (*models.Maintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.maintenances[id]
	if !ok {
		return nil, NotFound("maintenance", id)
	}
	m = cloneMaintenance(m)
	return &m, nil
}

func (s *MemoryStore) GetMaintenances(ctx context.Context, assetID string) ([]models.Maintenance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Maintenance
	for _, m := range s.maintenances {
		if assetID == "" || m.AssetID == assetID {
			out = append(out, cloneMaintenance(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) CreateMaintenance(ctx context.Context, m *models.Maintenance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maintenances[m.ID] = cloneMaintenance(*m)
	return nil
}

func (s *MemoryStore) UpdateMaintenance(ctx context.Context, m *models.Maintenance) (*models.Maintenance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maintenances[m.ID]; !ok {
		return nil, NotFound("maintenance", m.ID)
	}
	s.maintenances[m.ID] = cloneMaintenance(*m)
	updated := cloneMaintenance(s.maintenances[m.ID])
	return &updated, nil
}

func (s *MemoryStore) CurrentActor(ctx context.Context) (models.Actor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actor, nil
}
