// internal/groups/service.go
package groups

import (
	"context"
	"fmt"
	"log"
	"time"

	"equipment-inventory-api-server/internal/history"
	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// ChangeRecorder receives best-effort change notes for the history feed.
type ChangeRecorder interface {
	Record(ctx context.Context, change history.Change)
}

// Service owns asset groups: membership, inheritance rules and the fan-out
// of group-level edits to members.
//
// Membership is a back-reference relationship without relational foreign
// keys: the group's member set is the source of truth and every asset keeps
// an assetGroup pointer back. Both sides are always written by the same
// routine here so neither can drift.
type Service struct {
	store   inventory.Store
	history ChangeRecorder
	now     func() time.Time
}

func NewService(store inventory.Store, recorder ChangeRecorder) *Service {
	return &Service{store: store, history: recorder, now: time.Now}
}

// CreateGroupRequest carries a new group's definition.
type CreateGroupRequest struct {
	ID                 string                            `json:"id"`
	GroupNumber        string                            `json:"groupNumber"`
	Name               string                            `json:"name"`
	InheritanceRules   map[string]models.InheritanceRule `json:"inheritanceRules"`
	SharedCustomFields map[string]string                 `json:"sharedCustomFields"`
}

func (s *Service) CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.AssetGroup, error) {
	if req.GroupNumber == "" {
		return nil, &inventory.ValidationError{Field: "groupNumber", Message: "is required"}
	}
	if req.Name == "" {
		return nil, &inventory.ValidationError{Field: "name", Message: "is required"}
	}
	now := s.now()
	group := &models.AssetGroup{
		ID:                 req.ID,
		GroupNumber:        req.GroupNumber,
		Name:               req.Name,
		MemberAssetIDs:     []string{},
		InheritanceRules:   req.InheritanceRules,
		SharedCustomFields: req.SharedCustomFields,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if err := s.store.CreateAssetGroup(ctx, group); err != nil {
		return nil, err
	}
	s.note(ctx, group.ID, "created", fmt.Sprintf("group %s created", group.GroupNumber))
	return group, nil
}

// ResolveAssetField returns the effective value of one field for an asset,
// consulting the owning group when there is one.
func (s *Service) ResolveAssetField(ctx context.Context, assetID, fieldKey string) (*Resolution, error) {
	if fieldKey == "" {
		return nil, &inventory.ValidationError{Field: "fieldKey", Message: "is required"}
	}
	asset, err := s.store.GetAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	var group *models.AssetGroup
	if asset.AssetGroup != nil {
		group, err = s.store.GetAssetGroup(ctx, asset.AssetGroup.ID)
		if err != nil {
			return nil, err
		}
	}

	res := Resolve(asset, group, fieldKey)
	return &res, nil
}

// AddMember puts an asset into a group, updating both sides of the
// back-reference. Adding an existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, groupID, assetID string) error {
	group, err := s.store.GetAssetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	asset, err := s.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.AssetGroup != nil && asset.AssetGroup.ID != groupID {
		return &inventory.StateError{
			Current: asset.AssetGroup.GroupNumber,
			Action:  "add to group",
			Message: fmt.Sprintf("asset %s already belongs to group %s", asset.AssetNumber, asset.AssetGroup.GroupNumber),
		}
	}
	if group.HasMember(assetID) && asset.AssetGroup != nil {
		return nil
	}

	if !group.HasMember(assetID) {
		group.MemberAssetIDs = append(group.MemberAssetIDs, assetID)
	}
	group.MemberCount = len(group.MemberAssetIDs)
	if _, err := s.store.UpdateAssetGroup(ctx, group); err != nil {
		return err
	}

	asset.AssetGroup = group.Ref()
	if asset.FieldSources == nil {
		asset.FieldSources = make(map[string]models.FieldSource)
	}
	// Inherited fields start out group-sourced unless the asset already
	// carries an explicit override.
	for key, rule := range group.InheritanceRules {
		if rule.Inherited && asset.FieldSources[key] != models.FieldSourceOverride {
			asset.FieldSources[key] = models.FieldSourceGroup
		}
	}
	if _, err := s.store.UpdateAsset(ctx, asset); err != nil {
		return fmt.Errorf("update member back-reference: %w", err)
	}
	s.note(ctx, groupID, "member-added", fmt.Sprintf("asset %s added to group %s", asset.AssetNumber, group.GroupNumber))
	return nil
}

// RemoveMember takes an asset out of a group. Group-sourced values are
// materialized into the asset's local fields first, so the asset keeps its
// last effective values after the detach.
func (s *Service) RemoveMember(ctx context.Context, groupID, assetID string) error {
	group, err := s.store.GetAssetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	asset, err := s.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if !group.HasMember(assetID) {
		return &inventory.StateError{
			Current: string(models.FieldSourceLocal),
			Action:  "remove from group",
			Message: fmt.Sprintf("asset %s is not a member of group %s", asset.AssetNumber, group.GroupNumber),
		}
	}

	// Build a fresh slice rather than compacting in place, so the loaded
	// group's backing array stays untouched until the update commits.
	members := make([]string, 0, len(group.MemberAssetIDs))
	for _, id := range group.MemberAssetIDs {
		if id != assetID {
			members = append(members, id)
		}
	}
	group.MemberAssetIDs = members
	group.MemberCount = len(members)
	if _, err := s.store.UpdateAssetGroup(ctx, group); err != nil {
		return err
	}

	for key, source := range asset.FieldSources {
		if source != models.FieldSourceGroup {
			continue
		}
		if value, ok := group.FieldValue(key); ok {
			asset.SetFieldValue(key, value)
		}
		delete(asset.FieldSources, key)
	}
	for key, source := range asset.FieldSources {
		if source == models.FieldSourceOverride {
			asset.FieldSources[key] = models.FieldSourceLocal
		}
	}
	asset.AssetGroup = nil
	if _, err := s.store.UpdateAsset(ctx, asset); err != nil {
		return fmt.Errorf("clear member back-reference: %w", err)
	}
	s.note(ctx, groupID, "member-removed", fmt.Sprintf("asset %s removed from group %s", asset.AssetNumber, group.GroupNumber))
	return nil
}

// GroupPatch is a partial update of a group's definition. Nil maps leave the
// existing maps untouched.
type GroupPatch struct {
	Name               *string                           `json:"name"`
	InheritanceRules   map[string]models.InheritanceRule `json:"inheritanceRules"`
	SharedCustomFields map[string]string                 `json:"sharedCustomFields"`
}

// BulkUpdateOptions controls member propagation.
type BulkUpdateOptions struct {
	// ClearOverrides resets explicit per-asset overrides of inherited fields
	// back to group sourcing before propagating.
	ClearOverrides bool `json:"clearOverrides"`
}

// BulkUpdateGroupMembers applies a patch to the group, then fans the group's
// current values out to every member: each field sourced as group is
// overwritten with the group value, or cleared when the group no longer
// defines it. Fields a member has explicitly overridden are left alone
// unless ClearOverrides is set.
//
// Member propagation is not transactional. A member that fails to update is
// logged and skipped; the group update itself has already landed.
func (s *Service) BulkUpdateGroupMembers(ctx context.Context, groupID string, patch GroupPatch, opts BulkUpdateOptions) (*models.AssetGroup, error) {
	group, err := s.store.GetAssetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		group.Name = *patch.Name
	}
	if patch.InheritanceRules != nil {
		group.InheritanceRules = patch.InheritanceRules
	}
	if patch.SharedCustomFields != nil {
		group.SharedCustomFields = patch.SharedCustomFields
	}
	group.MemberCount = len(group.MemberAssetIDs)
	updated, err := s.store.UpdateAssetGroup(ctx, group)
	if err != nil {
		return nil, err
	}

	for _, assetID := range updated.MemberAssetIDs {
		if err := s.propagateToMember(ctx, updated, assetID, opts); err != nil {
			log.Printf("group %s: propagation to member %s failed: %v", groupID, assetID, err)
		}
	}
	s.note(ctx, groupID, "bulk-updated", fmt.Sprintf("group %s updated, %d member(s) refreshed", updated.GroupNumber, len(updated.MemberAssetIDs)))
	return updated, nil
}

func (s *Service) propagateToMember(ctx context.Context, group *models.AssetGroup, assetID string, opts BulkUpdateOptions) error {
	asset, err := s.store.GetAsset(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.FieldSources == nil {
		asset.FieldSources = make(map[string]models.FieldSource)
	}
	asset.AssetGroup = group.Ref()

	for key, rule := range group.InheritanceRules {
		if !rule.Inherited {
			continue
		}
		if asset.FieldSources[key] == models.FieldSourceOverride {
			if !opts.ClearOverrides {
				continue
			}
			asset.FieldSources[key] = models.FieldSourceGroup
		}
		if asset.FieldSources[key] == "" {
			asset.FieldSources[key] = models.FieldSourceGroup
		}
		if value, ok := group.FieldValue(key); ok {
			asset.SetFieldValue(key, value)
		} else {
			asset.ClearFieldValue(key)
		}
	}

	// Fields that used to be group-sourced but no longer have an inherited
	// rule fall back to local.
	for key, source := range asset.FieldSources {
		if source != models.FieldSourceGroup {
			continue
		}
		if rule, ok := group.InheritanceRules[key]; !ok || !rule.Inherited {
			asset.FieldSources[key] = models.FieldSourceLocal
		}
	}

	_, err = s.store.UpdateAsset(ctx, asset)
	return err
}

func (s *Service) note(ctx context.Context, groupID, action, note string) {
	if s.history == nil {
		return
	}
	s.history.Record(ctx, history.Change{
		EntityType: "asset-group",
		EntityID:   groupID,
		Action:     action,
		Note:       note,
	})
}
