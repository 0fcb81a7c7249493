package groups

import (
	"testing"

	"equipment-inventory-api-server/internal/models"
)

func cameraGroup() *models.AssetGroup {
	return &models.AssetGroup{
		ID:          "g1",
		GroupNumber: "GRP-001",
		Name:        "Sony FX6 Fleet",
		InheritanceRules: map[string]models.InheritanceRule{
			"manufacturer": {Inherited: true, Overridable: true},
			"status":       {Inherited: false},
		},
		SharedCustomFields: map[string]string{"manufacturer": "Sony"},
	}
}

func memberAsset(group *models.AssetGroup) *models.Asset {
	return &models.Asset{
		ID:          "a1",
		AssetNumber: "CAM-001",
		Name:        "FX6 Body A",
		Status:      models.AssetStatusAvailable,
		AssetGroup:  group.Ref(),
		FieldSources: map[string]models.FieldSource{
			"manufacturer": models.FieldSourceGroup,
		},
		CustomFieldValues: map[string]string{"manufacturer": "Sony"},
	}
}

func TestResolveInheritedFieldReadsGroup(t *testing.T) {
	group := cameraGroup()
	asset := memberAsset(group)

	res := Resolve(asset, group, "manufacturer")
	if res.Value != "Sony" || res.Source != models.FieldSourceGroup || !res.Defined {
		t.Errorf("manufacturer = %+v, want Sony from group", res)
	}
}

func TestResolveNonInheritedFieldStaysLocal(t *testing.T) {
	group := cameraGroup()
	asset := memberAsset(group)

	res := Resolve(asset, group, "status")
	if res.Source != models.FieldSourceLocal {
		t.Errorf("status source = %s, want local", res.Source)
	}
	if res.Value != string(models.AssetStatusAvailable) {
		t.Errorf("status value = %q", res.Value)
	}
}

func TestResolveOverrideWins(t *testing.T) {
	group := cameraGroup()
	asset := memberAsset(group)
	asset.FieldSources["manufacturer"] = models.FieldSourceOverride
	asset.CustomFieldValues["manufacturer"] = "Sony (refurb)"

	res := Resolve(asset, group, "manufacturer")
	if res.Value != "Sony (refurb)" || res.Source != models.FieldSourceOverride {
		t.Errorf("override = %+v, want the asset's own value", res)
	}
}

func TestResolveWithoutGroup(t *testing.T) {
	asset := &models.Asset{
		ID:                "a1",
		AssetNumber:       "CAM-001",
		CustomFieldValues: map[string]string{"manufacturer": "Canon"},
	}

	res := Resolve(asset, nil, "manufacturer")
	if res.Value != "Canon" || res.Source != models.FieldSourceLocal {
		t.Errorf("groupless asset = %+v, want local Canon", res)
	}
}

func TestResolveUndefinedField(t *testing.T) {
	group := cameraGroup()
	asset := memberAsset(group)

	res := Resolve(asset, group, "serialRange")
	if res.Defined {
		t.Errorf("serialRange should be undefined, got %+v", res)
	}
	if res.Source != models.FieldSourceLocal {
		t.Errorf("undefined fields resolve local, got %s", res.Source)
	}
}

func TestResolveInheritedFieldGroupDoesNotDefine(t *testing.T) {
	group := cameraGroup()
	group.InheritanceRules["warranty"] = models.InheritanceRule{Inherited: true}
	asset := memberAsset(group)

	res := Resolve(asset, group, "warranty")
	if res.Source != models.FieldSourceGroup {
		t.Errorf("source = %s, want group", res.Source)
	}
	if res.Defined {
		t.Error("group does not define warranty, resolution should say so")
	}
}
