// internal/groups/resolver.go
package groups

import (
	"equipment-inventory-api-server/internal/models"
)

// Resolution is the authoritative value of one asset field together with
// where it came from.
type Resolution struct {
	Value   string             `json:"value"`
	Source  models.FieldSource `json:"source"`
	Defined bool               `json:"defined"`
}

// Resolve computes the effective value of fieldKey for an asset that may
// belong to a group.
//
// Decision rule: no group → local. An explicit per-asset override → the
// asset's own value, source override. Otherwise the group's inheritance rule
// decides: inherited fields read from the group, everything else stays
// local. The field-source map is the only per-asset state consulted.
func Resolve(asset *models.Asset, group *models.AssetGroup, fieldKey string) Resolution {
	if asset.AssetGroup == nil || group == nil {
		value, ok := asset.FieldValue(fieldKey)
		return Resolution{Value: value, Source: models.FieldSourceLocal, Defined: ok}
	}

	if asset.FieldSources[fieldKey] == models.FieldSourceOverride {
		value, ok := asset.FieldValue(fieldKey)
		return Resolution{Value: value, Source: models.FieldSourceOverride, Defined: ok}
	}

	if rule, ok := group.InheritanceRules[fieldKey]; ok && rule.Inherited {
		value, defined := group.FieldValue(fieldKey)
		return Resolution{Value: value, Source: models.FieldSourceGroup, Defined: defined}
	}

	value, ok := asset.FieldValue(fieldKey)
	return Resolution{Value: value, Source: models.FieldSourceLocal, Defined: ok}
}
