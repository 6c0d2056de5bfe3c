package notify

import (
	"strings"

	"github.com/google/uuid"

	"assetdesk/internal/models"
)

// Raw records reach the system from CSV import and generic JSON producers
// with either camelCase or snake_case keys. Conversion to the canonical
// model happens once here, at the boundary; the decision logic above never
// does dual-path field access.

func pick(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func recString(rec map[string]any, keys ...string) string {
	v, ok := pick(rec, keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func recUUID(rec map[string]any, keys ...string) *uuid.UUID {
	v, ok := pick(rec, keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case uuid.UUID:
		return &t
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(t)); err == nil {
			return &id
		}
	}
	return nil
}

// EmployeeFromRecord builds a canonical employee snapshot from a raw record.
func EmployeeFromRecord(rec map[string]any) models.Employee {
	return models.Employee{
		Name:       recString(rec, "name"),
		Email:      recString(rec, "email"),
		Department: recString(rec, "department"),
		Position:   recString(rec, "position"),
		Status:     recString(rec, "status"),
		UserID:     recUUID(rec, "userId", "user_id"),
	}
}

// AssetFromRecord builds a canonical asset snapshot from a raw record.
func AssetFromRecord(rec map[string]any) models.Asset {
	return models.Asset{
		AssetTag:   recString(rec, "assetTag", "asset_tag"),
		Name:       recString(rec, "name"),
		Category:   recString(rec, "category"),
		Status:     recString(rec, "status"),
		AssignedTo: recUUID(rec, "assignedTo", "assigned_to", "assignedEmployeeId", "assigned_employee_id"),
	}
}
