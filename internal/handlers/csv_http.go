package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"

	"assetdesk/internal/notify"
	"assetdesk/internal/repository"
	"assetdesk/internal/utils"
)

// CSVHTTP handles bulk import/export of employees and assets. Import rows
// may use camelCase or snake_case headers; they are normalized once at the
// boundary before anything looks at them.
type CSVHTTP struct {
	employees repository.EmployeeRepository
	assets    repository.AssetRepository
	notifier  *notify.Notifier
}

func NewCSVHTTP(employees repository.EmployeeRepository, assets repository.AssetRepository, notifier *notify.Notifier) *CSVHTTP {
	return &CSVHTTP{employees: employees, assets: assets, notifier: notifier}
}

// readRecords parses CSV into raw records keyed by the header row.
func readRecords(r *http.Request) ([]map[string]any, error) {
	reader := csv.NewReader(r.Body)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("csv needs a header row and at least one data row")
	}

	header := rows[0]
	out := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, key := range header {
			if i < len(row) {
				rec[strings.TrimSpace(key)] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func writeCSV(w http.ResponseWriter, filename string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	cw := csv.NewWriter(w)
	_ = cw.WriteAll(rows)
	cw.Flush()
}

// POST /api/employees/import
func (h *CSVHTTP) ImportEmployees() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := readRecords(r)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		imported := 0
		var failures []string
		for i, rec := range recs {
			e := notify.EmployeeFromRecord(rec)
			if e.Name == "" || e.Email == "" {
				failures = append(failures, fmt.Sprintf("row %d: name and email are required", i+2))
				continue
			}
			if e.Status == "" {
				e.Status = "active"
			}
			if err := h.employees.Create(r.Context(), &e); err != nil {
				failures = append(failures, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			h.notifier.EmployeeEvent(r.Context(), notify.OpOnboard, e)
			imported++
		}

		utils.JSON(w, http.StatusOK, map[string]any{
			"imported": imported,
			"failed":   len(failures),
			"errors":   failures,
		})
	}
}

// GET /api/employees/export
func (h *CSVHTTP) ExportEmployees() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := h.employees.List(r.Context(), repository.EmployeeFilter{Limit: 10000})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		rows := [][]string{{"id", "name", "email", "department", "position", "status", "user_id"}}
		for _, e := range items {
			uid := ""
			if e.UserID != nil {
				uid = e.UserID.String()
			}
			rows = append(rows, []string{
				e.ID.String(), e.Name, e.Email, e.Department, e.Position, e.Status, uid,
			})
		}
		writeCSV(w, "employees.csv", rows)
	}
}

// POST /api/assets/import
func (h *CSVHTTP) ImportAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := readRecords(r)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		imported := 0
		var failures []string
		for i, rec := range recs {
			a := notify.AssetFromRecord(rec)
			if a.AssetTag == "" || a.Name == "" {
				failures = append(failures, fmt.Sprintf("row %d: asset tag and name are required", i+2))
				continue
			}
			if a.Status == "" {
				a.Status = "Available"
				if a.AssignedTo != nil {
					a.Status = "Assigned"
				}
			}
			if err := h.assets.Create(r.Context(), &a); err != nil {
				failures = append(failures, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			h.notifier.AssetChanged(r.Context(), notify.OpCreate, a, nil, nil)
			imported++
		}

		utils.JSON(w, http.StatusOK, map[string]any{
			"imported": imported,
			"failed":   len(failures),
			"errors":   failures,
		})
	}
}

// GET /api/assets/export
func (h *CSVHTTP) ExportAssets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, _, err := h.assets.List(r.Context(), repository.AssetFilter{Limit: 10000})
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		rows := [][]string{{"id", "asset_tag", "name", "category", "status", "assigned_to"}}
		for _, a := range items {
			assigned := ""
			if a.AssignedTo != nil {
				assigned = a.AssignedTo.String()
			}
			rows = append(rows, []string{
				a.ID.String(), a.AssetTag, a.Name, a.Category, a.Status, assigned,
			})
		}
		writeCSV(w, "assets.csv", rows)
	}
}
