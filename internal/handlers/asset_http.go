package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"assetdesk/internal/models"
	"assetdesk/internal/notify"
	"assetdesk/internal/repository"
	"assetdesk/internal/utils"
)

type AssetHTTP struct {
	assets   repository.AssetRepository
	users    repository.UserRepository
	notifier *notify.Notifier
}

func NewAssetHTTP(assets repository.AssetRepository, users repository.UserRepository, notifier *notify.Notifier) *AssetHTTP {
	return &AssetHTTP{assets: assets, users: users, notifier: notifier}
}

// GET /api/assets?q=&category=&status=&assignee=&limit=&offset=&sort=&order=
func (h *AssetHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.AssetFilter{
			Q:        strings.TrimSpace(qv.Get("q")),
			Category: strings.TrimSpace(qv.Get("category")),
			Status:   strings.TrimSpace(qv.Get("status")),
			Assignee: strings.TrimSpace(qv.Get("assignee")),
			Limit:    utils.QueryInt(qv, "limit", 20),
			Offset:   utils.QueryInt(qv, "offset", 0),
			Sort:     qv.Get("sort"),
			Order:    qv.Get("order"),
		}
		items, total, err := h.assets.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/assets/{id}
func (h *AssetHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		a, err := h.assets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, a)
	}
}

// POST /api/assets
func (h *AssetHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		AssetTag   string  `json:"assetTag"`
		Name       string  `json:"name"`
		Category   string  `json:"category"`
		Status     string  `json:"status"`
		AssignedTo *string `json:"assignedTo"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.AssetTag = strings.TrimSpace(in.AssetTag)
		in.Name = strings.TrimSpace(in.Name)
		if in.AssetTag == "" || in.Name == "" {
			utils.Error(w, http.StatusBadRequest, "assetTag and name are required")
			return
		}

		var assignedTo *uuid.UUID
		if in.AssignedTo != nil && *in.AssignedTo != "" {
			id, err := uuid.Parse(*in.AssignedTo)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid assignedTo")
				return
			}
			assignedTo = &id
		}

		status := strings.TrimSpace(in.Status)
		if status == "" {
			status = "Available"
		}
		if assignedTo != nil {
			status = "Assigned"
		}

		a := &models.Asset{
			AssetTag:   in.AssetTag,
			Name:       in.Name,
			Category:   strings.TrimSpace(in.Category),
			Status:     status,
			AssignedTo: assignedTo,
		}
		if err := h.assets.Create(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.AssetChanged(r.Context(), notify.OpCreate, *a, nil, actingUser(r, h.users))
		utils.JSON(w, http.StatusCreated, a)
	}
}

// PATCH /api/assets/{id}
func (h *AssetHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		AssetTag   *string `json:"assetTag"`
		Name       *string `json:"name"`
		Category   *string `json:"category"`
		Status     *string `json:"status"`
		AssignedTo *string `json:"assignedTo"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := h.assets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		prev := *a

		if in.AssetTag != nil {
			a.AssetTag = strings.TrimSpace(*in.AssetTag)
		}
		if in.Name != nil {
			a.Name = strings.TrimSpace(*in.Name)
		}
		if in.Category != nil {
			a.Category = strings.TrimSpace(*in.Category)
		}
		if in.Status != nil {
			a.Status = strings.TrimSpace(*in.Status)
		}
		if in.AssignedTo != nil {
			if *in.AssignedTo == "" {
				a.AssignedTo = nil
			} else {
				eid, err := uuid.Parse(*in.AssignedTo)
				if err != nil {
					utils.Error(w, http.StatusBadRequest, "invalid assignedTo")
					return
				}
				a.AssignedTo = &eid
			}
		}

		if err := h.assets.Update(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.AssetChanged(r.Context(), notify.OpUpdate, *a, &prev, actingUser(r, h.users))
		utils.JSON(w, http.StatusOK, a)
	}
}

// POST /api/assets/{id}/checkout — hands the asset to an employee.
func (h *AssetHTTP) CheckOut() http.HandlerFunc {
	type inDTO struct {
		EmployeeID string `json:"employeeId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		eid, err := uuid.Parse(in.EmployeeID)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid employeeId")
			return
		}

		a, err := h.assets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if a.AssignedTo != nil {
			utils.Error(w, http.StatusConflict, "asset is already checked out")
			return
		}
		prev := *a

		a.AssignedTo = &eid
		a.Status = "Assigned"
		if err := h.assets.Update(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.AssetChanged(r.Context(), notify.OpCheckOut, *a, &prev, actingUser(r, h.users))
		utils.JSON(w, http.StatusOK, a)
	}
}

// POST /api/assets/{id}/checkin — takes the asset back.
func (h *AssetHTTP) CheckIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}

		a, err := h.assets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if a.AssignedTo == nil {
			utils.Error(w, http.StatusConflict, "asset is not checked out")
			return
		}
		prev := *a

		a.AssignedTo = nil
		a.Status = "Available"
		if err := h.assets.Update(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.AssetChanged(r.Context(), notify.OpCheckIn, *a, &prev, actingUser(r, h.users))
		utils.JSON(w, http.StatusOK, a)
	}
}

// DELETE /api/assets/{id}
func (h *AssetHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := h.assets.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
