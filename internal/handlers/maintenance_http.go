package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"assetdesk/internal/models"
	"assetdesk/internal/notify"
	"assetdesk/internal/repository"
	"assetdesk/internal/utils"
)

type MaintenanceHTTP struct {
	maint    repository.MaintenanceRepository
	assets   repository.AssetRepository
	notifier *notify.Notifier
}

func NewMaintenanceHTTP(maint repository.MaintenanceRepository, assets repository.AssetRepository, notifier *notify.Notifier) *MaintenanceHTTP {
	return &MaintenanceHTTP{maint: maint, assets: assets, notifier: notifier}
}

// GET /api/maintenance?assetId=&status=&limit=&offset=
func (h *MaintenanceHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.MaintenanceFilter{
			AssetID: strings.TrimSpace(qv.Get("assetId")),
			Status:  strings.TrimSpace(qv.Get("status")),
			Limit:   utils.QueryInt(qv, "limit", 20),
			Offset:  utils.QueryInt(qv, "offset", 0),
		}
		items, total, err := h.maint.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/maintenance/{id}
func (h *MaintenanceHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		m, err := h.maint.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if m == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, m)
	}
}

// POST /api/maintenance — schedules maintenance for an asset.
func (h *MaintenanceHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		AssetID     string    `json:"assetId"`
		Description string    `json:"description"`
		ScheduledAt time.Time `json:"scheduledAt"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		assetID, err := uuid.Parse(in.AssetID)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid assetId")
			return
		}
		if in.ScheduledAt.IsZero() {
			utils.Error(w, http.StatusBadRequest, "scheduledAt is required")
			return
		}

		a, err := h.assets.Get(r.Context(), assetID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if a == nil {
			utils.Error(w, http.StatusNotFound, "asset not found")
			return
		}

		m := &models.Maintenance{
			AssetID:     assetID,
			Description: strings.TrimSpace(in.Description),
			ScheduledAt: in.ScheduledAt,
		}
		if err := h.maint.Create(r.Context(), m); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.MaintenanceEvent(r.Context(), notify.OpSchedule, *m, a)
		utils.JSON(w, http.StatusCreated, m)
	}
}

// POST /api/maintenance/{id}/complete
func (h *MaintenanceHTTP) Complete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		m, err := h.maint.Complete(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if m == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		h.notifier.MaintenanceEvent(r.Context(), notify.OpComplete, *m, nil)
		utils.JSON(w, http.StatusOK, m)
	}
}
