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

type UpgradeHTTP struct {
	upgrades repository.UpgradeRepository
	assets   repository.AssetRepository
	notifier *notify.Notifier
}

func NewUpgradeHTTP(upgrades repository.UpgradeRepository, assets repository.AssetRepository, notifier *notify.Notifier) *UpgradeHTTP {
	return &UpgradeHTTP{upgrades: upgrades, assets: assets, notifier: notifier}
}

// GET /api/upgrades?assetId=&status=&limit=&offset=
func (h *UpgradeHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.UpgradeFilter{
			AssetID: strings.TrimSpace(qv.Get("assetId")),
			Status:  strings.TrimSpace(qv.Get("status")),
			Limit:   utils.QueryInt(qv, "limit", 20),
			Offset:  utils.QueryInt(qv, "offset", 0),
		}
		items, total, err := h.upgrades.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/upgrades/{id}
func (h *UpgradeHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		u, err := h.upgrades.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// POST /api/upgrades — files a request and announces it to managers/admins.
func (h *UpgradeHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		AssetID       string `json:"assetId"`
		RequestedBy   string `json:"requestedBy"`
		Title         string `json:"title"`
		Justification string `json:"justification"`
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
		requestedBy, err := uuid.Parse(in.RequestedBy)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid requestedBy")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			utils.Error(w, http.StatusBadRequest, "title is required")
			return
		}

		u := &models.Upgrade{
			AssetID:       assetID,
			RequestedBy:   requestedBy,
			Title:         in.Title,
			Justification: strings.TrimSpace(in.Justification),
		}
		if err := h.upgrades.Create(r.Context(), u); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.UpgradeEvent(r.Context(), notify.OpRequest, *u, "", nil)
		utils.JSON(w, http.StatusCreated, u)
	}
}

// POST /api/upgrades/{id}/decision — approves or rejects a pending request.
func (h *UpgradeHTTP) Decide() http.HandlerFunc {
	type inDTO struct {
		Decision string `json:"decision"` // approved | rejected
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
		decision := strings.ToLower(strings.TrimSpace(in.Decision))
		if decision != "approved" && decision != "rejected" {
			utils.Error(w, http.StatusBadRequest, "decision must be approved or rejected")
			return
		}

		u, err := h.upgrades.Decide(r.Context(), id, decision)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if u == nil {
			utils.Error(w, http.StatusConflict, "no pending request with that id")
			return
		}

		h.notifier.UpgradeEvent(r.Context(), notify.OpDecision, *u, decision, nil)
		utils.JSON(w, http.StatusOK, u)
	}
}
