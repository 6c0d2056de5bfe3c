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

type EmployeeHTTP struct {
	employees repository.EmployeeRepository
	notifier  *notify.Notifier
}

func NewEmployeeHTTP(employees repository.EmployeeRepository, notifier *notify.Notifier) *EmployeeHTTP {
	return &EmployeeHTTP{employees: employees, notifier: notifier}
}

// GET /api/employees?q=&department=&status=&limit=&offset=&sort=&order=
func (h *EmployeeHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.EmployeeFilter{
			Q:          strings.TrimSpace(qv.Get("q")),
			Department: strings.TrimSpace(qv.Get("department")),
			Status:     strings.TrimSpace(qv.Get("status")),
			Limit:      utils.QueryInt(qv, "limit", 20),
			Offset:     utils.QueryInt(qv, "offset", 0),
			Sort:       qv.Get("sort"),
			Order:      qv.Get("order"),
		}
		items, total, err := h.employees.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/employees/{id}
func (h *EmployeeHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		e, err := h.employees.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

// POST /api/employees — onboarding: creates the record and announces it.
func (h *EmployeeHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Department string  `json:"department"`
		Position   string  `json:"position"`
		UserID     *string `json:"userId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		in.Email = strings.TrimSpace(in.Email)
		if in.Name == "" || in.Email == "" {
			utils.Error(w, http.StatusBadRequest, "name and email are required")
			return
		}

		var userID *uuid.UUID
		if in.UserID != nil && *in.UserID != "" {
			id, err := uuid.Parse(*in.UserID)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid userId")
				return
			}
			userID = &id
		}

		e := &models.Employee{
			Name:       in.Name,
			Email:      in.Email,
			Department: strings.TrimSpace(in.Department),
			Position:   strings.TrimSpace(in.Position),
			Status:     "active",
			UserID:     userID,
		}
		if err := h.employees.Create(r.Context(), e); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.EmployeeEvent(r.Context(), notify.OpOnboard, *e)
		utils.JSON(w, http.StatusCreated, e)
	}
}

// PATCH /api/employees/{id}
func (h *EmployeeHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name       *string `json:"name"`
		Email      *string `json:"email"`
		Department *string `json:"department"`
		Position   *string `json:"position"`
		UserID     *string `json:"userId"`
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

		e, err := h.employees.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		if in.Name != nil {
			e.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			e.Email = strings.TrimSpace(*in.Email)
		}
		if in.Department != nil {
			e.Department = strings.TrimSpace(*in.Department)
		}
		if in.Position != nil {
			e.Position = strings.TrimSpace(*in.Position)
		}
		if in.UserID != nil {
			if *in.UserID == "" {
				e.UserID = nil
			} else {
				uid, err := uuid.Parse(*in.UserID)
				if err != nil {
					utils.Error(w, http.StatusBadRequest, "invalid userId")
					return
				}
				e.UserID = &uid
			}
		}

		if err := h.employees.Update(r.Context(), e); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, e)
	}
}

// POST /api/employees/{id}/offboard
func (h *EmployeeHTTP) Offboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		e, err := h.employees.SetStatus(r.Context(), id, "offboarded")
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if e == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		h.notifier.EmployeeEvent(r.Context(), notify.OpOffboard, *e)
		utils.JSON(w, http.StatusOK, e)
	}
}

// DELETE /api/employees/{id}
func (h *EmployeeHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		if err := h.employees.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
