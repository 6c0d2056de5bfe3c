package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"assetdesk/internal/middleware"
	"assetdesk/internal/models"
	"assetdesk/internal/notify"
	"assetdesk/internal/repository"
	"assetdesk/internal/utils"
)

// TicketHTTP wires ticket endpoints to repositories. Notification routing
// runs after each successful write and never affects the response.
type TicketHTTP struct {
	tickets  repository.TicketRepository
	users    repository.UserRepository
	notifier *notify.Notifier
}

func NewTicketHTTP(tickets repository.TicketRepository, users repository.UserRepository, notifier *notify.Notifier) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, users: users, notifier: notifier}
}

// GET /api/tickets?q=&status=&priority=&category=&assignee=&limit=&offset=&sort=&order=
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.TicketFilter{
			Q:        strings.TrimSpace(qv.Get("q")),
			Status:   strings.TrimSpace(qv.Get("status")),
			Priority: strings.TrimSpace(qv.Get("priority")),
			Category: strings.TrimSpace(qv.Get("category")),
			Assignee: strings.TrimSpace(qv.Get("assignee")),
			Limit:    utils.QueryInt(qv, "limit", 10),
			Offset:   utils.QueryInt(qv, "offset", 0),
			Sort:     qv.Get("sort"),
			Order:    qv.Get("order"),
		}

		// Regular users only see their own queue.
		if role, _ := utils.GetString(r.Context(), middleware.CtxRole); role == "user" {
			if uid, ok := ctxUserID(r); ok {
				f.Assignee = uid.String()
			}
		}

		items, total, err := h.tickets.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		t, err := h.tickets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets
// Tickets created by regular users are auto-assigned to the first active
// admin so nothing sits unowned.
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Category    string  `json:"category"`
		Priority    string  `json:"priority"`
		AssignedTo  *string `json:"assignedTo"`
		SubmittedBy *string `json:"submittedBy"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			utils.Error(w, http.StatusBadRequest, "title is required")
			return
		}

		uid, ok := ctxUserID(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		role, _ := utils.GetString(r.Context(), middleware.CtxRole)

		var assignedTo *uuid.UUID
		if in.AssignedTo != nil && *in.AssignedTo != "" {
			id, err := uuid.Parse(*in.AssignedTo)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid assignedTo")
				return
			}
			assignedTo = &id
		}
		var submittedBy *uuid.UUID
		if in.SubmittedBy != nil && *in.SubmittedBy != "" {
			id, err := uuid.Parse(*in.SubmittedBy)
			if err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid submittedBy")
				return
			}
			submittedBy = &id
		}

		switch {
		case role == "user":
			adminID, err := h.users.FirstActiveAdminID(r.Context())
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "no active admin available for assignment")
				return
			}
			assignedTo = &adminID
		case assignedTo == nil && (role == "admin" || role == "manager"):
			assignedTo = &uid
		}

		t := &models.Ticket{
			Title:       in.Title,
			Description: strings.TrimSpace(in.Description),
			Category:    strings.TrimSpace(in.Category),
			Priority:    strings.TrimSpace(in.Priority),
			Status:      "Open",
			AssignedTo:  assignedTo,
			SubmittedBy: submittedBy,
		}

		if err := h.tickets.Create(r.Context(), t); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.notifier.TicketChanged(r.Context(), notify.OpCreate, *t, nil, actingUser(r, h.users))
		utils.JSON(w, http.StatusCreated, t)
	}
}

// PATCH /api/tickets/{id}
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		Priority    *string `json:"priority"`
		Status      *string `json:"status"`
		AssignedTo  *string `json:"assignedTo"`
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

		t, err := h.tickets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		prev := *t

		if in.Title != nil {
			t.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			t.Description = strings.TrimSpace(*in.Description)
		}
		if in.Category != nil {
			t.Category = strings.TrimSpace(*in.Category)
		}
		if in.Priority != nil {
			t.Priority = strings.TrimSpace(*in.Priority)
		}
		if in.Status != nil {
			t.Status = strings.TrimSpace(*in.Status)
		}
		if in.AssignedTo != nil {
			if *in.AssignedTo == "" {
				t.AssignedTo = nil
			} else {
				aid, err := uuid.Parse(*in.AssignedTo)
				if err != nil {
					utils.Error(w, http.StatusBadRequest, "invalid assignedTo")
					return
				}
				t.AssignedTo = &aid
			}
		}

		if err := h.tickets.Update(r.Context(), t); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Fetch the updated ticket with assignee name/email populated via JOIN
		updated, err := h.tickets.Get(r.Context(), t.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if updated == nil {
			utils.Error(w, http.StatusInternalServerError, "ticket not found after update")
			return
		}

		h.notifier.TicketChanged(r.Context(), notify.OpUpdate, *updated, &prev, actingUser(r, h.users))
		utils.JSON(w, http.StatusOK, updated)
	}
}

// POST /api/tickets/{id}/comments
func (h *TicketHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Text string `json:"text"`
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
		in.Text = strings.TrimSpace(in.Text)
		if in.Text == "" {
			utils.Error(w, http.StatusBadRequest, "text is required")
			return
		}

		if _, err := h.tickets.AddComment(r.Context(), id, in.Text); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		t, err := h.tickets.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}
