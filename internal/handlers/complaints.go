package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campuscare-admin/internal/models"
	"campuscare-admin/internal/query"
	"campuscare-admin/internal/reconcile"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// ComplaintHandler serves the REST surface, which is backed by a single
// application-level controller.
type ComplaintHandler struct {
	ctrl *reconcile.Controller
	log  *logrus.Logger
}

func NewComplaintHandler(ctrl *reconcile.Controller, log *logrus.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		ctrl: ctrl,
		log:  log,
	}
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status"`
	Notes  string        `json:"notes"`
}

// --- GET /api/dashboard ---

func (h *ComplaintHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	state := h.ctrl.State()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"isLive":  state.IsLive,
		"loading": state.Loading,
		"stats":   query.Aggregate(state.Records),
	})
}

// --- GET /api/complaints ---

func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := query.Criteria{
		Status:   models.Status(q.Get("status")),
		Category: models.Category(q.Get("category")),
		Search:   q.Get("search"),
	}
	if criteria.Status != "" && !criteria.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}
	if criteria.Category != "" && !criteria.Category.Valid() {
		writeError(w, http.StatusBadRequest, "invalid category filter")
		return
	}

	state := h.ctrl.State()
	filtered := query.Filter(state.Records, criteria)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"isLive":     state.IsLive,
		"loading":    state.Loading,
		"complaints": filtered,
		"total":      len(state.Records),
	})
}

// --- GET /api/complaints/{id} ---

func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.ctrl.Lookup(r.Context(), id)
	if err != nil {
		if !errors.Is(err, reconcile.ErrNotFound) {
			h.log.WithError(err).WithField("complaint_id", id).Error("complaint lookup failed")
		}
		status, msg := commandError(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- PATCH /api/complaints/{id}/status ---

func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	liveBefore := h.ctrl.State().IsLive
	if err := h.ctrl.UpdateStatus(r.Context(), id, req.Status, req.Notes); err != nil {
		h.log.WithError(err).WithField("complaint_id", id).Warn("status update rejected")
		status, msg := commandError(err)
		writeError(w, status, msg)
		return
	}

	resp := map[string]interface{}{
		"message": "status updated",
		"isLive":  liveBefore,
	}
	if c, ok := query.Find(h.ctrl.State().Records, id); ok {
		resp["complaint"] = c
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- POST /api/complaints/sample ---

func (h *ComplaintHandler) InsertSample(w http.ResponseWriter, r *http.Request) {
	sample, err := h.ctrl.InsertSample(r.Context())
	if err != nil {
		h.log.WithError(err).Warn("sample insert failed")
		status, msg := commandError(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Sample complaint added! It will appear in the list.",
		"complaint": sample,
	})
}

// --- GET /api/meta ---

func Meta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": models.Categories,
		"statuses":   models.Statuses,
		"priorities": models.Priorities,
	})
}
