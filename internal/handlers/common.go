package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/octofit/octofit-views/internal/resource"
)

// Health check endpoint
// @Summary Health Check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// resourceParam resolves the {resource} URL parameter, writing a 404 when it
// names no known view.
func (h *Handler) resourceParam(w http.ResponseWriter, r *http.Request) (resource.Resource, bool) {
	res, err := resource.Parse(chi.URLParam(r, "resource"))
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return res, true
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}
