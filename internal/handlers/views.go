package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/octofit/octofit-views/internal/render"
	"github.com/octofit/octofit-views/internal/resource"
)

// ServeView mounts a fresh view for the request and renders it as a page.
// With ?stream=true the page is sent at once in its loading state and
// follows the view's event stream.
// @Summary Render Resource View
// @Tags Views
// @Produce html
// @Param resource path string true "activities, leaderboard, teams, users or workouts"
// @Param stream query bool false "Send the loading page and stream updates"
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} map[string]string
// @Router /views/{resource} [get]
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resourceParam(w, r)
	if !ok {
		return
	}
	layout, _ := render.LayoutFor(res)

	if r.URL.Query().Get("stream") == "true" {
		page := render.NewPage(layout.Title, res, render.Render(resource.Loading(), layout))
		page.StreamURL = "/views/" + res.String() + "/events"
		h.writePage(w, page)
		return
	}

	state, ok := h.mount(r.Context(), res)
	if !ok {
		return
	}
	h.writePage(w, render.NewPage(layout.Title, res, render.Render(state, layout)))
}

// ServeState mounts a fresh view and returns its terminal FetchState as JSON.
// A failed fetch is still a 200: the failure is part of the view's state.
// @Summary Resource View State
// @Tags Views
// @Produce json
// @Param resource path string true "activities, leaderboard, teams, users or workouts"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /views/{resource}/state [get]
func (h *Handler) ServeState(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resourceParam(w, r)
	if !ok {
		return
	}

	state, ok := h.mount(r.Context(), res)
	if !ok {
		return
	}
	h.jsonResponse(w, http.StatusOK, state)
}

// ServeEvents streams every state of a freshly mounted view as a rendered
// HTML fragment over Server-Sent Events. Disconnecting destroys the view.
// @Summary Resource View Event Stream
// @Tags Views
// @Produce text/event-stream
// @Param resource path string true "activities, leaderboard, teams, users or workouts"
// @Success 200 {string} string "state and done events"
// @Failure 404 {object} map[string]string
// @Router /views/{resource}/events [get]
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	res, ok := h.resourceParam(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.errorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}
	layout, _ := render.LayoutFor(res)

	v := h.newView(res)
	defer v.Destroy()

	states, err := v.Observe(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to mount view", "error", err, "resource", res)
		h.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	id := v.ID().String()
	last := resource.Loading()
	for state := range states {
		last = state

		var buf bytes.Buffer
		if err := render.HTML(&buf, render.Render(state, layout)); err != nil {
			h.logger.Errorw("Failed to render view", "error", err, "resource", res)
			return
		}
		if err := writeEvent(w, id, "state", buf.String()); err != nil {
			return
		}
		flusher.Flush()
	}

	// A destroyed view closes its stream without a terminal state.
	if !last.Terminal() {
		return
	}
	if err := writeEvent(w, id, "done", last.Status.String()); err != nil {
		return
	}
	flusher.Flush()
}

// mount runs one view to completion. It reports false when ctx ended
// before the view settled.
func (h *Handler) mount(ctx context.Context, res resource.Resource) (resource.FetchState, bool) {
	v := h.newView(res)
	defer v.Destroy()

	states, err := v.Observe(ctx)
	if err != nil {
		h.logger.Errorw("Failed to mount view", "error", err, "resource", res)
		return resource.FetchState{}, false
	}

	state := resource.Final(states)
	if !state.Terminal() {
		h.logger.Debugw("Client disconnected before view settled", "resource", res)
		return state, false
	}
	return state, true
}

func (h *Handler) writePage(w http.ResponseWriter, page render.Page) {
	var buf bytes.Buffer
	if err := render.WritePage(&buf, page); err != nil {
		h.logger.Errorw("Failed to render page", "error", err, "title", page.Title)
		h.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writeEvent writes one Server-Sent Event, splitting data across data: lines.
func writeEvent(w http.ResponseWriter, id, event, data string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\nevent: %s\n", id, event)
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	_, err := w.Write([]byte(b.String()))
	return err
}
