package handlers

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/octofit/octofit-views/internal/render"
	"github.com/octofit/octofit-views/internal/resource"
)

// Dashboard mounts every view concurrently and renders them on one page in
// navigation order. Each view settles on its own; one failing does not
// affect the others.
// @Summary Dashboard
// @Tags Views
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	all := resource.All()
	nodes := make([]render.Node, len(all))

	g, ctx := errgroup.WithContext(r.Context())
	for i, res := range all {
		i, res := i, res
		g.Go(func() error {
			layout, _ := render.LayoutFor(res)
			state, ok := h.mount(ctx, res)
			if !ok {
				state = resource.Loading()
			}
			nodes[i] = render.Render(state, layout)
			return nil
		})
	}
	g.Wait()

	if r.Context().Err() != nil {
		return
	}
	h.writePage(w, render.NewPage("OctoFit Tracker", "", nodes...))
}
