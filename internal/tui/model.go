// Package tui is the terminal front-end: one tab per resource, where
// switching tabs destroys the mounted view and mounts a fresh one.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/octofit/octofit-views/internal/render"
	"github.com/octofit/octofit-views/internal/resource"
)

// stateMsg carries one state of the view identified by viewID. ok is false
// once that view's stream is closed.
type stateMsg struct {
	viewID uuid.UUID
	state  resource.FetchState
	ok     bool
}

type Model struct {
	ctx     context.Context
	baseURL string
	opts    resource.Options

	tabs   []resource.Resource
	active int

	view   *resource.View
	states <-chan resource.FetchState
	state  resource.FetchState
}

// New returns a model showing start first. ctx bounds every view it mounts.
func New(ctx context.Context, baseURL string, start resource.Resource, opts resource.Options) *Model {
	m := &Model{
		ctx:     ctx,
		baseURL: baseURL,
		opts:    opts,
		tabs:    resource.All(),
		state:   resource.Loading(),
	}
	for i, r := range m.tabs {
		if r == start {
			m.active = i
		}
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.mount()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "right", "l", "tab":
			m.active = (m.active + 1) % len(m.tabs)
			return m, m.mount()
		case "left", "h", "shift+tab":
			m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
			return m, m.mount()
		case "r":
			return m, m.mount()
		}

	case stateMsg:
		// Late messages from a destroyed view are dropped.
		if m.view == nil || msg.viewID != m.view.ID() || !msg.ok {
			return m, nil
		}
		m.state = msg.state
		return m, waitFor(msg.viewID, m.states)
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder

	for i, r := range m.tabs {
		l, _ := render.LayoutFor(r)
		if i == m.active {
			b.WriteString("[" + l.Title + "]")
		} else {
			b.WriteString(" " + l.Title + " ")
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	n, err := render.State(m.state, m.Active())
	if err != nil {
		b.WriteString(err.Error() + "\n")
	} else {
		b.WriteString(render.Text(n))
	}

	b.WriteString("\n←/→ switch view • r reload • q quit\n")
	return b.String()
}

// Active returns the resource of the selected tab.
func (m *Model) Active() resource.Resource {
	return m.tabs[m.active]
}

// Close destroys the mounted view.
func (m *Model) Close() {
	if m.view != nil {
		m.view.Destroy()
	}
}

// mount destroys the current view, if any, and mounts a fresh one for the
// active tab. There is no cache: every mount fetches.
func (m *Model) mount() tea.Cmd {
	m.Close()

	v := resource.NewView(m.baseURL, m.Active(), m.opts)
	states, err := v.Observe(m.ctx)
	if err != nil {
		m.view = nil
		m.state = resource.Failed(err.Error())
		return nil
	}

	m.view = v
	m.states = states
	m.state = resource.Loading()
	return waitFor(v.ID(), states)
}

func waitFor(id uuid.UUID, states <-chan resource.FetchState) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-states
		return stateMsg{viewID: id, state: s, ok: ok}
	}
}
