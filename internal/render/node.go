package render

import (
	"fmt"

	"github.com/octofit/octofit-views/internal/resource"
)

// NodeKind is the branch of the rendering contract a node represents.
type NodeKind int

const (
	NodeLoading NodeKind = iota
	NodeError
	NodeEmpty
	NodeTable
	NodeCards
)

func (k NodeKind) String() string {
	switch k {
	case NodeLoading:
		return "loading"
	case NodeError:
		return "error"
	case NodeEmpty:
		return "empty"
	case NodeTable:
		return "table"
	case NodeCards:
		return "cards"
	default:
		return "unknown"
	}
}

// Node is the display tree of one view.
type Node struct {
	Kind      NodeKind
	Resource  resource.Resource
	Title     string
	Count     string
	CountTone Tone
	// Message is the spinner caption, the error text or the empty placeholder.
	Message string
	// Style is kept on empty nodes so the placeholder sits in the right frame.
	Style   Style
	Headers []string
	Rows    []Row
	Cards   []Card
}

type Row struct {
	Cells     []Cell
	Highlight bool
}

type Card struct {
	Title   Cell
	Badge   *Cell
	Body    Cell
	Tags    []Cell
	Details []Detail
}

type Detail struct {
	Label string
	Value Cell
}

func (n Node) IsLoading() bool { return n.Kind == NodeLoading }
func (n Node) IsError() bool   { return n.Kind == NodeError }
func (n Node) IsEmpty() bool   { return n.Kind == NodeEmpty }
func (n Node) IsTable() bool   { return n.Kind == NodeTable }
func (n Node) IsCards() bool   { return n.Kind == NodeCards }

// InTable reports whether n is drawn inside a table frame, empty or not.
func (n Node) InTable() bool {
	return n.Kind == NodeTable || (n.Kind == NodeEmpty && n.Style == StyleTable)
}

// InCards reports whether n is drawn inside a card grid, empty or not.
func (n Node) InCards() bool {
	return n.Kind == NodeCards || (n.Kind == NodeEmpty && n.Style == StyleCards)
}

// Render maps a FetchState onto the display tree described by l.
func Render(state resource.FetchState, l Layout) Node {
	switch state.Status {
	case resource.StatusFailed:
		return Node{Kind: NodeError, Resource: l.Resource, Title: "Error!", Message: state.Message}
	case resource.StatusLoaded:
		// handled below
	default:
		return Node{Kind: NodeLoading, Resource: l.Resource, Message: fmt.Sprintf("Loading %s...", l.Noun)}
	}

	n := Node{
		Resource:  l.Resource,
		Title:     l.Title,
		Count:     fmt.Sprintf("%d %s", len(state.Items), l.CountLabel),
		CountTone: l.CountTone,
		Style:     l.Style,
	}
	if l.Style == StyleTable {
		n.Headers = make([]string, len(l.Columns))
		for i, col := range l.Columns {
			n.Headers[i] = col.Label
		}
	}

	if len(state.Items) == 0 {
		n.Kind = NodeEmpty
		n.Message = l.Empty
		return n
	}

	switch l.Style {
	case StyleCards:
		n.Kind = NodeCards
		n.Cards = make([]Card, len(state.Items))
		for i, rec := range state.Items {
			n.Cards[i] = renderCard(i, rec, l.Card)
		}
	default:
		n.Kind = NodeTable
		n.Rows = make([]Row, len(state.Items))
		for i, rec := range state.Items {
			row := Row{Cells: make([]Cell, len(l.Columns))}
			for j, col := range l.Columns {
				row.Cells[j] = col.Cell(i, rec)
			}
			if l.Highlight != nil {
				row.Highlight = l.Highlight(i)
			}
			n.Rows[i] = row
		}
	}
	return n
}

func renderCard(i int, rec resource.Record, spec CardSpec) Card {
	c := Card{
		Title: spec.Title.Cell(i, rec),
		Body:  spec.Body.Cell(i, rec),
	}
	if spec.Badge != nil {
		badge := spec.Badge.Cell(i, rec)
		c.Badge = &badge
	}
	for _, f := range spec.Tags {
		c.Tags = append(c.Tags, f.Cell(i, rec))
	}
	for _, f := range spec.Details {
		c.Details = append(c.Details, Detail{Label: f.Label, Value: f.Cell(i, rec)})
	}
	return c
}

// State renders state for resource r with its registered layout.
func State(state resource.FetchState, r resource.Resource) (Node, error) {
	l, ok := LayoutFor(r)
	if !ok {
		return Node{}, fmt.Errorf("no layout for resource %q", r)
	}
	return Render(state, l), nil
}
