// Package render turns a FetchState into a display tree and serializes that
// tree as HTML or plain text. Rendering is a pure function of its inputs.
package render

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/octofit/octofit-views/internal/resource"
)

// Format selects how a resolved value is displayed.
type Format int

const (
	FormatText Format = iota
	FormatNumber
	FormatDate
)

// Tone is the visual emphasis of a cell. The zero value is plain text.
type Tone string

const (
	TonePlain     Tone = ""
	ToneMuted     Tone = "muted"
	TonePrimary   Tone = "primary"
	ToneSecondary Tone = "secondary"
	ToneInfo      Tone = "info"
	ToneSuccess   Tone = "success"
	ToneWarning   Tone = "warning"
	ToneDanger    Tone = "danger"
)

// Field is one displayed value with its default rule. Keys is a fallback
// chain: the first key holding a truthy value wins, otherwise Default shows.
type Field struct {
	Label   string
	Keys    []string
	Default string
	Format  Format
	Prefix  string
	Suffix  string
	Strong  bool
	// Badge renders the value as a badge; BadgeTone picks its tone from the
	// displayed text and falls back to Tone.
	Badge     bool
	Tone      Tone
	BadgeTone func(text string) Tone
	// DefaultTone, when set, replaces the badge with plain text of this tone
	// for defaulted values.
	DefaultTone Tone
	// Derive computes the value from the row position instead of Keys.
	Derive func(index int) string
}

// Cell is a resolved field ready for a renderer.
type Cell struct {
	Text   string
	Tone   Tone
	Badge  bool
	Strong bool
}

// Resolve returns the display text for rec and whether Default was used.
func (f Field) Resolve(rec resource.Record) (text string, defaulted bool) {
	for _, key := range f.Keys {
		v, ok := rec[key]
		if !ok || !resource.Truthy(v) {
			continue
		}
		if s, ok := format(v, f.Format); ok {
			return s, false
		}
		break
	}
	return f.Default, true
}

// Cell resolves the field for the item at index.
func (f Field) Cell(index int, rec resource.Record) Cell {
	var text string
	defaulted := false
	if f.Derive != nil {
		text = f.Derive(index)
	} else {
		text, defaulted = f.Resolve(rec)
	}

	if defaulted && f.DefaultTone != TonePlain {
		return Cell{Text: text, Tone: f.DefaultTone}
	}

	c := Cell{Text: f.Prefix + text + f.Suffix, Strong: f.Strong, Badge: f.Badge, Tone: f.Tone}
	if f.Badge && f.BadgeTone != nil {
		if tone := f.BadgeTone(text); tone != TonePlain {
			c.Tone = tone
		}
	}
	return c
}

func format(v any, f Format) (string, bool) {
	if f == FormatDate {
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		return formatDate(s)
	}

	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// formatDate shows a timestamp as M/D/YYYY in the timestamp's own offset.
func formatDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("1/2/2006"), true
		}
	}
	return "", false
}
