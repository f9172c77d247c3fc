package render

import (
	"encoding/json"
	"testing"

	"github.com/octofit/octofit-views/internal/resource"
)

func TestFieldResolve(t *testing.T) {
	user := Field{Keys: []string{"user_name", "user", "user_id"}, Default: "N/A"}
	num := Field{Keys: []string{"duration"}, Default: "0", Format: FormatNumber}
	date := Field{Keys: []string{"created_at"}, Default: "N/A", Format: FormatDate}

	tests := []struct {
		name      string
		field     Field
		rec       resource.Record
		want      string
		defaulted bool
	}{
		{"first key wins", user, resource.Record{"user_name": "ana", "user": "x"}, "ana", false},
		{"falls through empty string", user, resource.Record{"user_name": "", "user": "bo"}, "bo", false},
		{"falls through null", user, resource.Record{"user_name": nil, "user_id": "u9"}, "u9", false},
		{"all missing", user, resource.Record{}, "N/A", true},
		{"nil record", user, nil, "N/A", true},
		{"number kept verbatim", num, resource.Record{"duration": json.Number("30")}, "30", false},
		{"decimal", num, resource.Record{"duration": json.Number("12.50")}, "12.50", false},
		{"zero is a default", num, resource.Record{"duration": json.Number("0")}, "0", true},
		{"false is a default", num, resource.Record{"duration": false}, "0", true},
		{"string number", num, resource.Record{"duration": "45"}, "45", false},
		{"float64", num, resource.Record{"duration": 7.25}, "7.25", false},
		{"nested object", user, resource.Record{"user": map[string]any{"id": json.Number("1")}}, `{"id":1}`, false},
		{"date only", date, resource.Record{"created_at": "2024-01-01"}, "1/1/2024", false},
		{"rfc3339", date, resource.Record{"created_at": "2023-11-30T23:15:00Z"}, "11/30/2023", false},
		{"rfc3339 offset", date, resource.Record{"created_at": "2023-11-30T23:15:00-05:00"}, "11/30/2023", false},
		{"microseconds", date, resource.Record{"created_at": "2024-05-02T07:08:09.123456"}, "5/2/2024", false},
		{"unparseable date", date, resource.Record{"created_at": "yesterday"}, "N/A", true},
		{"numeric date", date, resource.Record{"created_at": json.Number("1700000000")}, "N/A", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defaulted := tt.field.Resolve(tt.rec)
			if got != tt.want || defaulted != tt.defaulted {
				t.Errorf("Resolve = (%q, %v); want (%q, %v)", got, defaulted, tt.want, tt.defaulted)
			}
		})
	}
}

func TestFieldCell(t *testing.T) {
	points := Field{Keys: []string{"total_points"}, Default: "0", Suffix: " pts", Badge: true, Tone: TonePrimary}
	c := points.Cell(0, resource.Record{})
	if c.Text != "0 pts" || !c.Badge || c.Tone != TonePrimary {
		t.Errorf("defaulted points = %+v", c)
	}

	rank := Field{Derive: func(i int) string { return medal(i + 1) }}
	for i, want := range []string{"🥇", "🥈", "🥉", "4", "10"} {
		idx := i
		if i == 4 {
			idx = 9
		}
		if got := rank.Cell(idx, nil).Text; got != want {
			t.Errorf("rank at %d = %q; want %q", idx, got, want)
		}
	}

	level := Field{Keys: []string{"difficulty_level"}, Default: "N/A", Badge: true, BadgeTone: difficultyTone}
	for in, tone := range map[string]Tone{"Beginner": ToneSuccess, "Intermediate": ToneWarning, "Advanced": ToneDanger, "Expert": ToneSecondary} {
		if got := level.Cell(0, resource.Record{"difficulty_level": in}).Tone; got != tone {
			t.Errorf("difficulty %s tone = %q; want %q", in, got, tone)
		}
	}
}
