package render

import (
	"strconv"

	"github.com/octofit/octofit-views/internal/resource"
)

// Style selects the shape of a loaded view.
type Style int

const (
	StyleTable Style = iota
	StyleCards
)

// CardSpec maps fields onto the parts of a card.
type CardSpec struct {
	Title   Field
	Badge   *Field
	Body    Field
	Tags    []Field
	Details []Field
}

// Layout is the declarative description of one resource view.
type Layout struct {
	Resource   resource.Resource
	Title      string
	Noun       string
	CountLabel string
	CountTone  Tone
	Style      Style
	Columns    []Field
	Card       CardSpec
	Empty      string
	// Highlight marks rows by position.
	Highlight func(index int) bool
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return strconv.Itoa(rank)
	}
}

func difficultyTone(level string) Tone {
	switch level {
	case "Beginner":
		return ToneSuccess
	case "Intermediate":
		return ToneWarning
	case "Advanced":
		return ToneDanger
	default:
		return ToneSecondary
	}
}

func fitnessTone(level string) Tone {
	switch level {
	case "Advanced":
		return ToneSuccess
	case "Intermediate":
		return ToneWarning
	default:
		return ToneInfo
	}
}

// Key chains list the front-end names first, then the names the octofit
// backend serializers use for the same value.
var layouts = map[resource.Resource]Layout{
	resource.Activities: {
		Resource:   resource.Activities,
		Title:      "🏃 Activities",
		Noun:       "activities",
		CountLabel: "Total",
		CountTone:  TonePrimary,
		Style:      StyleTable,
		Columns: []Field{
			{Label: "User", Keys: []string{"user_name", "user", "user_id"}, Default: "N/A", Strong: true},
			{Label: "Type", Keys: []string{"activity_type"}, Default: "N/A", Badge: true, Tone: ToneInfo},
			{Label: "Duration (min)", Keys: []string{"duration"}, Default: "0", Format: FormatNumber},
			{Label: "Distance (km)", Keys: []string{"distance"}, Default: "0", Format: FormatNumber},
			{Label: "Calories", Keys: []string{"calories", "calories_burned"}, Default: "0", Format: FormatNumber},
			{Label: "Date", Keys: []string{"created_at", "date"}, Default: "N/A", Format: FormatDate},
		},
		Empty: "No activities found",
	},
	resource.Leaderboard: {
		Resource:   resource.Leaderboard,
		Title:      "🏆 Leaderboard",
		Noun:       "leaderboard",
		CountLabel: "Competitors",
		CountTone:  ToneSuccess,
		Style:      StyleTable,
		Columns: []Field{
			{Label: "Rank", Derive: func(i int) string { return medal(i + 1) }},
			{Label: "User", Keys: []string{"user_name", "user", "user_id"}, Default: "N/A", Strong: true},
			{Label: "Team", Keys: []string{"team_name", "team", "team_id"}, Default: "N/A", Badge: true, Tone: ToneSecondary},
			{Label: "Points", Keys: []string{"total_points", "total_calories"}, Default: "0", Format: FormatNumber, Suffix: " pts", Badge: true, Tone: TonePrimary},
			{Label: "Activities", Keys: []string{"activity_count", "total_activities"}, Default: "0", Format: FormatNumber},
		},
		Empty:     "No leaderboard data found",
		Highlight: func(i int) bool { return i < 3 },
	},
	resource.Teams: {
		Resource:   resource.Teams,
		Title:      "👥 Teams",
		Noun:       "teams",
		CountLabel: "Teams",
		CountTone:  TonePrimary,
		Style:      StyleCards,
		Card: CardSpec{
			Title: Field{Keys: []string{"name"}, Default: "N/A", Prefix: "👥 "},
			Body:  Field{Keys: []string{"description"}, Default: "No description available"},
			Details: []Field{
				{Label: "Members", Keys: []string{"member_count"}, Default: "0", Format: FormatNumber, Badge: true, Tone: ToneInfo},
				{Label: "Created", Keys: []string{"created_at"}, Default: "N/A", Format: FormatDate},
			},
		},
		Empty: "No teams found",
	},
	resource.Users: {
		Resource:   resource.Users,
		Title:      "👤 Users",
		Noun:       "users",
		CountLabel: "Users",
		CountTone:  TonePrimary,
		Style:      StyleTable,
		Columns: []Field{
			{Label: "Username", Keys: []string{"username", "name"}, Default: "N/A", Strong: true},
			{Label: "Email", Keys: []string{"email"}, Default: "N/A"},
			{Label: "Team", Keys: []string{"team_name", "team", "team_id"}, Default: "No team", Badge: true, Tone: ToneSecondary, DefaultTone: ToneMuted},
			{Label: "Fitness Level", Keys: []string{"fitness_level"}, Default: "N/A", Badge: true, BadgeTone: fitnessTone},
			{Label: "Date Joined", Keys: []string{"date_joined"}, Default: "N/A", Format: FormatDate},
		},
		Empty: "No users found",
	},
	resource.Workouts: {
		Resource:   resource.Workouts,
		Title:      "💪 Workout Suggestions",
		Noun:       "workouts",
		CountLabel: "Workouts",
		CountTone:  TonePrimary,
		Style:      StyleCards,
		Card: CardSpec{
			Title: Field{Keys: []string{"name"}, Default: "N/A", Prefix: "🏋️ "},
			Badge: &Field{Keys: []string{"difficulty_level", "difficulty"}, Default: "N/A", Badge: true, BadgeTone: difficultyTone},
			Body:  Field{Keys: []string{"description"}, Default: "No description available"},
			Tags: []Field{
				{Label: "Type", Keys: []string{"workout_type", "category"}, Default: "N/A", Badge: true, Tone: ToneInfo},
			},
			Details: []Field{
				{Label: "Duration", Keys: []string{"duration"}, Default: "0", Format: FormatNumber, Prefix: "⏱️ ", Suffix: " min", Strong: true},
				{Label: "Calories", Keys: []string{"calories_burned", "calories"}, Default: "0", Format: FormatNumber, Prefix: "🔥 ", Suffix: " cal", Strong: true},
			},
		},
		Empty: "No workouts found",
	},
}

// LayoutFor returns the layout of r and whether one exists.
func LayoutFor(r resource.Resource) (Layout, bool) {
	l, ok := layouts[r]
	return l, ok
}
