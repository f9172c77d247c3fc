// Package resource implements the fetch/normalize lifecycle shared by every
// octofit view: endpoint construction, the three-way FetchState, payload
// normalization and the mountable View that drives a single request.
package resource

import (
	"fmt"
	"strings"
)

// Resource names one REST collection exposed by the octofit API.
type Resource string

const (
	Activities  Resource = "activities"
	Leaderboard Resource = "leaderboard"
	Teams       Resource = "teams"
	Users       Resource = "users"
	Workouts    Resource = "workouts"
)

// navigation order
var all = []Resource{Activities, Leaderboard, Teams, Users, Workouts}

// All returns every resource in navigation order.
func All() []Resource {
	out := make([]Resource, len(all))
	copy(out, all)
	return out
}

// Parse resolves a user-supplied resource name.
func Parse(s string) (Resource, error) {
	name := Resource(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range all {
		if r == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown resource: %q", s)
}

func (r Resource) String() string { return string(r) }

// Endpoint is the fully-qualified collection URL used by one view.
type Endpoint string

// NewEndpoint builds {base}/api/{resource}/. Trailing slashes on base are ignored.
func NewEndpoint(baseURL string, r Resource) Endpoint {
	return Endpoint(strings.TrimRight(baseURL, "/") + "/api/" + string(r) + "/")
}

func (e Endpoint) String() string { return string(e) }
