package resource

import "encoding/json"

// Status tags the variant held by a FetchState.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState is the lifecycle state owned by one view instance.
// Items is only meaningful when Loaded, Message only when Failed.
type FetchState struct {
	Status  Status
	Items   []Record
	Message string
}

// Loading is the initial state of every mount.
func Loading() FetchState {
	return FetchState{Status: StatusLoading}
}

// Loaded holds a normalized item list. A nil list is stored as empty.
func Loaded(items []Record) FetchState {
	if items == nil {
		items = []Record{}
	}
	return FetchState{Status: StatusLoaded, Items: items}
}

// Failed holds the user-visible error message.
func Failed(message string) FetchState {
	return FetchState{Status: StatusFailed, Message: message}
}

// Terminal reports whether no further transition can follow.
func (s FetchState) Terminal() bool {
	return s.Status != StatusLoading
}

func (s FetchState) MarshalJSON() ([]byte, error) {
	out := struct {
		Status  string   `json:"status"`
		Items   []Record `json:"items,omitempty"`
		Count   *int     `json:"count,omitempty"`
		Message string   `json:"message,omitempty"`
	}{Status: s.Status.String(), Message: s.Message}

	if s.Status == StatusLoaded {
		items := s.Items
		if items == nil {
			items = []Record{}
		}
		n := len(items)
		out.Items = items
		out.Count = &n
	}
	return json.Marshal(out)
}
