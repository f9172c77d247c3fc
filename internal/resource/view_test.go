package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

// stubFetcher returns a canned body or error after an optional delay that
// deliberately ignores cancellation.
type stubFetcher struct {
	body     string
	err      error
	delay    time.Duration
	panicMsg string
	calls    atomic.Int32
}

func (s *stubFetcher) Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

func collect(t *testing.T, v *View, ctx context.Context) []FetchState {
	t.Helper()
	ch, err := v.Observe(ctx)
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	var states []FetchState
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				return states
			}
			states = append(states, s)
		case <-timeout:
			t.Fatal("state stream did not close")
		}
	}
}

func newTestView(r Resource, f Fetcher) *View {
	return NewView("http://octofit.test", r, Options{Fetcher: f, Logger: zap.NewNop()})
}

func TestObserve_TransitionsFromLoading(t *testing.T) {
	tests := []struct {
		name       string
		fetcher    *stubFetcher
		wantStatus Status
		wantCount  int
		wantMsg    string
	}{
		{
			name:       "bare array",
			fetcher:    &stubFetcher{body: `[{"id": 1}, {"id": 2}]`},
			wantStatus: StatusLoaded,
			wantCount:  2,
		},
		{
			name:       "envelope with extra fields",
			fetcher:    &stubFetcher{body: `{"count": 1, "next": "x", "results": [{"id": 1}]}`},
			wantStatus: StatusLoaded,
			wantCount:  1,
		},
		{
			name:       "not a list",
			fetcher:    &stubFetcher{body: `{"detail": "odd"}`},
			wantStatus: StatusLoaded,
			wantCount:  0,
		},
		{
			name:       "protocol error",
			fetcher:    &stubFetcher{err: &ProtocolError{StatusCode: 503}},
			wantStatus: StatusFailed,
			wantMsg:    "HTTP error! status: 503",
		},
		{
			name:       "transport error",
			fetcher:    &stubFetcher{err: &TransportError{Err: errors.New("dial tcp: connection refused")}},
			wantStatus: StatusFailed,
			wantMsg:    "dial tcp: connection refused",
		},
		{
			name:       "malformed body",
			fetcher:    &stubFetcher{body: `<!doctype html>`},
			wantStatus: StatusFailed,
		},
		{
			name:       "panicking fetcher",
			fetcher:    &stubFetcher{panicMsg: "boom"},
			wantStatus: StatusFailed,
			wantMsg:    "fetch panicked: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestView(Activities, tt.fetcher)
			states := collect(t, v, context.Background())

			if len(states) != 2 {
				t.Fatalf("got %d states; want Loading then one terminal state", len(states))
			}
			if states[0].Status != StatusLoading {
				t.Errorf("first state = %v; want loading", states[0].Status)
			}
			final := states[1]
			if final.Status != tt.wantStatus {
				t.Fatalf("final status = %v; want %v", final.Status, tt.wantStatus)
			}
			if tt.wantStatus == StatusLoaded {
				if final.Items == nil {
					t.Fatal("Loaded items must never be nil")
				}
				if len(final.Items) != tt.wantCount {
					t.Errorf("len(items) = %d; want %d", len(final.Items), tt.wantCount)
				}
			}
			if tt.wantMsg != "" && final.Message != tt.wantMsg {
				t.Errorf("message = %q; want %q", final.Message, tt.wantMsg)
			}
			if tt.wantStatus == StatusFailed && final.Message == "" {
				t.Error("failed state without a message")
			}
			if got := v.State(); got.Status != final.Status {
				t.Errorf("State() = %v; want %v", got.Status, final.Status)
			}
			if calls := tt.fetcher.calls.Load(); calls != 1 {
				t.Errorf("fetcher called %d times; want exactly 1", calls)
			}
		})
	}
}

func TestObserve_AgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/activities/":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"activity_type":"Run","duration":30,"calories":200,"created_at":"2024-01-01"}]`))
		case "/api/teams/":
			w.Write([]byte(`{"results": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := Options{Fetcher: NewHTTPFetcher(srv.Client()), Logger: zap.NewNop()}

	final := Final(mustObserve(t, NewView(srv.URL, Activities, opts)))
	if final.Status != StatusLoaded || len(final.Items) != 1 {
		t.Fatalf("activities = %+v; want one loaded record", final)
	}
	if final.Items[0]["activity_type"] != "Run" {
		t.Errorf("activity_type = %v; want Run", final.Items[0]["activity_type"])
	}

	final = Final(mustObserve(t, NewView(srv.URL, Teams, opts)))
	if final.Status != StatusLoaded || len(final.Items) != 0 {
		t.Errorf("teams = %+v; want loaded and empty", final)
	}

	final = Final(mustObserve(t, NewView(srv.URL, Users, opts)))
	if final.Status != StatusFailed || final.Message != "HTTP error! status: 404" {
		t.Errorf("users = %+v; want HTTP 404 failure", final)
	}
}

func TestObserve_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	final := Final(mustObserve(t, NewView(url, Leaderboard, Options{Logger: zap.NewNop()})))
	if final.Status != StatusFailed {
		t.Fatalf("status = %v; want failed", final.Status)
	}
	if final.Message == "" || strings.HasPrefix(final.Message, "HTTP error!") {
		t.Errorf("message = %q; want the transport error text", final.Message)
	}
}

func TestDestroy_DiscardsLateResult(t *testing.T) {
	fetcher := &stubFetcher{body: `[{"id": 1}]`, delay: 60 * time.Millisecond}
	v := newTestView(Workouts, fetcher)
	discarded := testutil.ToFloat64(fetchTotal.WithLabelValues(string(Workouts), outcomeDiscarded))

	ch, err := v.Observe(context.Background())
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	v.Destroy()

	var states []FetchState
	for s := range ch {
		states = append(states, s)
	}

	if len(states) != 1 || states[0].Status != StatusLoading {
		t.Fatalf("states = %+v; want only the initial Loading", states)
	}
	if got := v.State(); got.Status != StatusLoading {
		t.Errorf("State() = %v after destroy; want loading", got.Status)
	}
	if got := testutil.ToFloat64(fetchTotal.WithLabelValues(string(Workouts), outcomeDiscarded)); got != discarded+1 {
		t.Errorf("discarded counter = %v; want %v", got, discarded+1)
	}

	v.Destroy()
}

func TestObserve_ContextCancelDestroys(t *testing.T) {
	fetcher := &stubFetcher{body: `[]`, delay: 40 * time.Millisecond}
	v := newTestView(Users, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := v.Observe(ctx)
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	cancel()

	final := Final(ch)
	if final.Status != StatusLoading {
		t.Errorf("final = %v; want loading (result dropped)", final.Status)
	}
}

func TestObserve_OnlyOncePerMount(t *testing.T) {
	v := newTestView(Teams, &stubFetcher{body: `[]`})
	Final(mustObserve(t, v))

	if _, err := v.Observe(context.Background()); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Observe err = %v; want ErrAlreadyMounted", err)
	}
}

func TestObserve_DestroyedBeforeMount(t *testing.T) {
	fetcher := &stubFetcher{body: `[]`}
	v := newTestView(Teams, fetcher)
	v.Destroy()

	states := collect(t, v, context.Background())
	if len(states) != 1 || states[0].Status != StatusLoading {
		t.Errorf("states = %+v; want a single Loading", states)
	}
	if fetcher.calls.Load() != 0 {
		t.Error("destroyed view issued a request")
	}
}

func TestObserve_StrictShape(t *testing.T) {
	v := NewView("http://octofit.test", Leaderboard, Options{
		Fetcher:     &stubFetcher{body: `{"detail": "odd"}`},
		Logger:      zap.NewNop(),
		StrictShape: true,
	})

	final := Final(mustObserve(t, v))
	if final.Status != StatusFailed || final.Message != ErrUnexpectedShape.Error() {
		t.Errorf("final = %+v; want strict shape failure", final)
	}
}

func TestViewsAreIndependent(t *testing.T) {
	ok := newTestView(Activities, &stubFetcher{body: `[{"id": 1}]`, delay: 20 * time.Millisecond})
	bad := newTestView(Teams, &stubFetcher{err: &ProtocolError{StatusCode: 500}})

	okCh := mustObserve(t, ok)
	badCh := mustObserve(t, bad)

	if s := Final(badCh); s.Status != StatusFailed {
		t.Errorf("teams = %v; want failed", s.Status)
	}
	if s := Final(okCh); s.Status != StatusLoaded {
		t.Errorf("activities = %v; want loaded", s.Status)
	}
	if ok.ID() == bad.ID() {
		t.Error("views share an id")
	}
}

func mustObserve(t *testing.T, v *View) <-chan FetchState {
	t.Helper()
	ch, err := v.Observe(context.Background())
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}
	return ch
}
