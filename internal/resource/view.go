package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a View.
type Options struct {
	Fetcher Fetcher
	Logger  *zap.Logger
	// StrictShape turns a payload without a list into a Failed state
	// instead of an empty Loaded one.
	StrictShape bool
}

// View owns the FetchState of one mounted resource view. It issues at most
// one request per mount and never changes state after Destroy.
type View struct {
	id       uuid.UUID
	resource Resource
	endpoint Endpoint
	fetcher  Fetcher
	logger   *zap.SugaredLogger
	strict   bool

	mu        sync.Mutex
	state     FetchState
	mounted   bool
	destroyed bool
	cancel    context.CancelFunc
}

// NewView creates an unmounted view for r under baseURL.
func NewView(baseURL string, r Resource, opts Options) *View {
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	id := uuid.New()
	return &View{
		id:       id,
		resource: r,
		endpoint: NewEndpoint(baseURL, r),
		fetcher:  opts.Fetcher,
		logger:   opts.Logger.Sugar().With("resource", string(r), "view_id", id.String()),
		strict:   opts.StrictShape,
		state:    Loading(),
	}
}

func (v *View) ID() uuid.UUID { return v.id }

func (v *View) Resource() Resource { return v.resource }

func (v *View) Endpoint() Endpoint { return v.endpoint }

// State returns the current state.
func (v *View) State() FetchState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Observe mounts the view and returns its state stream: Loading first, then at
// most one terminal state. The channel is closed once the view settles or is
// destroyed; a destroyed view closes it without a terminal state. Cancelling
// ctx destroys the view.
func (v *View) Observe(ctx context.Context) (<-chan FetchState, error) {
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return nil, ErrAlreadyMounted
	}
	v.mounted = true

	states := make(chan FetchState, 2)
	states <- v.state
	if v.destroyed {
		v.mu.Unlock()
		close(states)
		return states, nil
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()

	viewsMounted.Inc()
	v.logger.Debugw("Fetching from API endpoint", "endpoint", v.endpoint.String())

	go v.run(fetchCtx, states)
	return states, nil
}

// Destroy unmounts the view. A request still in flight is cancelled and its
// result, if it arrives anyway, is dropped. Safe to call more than once.
func (v *View) Destroy() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.destroyed {
		return
	}
	v.destroyed = true
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *View) run(ctx context.Context, states chan<- FetchState) {
	start := time.Now()
	defer close(states)
	defer viewsMounted.Dec()

	next, err := v.fetch(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.destroyed || ctx.Err() != nil {
		v.destroyed = true
		fetchTotal.WithLabelValues(string(v.resource), outcomeDiscarded).Inc()
		v.logger.Debugw("Discarding late result for destroyed view")
		return
	}

	v.state = next
	v.cancel()
	states <- next

	fetchDuration.WithLabelValues(string(v.resource)).Observe(time.Since(start).Seconds())
	if err != nil {
		fetchTotal.WithLabelValues(string(v.resource), outcomeFailed).Inc()
		fields := []interface{}{"endpoint", v.endpoint.String(), "error", err}
		var perr *ProtocolError
		if errors.As(err, &perr) {
			fields = append(fields, "status", perr.StatusCode)
		}
		v.logger.Errorw("Error fetching resource", fields...)
		return
	}
	fetchTotal.WithLabelValues(string(v.resource), outcomeLoaded).Inc()
	v.logger.Infow("Fetched resource", "count", len(next.Items))
}

func (v *View) fetch(ctx context.Context) (state FetchState, err error) {
	// A misbehaving Fetcher must not take the process down with it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
			state = Failed(err.Error())
		}
	}()

	body, err := v.fetcher.Fetch(ctx, v.endpoint)
	if err != nil {
		return Failed(err.Error()), err
	}

	payload, err := Decode(body)
	if err != nil {
		terr := &TransportError{Err: err}
		return Failed(terr.Error()), terr
	}

	items, ok := Normalize(payload)
	if !ok {
		if v.strict {
			return Failed(ErrUnexpectedShape.Error()), ErrUnexpectedShape
		}
		v.logger.Warnw("Response is not a list, rendering as empty")
	}
	return Loaded(items), nil
}

// Final drains a state stream and returns the last state received.
func Final(states <-chan FetchState) FetchState {
	last := Loading()
	for s := range states {
		last = s
	}
	return last
}
