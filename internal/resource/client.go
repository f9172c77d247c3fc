package resource

import (
	"context"
	"io"
	"net/http"
)

// Fetcher retrieves the raw body of one endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error)
}

// HTTPFetcher issues plain GET requests: no body, no custom headers, no auth.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher wraps client. A nil client gets a default one without a
// timeout; a hung request is bounded only by the view's lifetime.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(endpoint), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &ProtocolError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}
