package handlers

import (
	"go.uber.org/zap"

	"github.com/octofit/octofit-views/internal/resource"
)

type Config struct {
	// BaseURL is the root of the octofit REST API; views fetch {BaseURL}/api/{resource}/.
	BaseURL     string
	Fetcher     resource.Fetcher
	Logger      *zap.Logger
	StrictShape bool
}

type Handler struct {
	baseURL string
	fetcher resource.Fetcher
	zlog    *zap.Logger
	logger  *zap.SugaredLogger
	strict  bool
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = resource.NewHTTPFetcher(nil)
	}
	return &Handler{
		baseURL: cfg.BaseURL,
		fetcher: cfg.Fetcher,
		zlog:    cfg.Logger,
		logger:  cfg.Logger.Sugar(),
		strict:  cfg.StrictShape,
	}
}

// newView creates a fresh, unmounted view. Every request gets its own view,
// so nothing is shared or cached between requests.
func (h *Handler) newView(r resource.Resource) *resource.View {
	return resource.NewView(h.baseURL, r, resource.Options{
		Fetcher:     h.fetcher,
		Logger:      h.zlog,
		StrictShape: h.strict,
	})
}
