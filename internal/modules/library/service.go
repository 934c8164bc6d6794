package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sushilduseja/saarthi/internal/config"
	"go.uber.org/zap"
)

const maxCatalogBytes = 16 << 20

// Service loads the summary catalog document and serves it for the process
// lifetime. The catalog is static, so a successful load is cached and repeated
// calls are idempotent; a failed load is not cached and the next call retries.
type Service struct {
	url    string
	client *http.Client
	logger *zap.Logger

	mu      sync.RWMutex
	catalog []BookSummary
	loaded  bool
}

func NewService(cfg config.ContentConfig, logger *zap.Logger) *Service {
	return &Service{
		url: cfg.CatalogURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Load returns the ordered catalog, fetching it on first use.
func (s *Service) Load(ctx context.Context) ([]BookSummary, error) {
	s.mu.RLock()
	if s.loaded {
		catalog := s.catalog
		s.mu.RUnlock()
		return catalog, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.catalog, nil
	}

	catalog, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.catalog = catalog
	s.loaded = true
	s.logger.Info("catalog loaded", zap.Int("summaries", len(catalog)))
	return catalog, nil
}

// GetByID returns the summary with the given id, or nil when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*BookSummary, error) {
	catalog, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], nil
		}
	}
	return nil, nil
}

func (s *Service) fetch(ctx context.Context) ([]BookSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: s.url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, &FetchError{URL: s.url, Err: err}
	}

	var catalog []BookSummary
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, &ParseError{Err: err}
	}
	for i := range catalog {
		if catalog[i].ID == "" {
			return nil, &ParseError{Err: fmt.Errorf("summary at index %d has no id", i)}
		}
		// A cover that is not an absolute http(s) URL is treated as missing
		// so clients render their placeholder instead of a broken image.
		if !ValidCoverImage(catalog[i].CoverImage) {
			catalog[i].CoverImage = ""
		}
	}
	return catalog, nil
}
