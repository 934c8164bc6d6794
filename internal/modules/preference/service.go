package preference

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sushilduseja/saarthi/internal/modules/library"
	"go.uber.org/zap"
)

// Storage keys mirror the web client's local-storage keys.
const (
	KeyLanguage  = "saarthi-language"
	KeyBookmarks = "saarthi-bookmarks"
)

// Change describes one preference write, delivered to subscribers so that
// concurrently open views of the same client converge without polling.
type Change struct {
	ClientID string `json:"clientId"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// Service is the durable per-client preference store. Reads degrade to the
// supplied default when the backend is unreadable; writes that fail to
// persist are logged and swallowed, with the in-memory overlay holding the
// value so the current view stays consistent. The overlay entry is dropped
// once a persist succeeds, so reads go back to the durable store and pick up
// writes made by other instances.
type Service struct {
	kv     KV
	logger *zap.Logger

	mu      sync.RWMutex
	overlay map[string]string
	subs    []func(Change)
}

func NewService(kv KV, logger *zap.Logger) *Service {
	return &Service{
		kv:      kv,
		logger:  logger,
		overlay: make(map[string]string),
	}
}

// Subscribe registers fn to be called on every successful Set.
func (s *Service) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Get returns the stored value for (clientID, key), or def when the value is
// absent or the backend is unreadable.
func (s *Service) Get(ctx context.Context, clientID, key, def string) string {
	s.mu.RLock()
	if v, ok := s.overlay[overlayKey(clientID, key)]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	v, ok, err := s.kv.Get(ctx, clientID, key)
	if err != nil {
		s.logger.Warn("preference read failed, using default",
			zap.String("key", key), zap.Error(err))
		return def
	}
	if !ok {
		return def
	}
	return v
}

// Set writes the value, persists it, and notifies subscribers.
func (s *Service) Set(ctx context.Context, clientID, key, value string) {
	s.mu.Lock()
	s.overlay[overlayKey(clientID, key)] = value
	subs := make([]func(Change), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if err := s.kv.Set(ctx, clientID, key, value); err != nil {
		s.logger.Warn("preference write failed, keeping in-memory value",
			zap.String("key", key), zap.Error(err))
	} else {
		s.mu.Lock()
		delete(s.overlay, overlayKey(clientID, key))
		s.mu.Unlock()
	}

	change := Change{ClientID: clientID, Key: key, Value: value}
	for _, fn := range subs {
		fn(change)
	}
}

// GetLanguage returns the client's UI language, defaulting to Marathi.
// Corrupted stored values also degrade to the default.
func (s *Service) GetLanguage(ctx context.Context, clientID string) library.Language {
	raw := s.Get(ctx, clientID, KeyLanguage, string(library.DefaultLanguage))

	var lang library.Language
	if err := json.Unmarshal([]byte(raw), &lang); err != nil {
		// Tolerate values stored without JSON quoting.
		lang = library.Language(raw)
	}
	if !library.Supported(lang) {
		return library.DefaultLanguage
	}
	return lang
}

// SetLanguage stores the client's UI language.
func (s *Service) SetLanguage(ctx context.Context, clientID string, lang library.Language) {
	encoded, _ := json.Marshal(lang)
	s.Set(ctx, clientID, KeyLanguage, string(encoded))
}

func overlayKey(clientID, key string) string {
	return clientID + "\x00" + key
}
