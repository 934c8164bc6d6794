package audio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Namespace separates audio rendered for different source texts in the
// bucket.
type Namespace string

const (
	NamespaceSummary     Namespace = "audio_summaries"
	NamespaceChatMessage Namespace = "chat_audio"
)

func (n Namespace) key(id string) string {
	return fmt.Sprintf("%s/%s.mp3", n, id)
}

// Service renders narration on demand and caches it in the object store.
// Concurrent requests for the same id may both synthesize; the second write
// overwrites the first with identical content, so no lock is held.
type Service struct {
	store  ObjectStore
	synth  Synthesizer
	ttl    time.Duration
	logger *zap.Logger
}

// NewService wires the narration pipeline. store and synth may be nil when
// the bucket or speech provider is unconfigured; Narrate then fails fast
// with ErrNotConfigured before any network call.
func NewService(store ObjectStore, synth Synthesizer, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{store: store, synth: synth, ttl: ttl, logger: logger}
}

// Configured reports whether narration can be served.
func (s *Service) Configured() bool {
	return s.store != nil && s.synth != nil
}

// Narrate returns a signed URL for the rendered audio of (ns, id), reusing a
// cached object when one exists. A failed synthesis or upload leaves the
// store untouched.
func (s *Service) Narrate(ctx context.Context, ns Namespace, id, text string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("audio id is empty")
	}

	key := ns.key(id)
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("audio cache check for %s: %w", key, err)
	}
	if exists {
		s.logger.Debug("audio cache hit", zap.String("key", key))
		return s.store.SignedURL(ctx, key, s.ttl)
	}

	data, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return "", &GenerationError{ID: id, Err: err}
	}
	if err := s.store.Put(ctx, key, data, "audio/mpeg"); err != nil {
		return "", &UploadError{Key: key, Err: err}
	}

	s.logger.Info("audio rendered",
		zap.String("key", key), zap.Int("bytes", len(data)))
	return s.store.SignedURL(ctx, key, s.ttl)
}
