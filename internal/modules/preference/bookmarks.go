package preference

import (
	"context"
	"encoding/json"

	"github.com/sushilduseja/saarthi/internal/modules/library"
	"go.uber.org/zap"
)

// Bookmarks returns the client's bookmarked summary ids in insertion order.
// A corrupted stored value degrades to an empty set.
func (s *Service) Bookmarks(ctx context.Context, clientID string) []string {
	raw := s.Get(ctx, clientID, KeyBookmarks, "[]")

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("bookmark list unreadable, resetting",
			zap.String("client_id", clientID), zap.Error(err))
		return []string{}
	}
	return ids
}

// AddBookmark appends id to the client's bookmark set. Adding an id that is
// already present is a no-op.
func (s *Service) AddBookmark(ctx context.Context, clientID, id string) {
	ids := s.Bookmarks(ctx, clientID)
	for _, existing := range ids {
		if existing == id {
			return
		}
	}
	s.setBookmarks(ctx, clientID, append(ids, id))
}

// RemoveBookmark deletes id from the client's bookmark set; absent ids are a
// no-op.
func (s *Service) RemoveBookmark(ctx context.Context, clientID, id string) {
	ids := s.Bookmarks(ctx, clientID)
	out := make([]string, 0, len(ids))
	removed := false
	for _, existing := range ids {
		if existing == id {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		return
	}
	s.setBookmarks(ctx, clientID, out)
}

// IsBookmarked reports whether id is in the client's bookmark set.
func (s *Service) IsBookmarked(ctx context.Context, clientID, id string) bool {
	for _, existing := range s.Bookmarks(ctx, clientID) {
		if existing == id {
			return true
		}
	}
	return false
}

// ResolveBookmarks returns the subset of all whose id is bookmarked,
// preserving the catalog order of all, not bookmark-insertion order.
func (s *Service) ResolveBookmarks(ctx context.Context, clientID string, all []library.BookSummary) []library.BookSummary {
	ids := s.Bookmarks(ctx, clientID)
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	out := make([]library.BookSummary, 0, len(set))
	for _, summary := range all {
		if _, ok := set[summary.ID]; ok {
			out = append(out, summary)
		}
	}
	return out
}

func (s *Service) setBookmarks(ctx context.Context, clientID string, ids []string) {
	encoded, _ := json.Marshal(ids)
	s.Set(ctx, clientID, KeyBookmarks, string(encoded))
}
