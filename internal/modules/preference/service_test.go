package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sushilduseja/saarthi/internal/modules/library"
)

type memoryKV struct {
	values map[string]string
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(_ context.Context, clientID, name string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[clientID+"/"+name]
	return v, ok, nil
}

func (m *memoryKV) Set(_ context.Context, clientID, name, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[clientID+"/"+name] = value
	return nil
}

func TestGetLanguageDefaultsToMarathi(t *testing.T) {
	svc := NewService(newMemoryKV(), zap.NewNop())
	assert.Equal(t, library.LangMarathi, svc.GetLanguage(context.Background(), "c1"))
}

func TestSetLanguageRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	svc := NewService(kv, zap.NewNop())

	svc.SetLanguage(context.Background(), "c1", library.LangHindi)
	assert.Equal(t, library.LangHindi, svc.GetLanguage(context.Background(), "c1"))

	// Another client is unaffected.
	assert.Equal(t, library.LangMarathi, svc.GetLanguage(context.Background(), "c2"))
}

func TestGetLanguageCorruptValueDegrades(t *testing.T) {
	kv := newMemoryKV()
	kv.values["c1/"+KeyLanguage] = `{"bad":`
	svc := NewService(kv, zap.NewNop())

	assert.Equal(t, library.LangMarathi, svc.GetLanguage(context.Background(), "c1"))
}

func TestGetLanguageToleratesUnquotedValue(t *testing.T) {
	kv := newMemoryKV()
	kv.values["c1/"+KeyLanguage] = "hi"
	svc := NewService(kv, zap.NewNop())

	assert.Equal(t, library.LangHindi, svc.GetLanguage(context.Background(), "c1"))
}

func TestGetReadFailureReturnsDefault(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("db down")
	svc := NewService(kv, zap.NewNop())

	assert.Equal(t, "fallback", svc.Get(context.Background(), "c1", "some-key", "fallback"))
}

func TestSetWriteFailureKeepsOverlayValue(t *testing.T) {
	kv := newMemoryKV()
	kv.setErr = errors.New("db down")
	svc := NewService(kv, zap.NewNop())

	svc.Set(context.Background(), "c1", KeyLanguage, `"en"`)

	// The write failed but the session still sees the value it wrote.
	assert.Equal(t, library.LangEnglish, svc.GetLanguage(context.Background(), "c1"))
	assert.Empty(t, kv.values)
}

func TestSuccessfulWriteReadsThroughToStore(t *testing.T) {
	kv := newMemoryKV()
	svc := NewService(kv, zap.NewNop())
	ctx := context.Background()

	svc.Set(ctx, "c1", "some-key", "old")
	assert.Equal(t, "old", kv.values["c1/some-key"])

	// Another instance persists a newer value; this instance must see it.
	kv.values["c1/some-key"] = "new"
	assert.Equal(t, "new", svc.Get(ctx, "c1", "some-key", "fallback"))
}

func TestOverlayDroppedAfterRecovery(t *testing.T) {
	kv := newMemoryKV()
	kv.setErr = errors.New("db down")
	svc := NewService(kv, zap.NewNop())
	ctx := context.Background()

	svc.Set(ctx, "c1", "some-key", "offline-value")
	assert.Equal(t, "offline-value", svc.Get(ctx, "c1", "some-key", "fallback"))

	// Backend recovers; the next write persists and clears the overlay.
	kv.setErr = nil
	svc.Set(ctx, "c1", "some-key", "online-value")
	assert.Equal(t, "online-value", kv.values["c1/some-key"])

	kv.values["c1/some-key"] = "newer-elsewhere"
	assert.Equal(t, "newer-elsewhere", svc.Get(ctx, "c1", "some-key", "fallback"))
}

func TestSubscribersSeeChanges(t *testing.T) {
	svc := NewService(newMemoryKV(), zap.NewNop())

	var got []Change
	svc.Subscribe(func(c Change) { got = append(got, c) })

	svc.SetLanguage(context.Background(), "c1", library.LangEnglish)

	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ClientID)
	assert.Equal(t, KeyLanguage, got[0].Key)
	assert.Equal(t, `"en"`, got[0].Value)
}

func TestBookmarkLifecycle(t *testing.T) {
	svc := NewService(newMemoryKV(), zap.NewNop())
	ctx := context.Background()

	assert.Empty(t, svc.Bookmarks(ctx, "c1"))

	svc.AddBookmark(ctx, "c1", "deep-work")
	svc.AddBookmark(ctx, "c1", "ikigai")
	svc.AddBookmark(ctx, "c1", "deep-work") // idempotent
	assert.Equal(t, []string{"deep-work", "ikigai"}, svc.Bookmarks(ctx, "c1"))

	assert.True(t, svc.IsBookmarked(ctx, "c1", "ikigai"))
	assert.False(t, svc.IsBookmarked(ctx, "c1", "atomic-habits"))

	svc.RemoveBookmark(ctx, "c1", "deep-work")
	svc.RemoveBookmark(ctx, "c1", "never-there") // no-op
	assert.Equal(t, []string{"ikigai"}, svc.Bookmarks(ctx, "c1"))
}

func TestBookmarksCorruptValueResets(t *testing.T) {
	kv := newMemoryKV()
	kv.values["c1/"+KeyBookmarks] = "not-json"
	svc := NewService(kv, zap.NewNop())

	assert.Empty(t, svc.Bookmarks(context.Background(), "c1"))
}

func TestResolveBookmarksKeepsCatalogOrder(t *testing.T) {
	svc := NewService(newMemoryKV(), zap.NewNop())
	ctx := context.Background()

	svc.AddBookmark(ctx, "c1", "ikigai")
	svc.AddBookmark(ctx, "c1", "atomic-habits")
	svc.AddBookmark(ctx, "c1", "gone-from-catalog")

	catalog := []library.BookSummary{
		{ID: "atomic-habits"},
		{ID: "deep-work"},
		{ID: "ikigai"},
	}

	resolved := svc.ResolveBookmarks(ctx, "c1", catalog)
	require.Len(t, resolved, 2)
	assert.Equal(t, "atomic-habits", resolved[0].ID)
	assert.Equal(t, "ikigai", resolved[1].ID)
}
