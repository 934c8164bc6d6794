package audio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	objects map[string][]byte
	puts    int
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.objects[key] = body
	return nil
}

func (f *fakeStore) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

type fakeSynth struct {
	calls int
	data  []byte
	err   error
}

func (f *fakeSynth) Synthesize(context.Context, string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

func TestNarrateNotConfigured(t *testing.T) {
	svc := NewService(nil, nil, time.Hour, zap.NewNop())
	_, err := svc.Narrate(context.Background(), NamespaceSummary, "book-1", "text")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestNarrateRendersAndCaches(t *testing.T) {
	store := newFakeStore()
	synth := &fakeSynth{data: []byte("mp3-bytes")}
	svc := NewService(store, synth, time.Hour, zap.NewNop())

	url, err := svc.Narrate(context.Background(), NamespaceSummary, "book-1", "Some summary text.")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/audio_summaries/book-1.mp3", url)
	assert.Equal(t, 1, synth.calls)

	url, err = svc.Narrate(context.Background(), NamespaceSummary, "book-1", "Some summary text.")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/audio_summaries/book-1.mp3", url)
	assert.Equal(t, 1, synth.calls, "cache hit must not re-synthesize")
	assert.Equal(t, 1, store.puts)
}

func TestNarrateChatMessageKey(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeSynth{data: []byte("x")}, time.Hour, zap.NewNop())

	url, err := svc.Narrate(context.Background(), NamespaceChatMessage, "msg-7", "Hello.")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/chat_audio/msg-7.mp3", url)
}

func TestNarrateGenerationFailureLeavesStoreUntouched(t *testing.T) {
	store := newFakeStore()
	synth := &fakeSynth{err: errors.New("tts down")}
	svc := NewService(store, synth, time.Hour, zap.NewNop())

	_, err := svc.Narrate(context.Background(), NamespaceSummary, "book-1", "text")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Empty(t, store.objects)
}

func TestNarrateUploadFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("bucket gone")
	svc := NewService(store, &fakeSynth{data: []byte("x")}, time.Hour, zap.NewNop())

	_, err := svc.Narrate(context.Background(), NamespaceSummary, "book-1", "text")

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Empty(t, store.objects)
}

func TestNarrateEmptyID(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeSynth{data: []byte("x")}, time.Hour, zap.NewNop())
	_, err := svc.Narrate(context.Background(), NamespaceSummary, "  ", "text")
	require.Error(t, err)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "ab", truncateRunes("abcd", 2))
	assert.Equal(t, "सार", truncateRunes("सारथी", 3))
	assert.Equal(t, "abcd", truncateRunes("abcd", 0))
}
