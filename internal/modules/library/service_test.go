package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sushilduseja/saarthi/internal/config"
)

const catalogJSON = `[
	{"id":"atomic-habits","title":{"en":"Atomic Habits","hi":"","mr":""},"author":"James Clear","category":"Productivity","isFeatured":true,"coverImage":"https://cdn.example.com/atomic.png"},
	{"id":"deep-work","title":{"en":"Deep Work","hi":"","mr":""},"author":"Cal Newport","category":"Productivity","coverImage":"deep-work.png"},
	{"id":"ikigai","title":{"en":"Ikigai","hi":"","mr":""},"author":"Héctor García","category":"Purpose"}
]`

func newCatalogService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewService(config.ContentConfig{
		CatalogURL:          srv.URL,
		FetchTimeoutSeconds: 5,
	}, zap.NewNop())
	return svc, srv
}

func TestLoadFetchesOnce(t *testing.T) {
	var hits atomic.Int32
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	})

	catalog, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Equal(t, "atomic-habits", catalog[0].ID)
	assert.Equal(t, "https://cdn.example.com/atomic.png", catalog[0].CoverImage)
	assert.Empty(t, catalog[1].CoverImage, "relative cover paths are treated as missing")

	again, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog, again)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoadNon200IsFetchError(t *testing.T) {
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := svc.Load(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestLoadMalformedIsParseError(t *testing.T) {
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})

	_, err := svc.Load(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadMissingIDIsParseError(t *testing.T) {
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"title":{"en":"No ID"}}]`))
	})

	_, err := svc.Load(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadRetriesAfterFailure(t *testing.T) {
	var hits atomic.Int32
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(catalogJSON))
	})

	_, err := svc.Load(context.Background())
	require.Error(t, err)

	catalog, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog, 3)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGetByID(t *testing.T) {
	svc, _ := newCatalogService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(catalogJSON))
	})

	summary, err := svc.GetByID(context.Background(), "deep-work")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, "Cal Newport", summary.Author)

	missing, err := svc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
