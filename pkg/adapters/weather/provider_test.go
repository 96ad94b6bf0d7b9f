package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/webterm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	var gotPath, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotFormat = r.URL.Query().Get("format")
		_, _ = w.Write([]byte("New York: ☀️ +21°C ↗11km/h\n"))
	}))
	defer srv.Close()

	p := New(srv.URL + "/")
	out, err := p.Lookup(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, "New York: ☀️ +21°C ↗11km/h", out)
	assert.Equal(t, "/New%20York", gotPath)
	assert.Equal(t, DefaultFormat, gotFormat)
}

func TestLookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	out, err := New(srv.URL).Lookup(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "Unknown location: Atlantis", out)
}

func TestLookup_UpstreamErrors(t *testing.T) {
	t.Run("Server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Lookup(context.Background(), "Paris")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := New(srv.URL).Lookup(ctx, "Paris")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := New(url).Lookup(context.Background(), "Paris")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})

	t.Run("Client error is internal", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := New(srv.URL).Lookup(context.Background(), "Paris")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
	})
}
