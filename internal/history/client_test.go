package history

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyam007/mutual-fund-dashboard/internal/common"
)

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mf/118527", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"meta": {"scheme_name": "Quant Mid Cap Fund - Direct Plan - Growth"},
			"data": [
				{"date": "29-08-2026", "nav": "210.4500"},
				{"date": "28-08-2026", "nav": "209.9100"},
				{"date": "27-08-2026", "nav": "bogus"},
				{"date": "26-08-2026", "nav": "208.0000"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	series, err := client.Fetch(context.Background(), "118527")

	require.NoError(t, err)
	assert.Equal(t, "Quant Mid Cap Fund - Direct Plan - Growth", series.SchemeName)
	require.Len(t, series.Points, 3, "unparsable rows are skipped")

	// Oldest first.
	assert.Equal(t, 208.0, series.Points[0].NAV)
	assert.Equal(t, 210.45, series.Latest().NAV)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), series.Latest().Date)
}

func TestClient_FetchEmptySeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"meta": {"scheme_name": "Ghost Fund"}, "data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "999999")

	assert.True(t, errors.Is(err, common.ErrNoHistory))
}

func TestClient_FetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Fetch(context.Background(), "118527")

	assert.Error(t, err)
}

func TestClient_FetchRejectsEmptyTicker(t *testing.T) {
	client := NewClient("", time.Second)

	_, err := client.Fetch(context.Background(), "")

	assert.Error(t, err)
}
