package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/house.json":
			assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"objects":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL+"/house.json")
	require.NoError(t, err)
	assert.Equal(t, `{"objects":[]}`, string(data))

	_, err = Fetch(context.Background(), srv.URL+"/building.json")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, "http://127.0.0.1:1/house.json")
	assert.Error(t, err)
}
