package rates

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestUSDToAUD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		fmt.Fprint(w, `{"rates": {"AUD": 1.48}}`)
	}))
	defer srv.Close()

	client := New(srv.URL, testLogger())
	assert.Equal(t, 1.48, client.USDToAUD(context.Background()))
}

func TestUSDToAUD_DefaultOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, testLogger())
	assert.Equal(t, DefaultUSDToAUD, client.USDToAUD(context.Background()))
}

func TestUSDToAUD_DefaultOnUnreachableHost(t *testing.T) {
	client := New("http://127.0.0.1:1", testLogger())
	assert.Equal(t, DefaultUSDToAUD, client.USDToAUD(context.Background()))
}

func TestUSDToAUD_DefaultOnGarbage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not JSON", `<html>rate limited</html>`},
		{"zero rate", `{"rates": {"AUD": 0}}`},
		{"negative rate", `{"rates": {"AUD": -2}}`},
		{"missing rates", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client := New(srv.URL, testLogger())
			assert.Equal(t, DefaultUSDToAUD, client.USDToAUD(context.Background()))
		})
	}
}
