package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "accounts/profile", want: "/accounts/profile/"},
		{in: "/accounts/profile", want: "/accounts/profile/"},
		{in: "accounts/profile/", want: "/accounts/profile/"},
		{in: "/accounts/profile/", want: "/accounts/profile/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEndpoint(tt.in))
		})
	}
}

func TestEndpointURL(t *testing.T) {
	c := New("https://addons.example.com/")
	assert.Equal(t, "https://addons.example.com/api/v4/accounts/session/", c.endpointURL("accounts/session", nil))

	c = New("https://addons.example.com", WithVersion("v5"))
	assert.Equal(t,
		"https://addons.example.com/api/v5/reviewers/addon/1/versions/2/?file=lib%2Freact.js",
		c.endpointURL("reviewers/addon/1/versions/2", url.Values{"file": {"lib/react.js"}}),
	)
}

func TestCallAPI_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/accounts/profile/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"name": "reviewer"}`))
	}))
	defer server.Close()

	c := New(server.URL, WithToken("secret"))

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.callAPI(context.Background(), http.MethodGet, "/accounts/profile/", nil, &out))
	assert.Equal(t, "reviewer", out.Name)
}

func TestCallAPI_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var out map[string]any
	require.NoError(t, New(server.URL).callAPI(context.Background(), http.MethodGet, "x", nil, &out))
}

func TestCallAPI_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out map[string]any
	err := New(server.URL).callAPI(context.Background(), http.MethodGet, "missing", nil, &out)
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "unexpected status for GET /api/v4/missing/: 404", serr.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCallAPI_ServerErrorIsNotNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var out map[string]any
	err := New(server.URL).callAPI(context.Background(), http.MethodGet, "boom", nil, &out)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCallAPI_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{nope`))
	}))
	defer server.Close()

	var out map[string]any
	err := New(server.URL).callAPI(context.Background(), http.MethodGet, "x", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode GET x")
}

func TestResolve(t *testing.T) {
	c := New("https://addons.example.com")

	got, err := c.resolve("/api/v4/reviewers/addon/1/versions/2/validation/")
	require.NoError(t, err)
	assert.Equal(t, "https://addons.example.com/api/v4/reviewers/addon/1/versions/2/validation/", got)

	got, err = c.resolve("https://cdn.example.com/report.json")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/report.json", got)
}

func TestPing(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "not found counts as reachable", status: http.StatusNotFound},
		{name: "server error", status: http.StatusBadGateway, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v4/", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := New(srv.URL).Ping(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
