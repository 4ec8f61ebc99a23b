package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/teams/team-alpha":
			if r.Header.Get("Authorization") != "Bearer tok" || r.Header.Get("X-User-Id") != "user-alice" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid bearer token"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"team-alpha"}`))
		case "/v1/leagues/league-1/trades":
			_, _ = w.Write([]byte(`{"status":"` + r.URL.Query().Get("status") + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"team not found"}`))
		}
	}))
	t.Cleanup(server.Close)

	tests := []struct {
		name          string
		client        *client
		path          string
		query         map[string]string
		expectedBody  string
		expectedError string
	}{
		{
			name:         "authenticated request",
			client:       newClient(server.URL, "tok", "user-alice"),
			path:         "/v1/teams/team-alpha",
			expectedBody: `{"id":"team-alpha"}`,
		},
		{
			name:         "query params",
			client:       newClient(server.URL, "", ""),
			path:         "/v1/leagues/league-1/trades",
			query:        map[string]string{"status": "pending"},
			expectedBody: `{"status":"pending"}`,
		},
		{
			name:          "unauthenticated request",
			client:        newClient(server.URL, "", ""),
			path:          "/v1/teams/team-alpha",
			expectedError: "invalid bearer token (401)",
		},
		{
			name:          "api error",
			client:        newClient(server.URL, "tok", "user-alice"),
			path:          "/v1/teams/nope",
			expectedError: "team not found (404)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := tt.client.do(http.MethodGet, tt.path, tt.query, nil)
			if tt.expectedError != "" {
				require.EqualError(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			require.JSONEq(t, tt.expectedBody, string(body))
		})
	}
}

func TestState(t *testing.T) {
	tradedeskDataDir = t.TempDir()
	statePath = filepath.Join(tradedeskDataDir, "state.json")

	_, err := getState()
	require.Error(t, err)

	_, err = getClient()
	require.Error(t, err)

	require.NoError(t, setState(map[string]string{serverKey: "http://localhost:8080", userKey: "user-alice"}))
	require.NoError(t, setState(map[string]string{userKey: "user-bob"}))

	state, err := getState()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		serverKey: "http://localhost:8080",
		userKey:   "user-bob",
	}, state)

	c, err := getClient()
	require.NoError(t, err)
	require.NotNil(t, c)
}
