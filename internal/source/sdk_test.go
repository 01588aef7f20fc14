package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeWorkspace(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/routine-editor/variables", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "speed_rpm", "value": 1200.5},
			{"id": 2, "name": "at_home", "value": true},
		})
	})
	mux.HandleFunc("GET /api/v1/routine-editor/variables/by-name/{name}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("name") {
		case "speed_rpm":
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "name": "speed_rpm", "value": 1200.5})
		case "at_home":
			json.NewEncoder(w).Encode(map[string]any{"id": 2, "name": "at_home", "value": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSDKSourceRead(t *testing.T) {
	srv := fakeWorkspace(t)
	src := NewSDK(config.WorkspaceConfig{
		URL:   srv.URL,
		Token: "tok",
		Kind:  config.RobotKindLive,
	}, []string{"speed_rpm", "at_home", "missing_var"})

	sample, err := src.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"speed_rpm", "at_home", "missing_var"}, sample.Names)
	assert.Equal(t, Number(1200.5), sample.Get("speed_rpm"))
	assert.Equal(t, Bool(true), sample.Get("at_home"))

	// Failed per-variable read degrades to Null, not an error
	assert.Equal(t, Null(), sample.Get("missing_var"))
}

func TestSDKSourceReadConnectionFailure(t *testing.T) {
	src := NewSDK(config.WorkspaceConfig{
		URL:   "http://127.0.0.1:1",
		Token: "tok",
		Kind:  config.RobotKindLive,
	}, []string{"speed_rpm"})

	_, err := src.Read(context.Background())
	require.Error(t, err)
}

func TestSDKSourceName(t *testing.T) {
	src := NewSDK(config.WorkspaceConfig{URL: "http://x", Token: "t", Kind: "live"}, nil)
	assert.Equal(t, "sdk", src.Name())
	assert.NoError(t, src.Close())
}

func TestSDKSourceReportsStatus(t *testing.T) {
	src := NewSDK(config.WorkspaceConfig{URL: "http://x", Token: "t", Kind: "live"}, nil)

	_, ok := src.(StatusReporter)
	assert.True(t, ok, "sdk source should report robot status")
}
