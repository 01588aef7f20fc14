package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves a small fake workspace API and records the
// bearer token and robot kind it saw.
func newTestServer(t *testing.T) (*httptest.Server, *http.Header) {
	t.Helper()
	var seen http.Header

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		json.NewEncoder(w).Encode(Status{Control: ControlStatus{Mode: "auto", EStop: false}})
	})
	mux.HandleFunc("GET /api/v1/routine-editor/variables", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Variable{
			{ID: 1, Name: "speed_rpm", Value: 1200.5},
			{ID: 2, Name: "at_home", Value: true},
		})
	})
	mux.HandleFunc("GET /api/v1/routine-editor/variables/by-name/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if name != "speed_rpm" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "no such variable"})
			return
		}
		json.NewEncoder(w).Encode(Variable{ID: 1, Name: "speed_rpm", Value: 1200.5})
	})
	mux.HandleFunc("PATCH /api/v1/routine-editor/variables/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Value any `json:"value"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(Variable{ID: 1, Name: "speed_rpm", Value: body.Value})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestStatus(t *testing.T) {
	srv, seen := newTestServer(t)
	c := New(srv.URL, "tok-123", RobotKindLive)

	s, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "auto", s.Control.Mode)
	assert.False(t, s.Control.EStop)

	assert.Equal(t, "Bearer tok-123", seen.Get("Authorization"))
	assert.Equal(t, "live", seen.Get("X-Robot-Kind"))
}

func TestVariablesLoad(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL, "tok", RobotKindSimulated)

	vars, err := c.RoutineEditor().Variables().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, "speed_rpm", vars[0].Name)
	assert.Equal(t, 1200.5, vars[0].Value)
	assert.Equal(t, true, vars[1].Value)
}

func TestVariablesGet(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL, "tok", RobotKindLive)

	v, err := c.RoutineEditor().Variables().Get(context.Background(), "speed_rpm")
	require.NoError(t, err)
	assert.Equal(t, 1, v.ID)
	assert.Equal(t, 1200.5, v.Value)
}

func TestVariablesGetNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL, "tok", RobotKindLive)

	_, err := c.RoutineEditor().Variables().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "no such variable")
}

func TestVariablesUpdate(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL, "tok", RobotKindLive)

	v, err := c.RoutineEditor().Variables().Update(context.Background(), 1, 900)
	require.NoError(t, err)
	assert.Equal(t, float64(900), v.Value)
}

func TestUnreachableWorkspace(t *testing.T) {
	c := New("http://127.0.0.1:1", "tok", RobotKindLive)

	_, err := c.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot reach the robot workspace")
}

func TestResponseOk(t *testing.T) {
	tests := []struct {
		name    string
		resp    Response[int]
		want    int
		wantErr bool
	}{
		{
			name: "success",
			resp: Response[int]{StatusCode: 200, Data: 42},
			want: 42,
		},
		{
			name:    "unauthorized",
			resp:    Response[int]{StatusCode: 401, ErrMessage: "bad token"},
			wantErr: true,
		},
		{
			name:    "server error with empty message",
			resp:    Response[int]{StatusCode: 500},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.resp.Ok()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, tt.resp.IsOk())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.True(t, tt.resp.IsOk())
			}
		})
	}
}
