package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	c := New("https://example.sb.app", "tok", RobotKindLive)

	paths := Discover(c)

	assert.Contains(t, paths, "status")
	assert.Contains(t, paths, "routine_editor.variables.load")
	assert.Contains(t, paths, "routine_editor.variables.get")
	assert.Contains(t, paths, "routine_editor.variables.update")

	// Plain accessors are not operations
	assert.NotContains(t, paths, "base_url")
	assert.NotContains(t, paths, "routine_editor")
}

func TestInvoke(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL, "tok", RobotKindLive)
	ctx := context.Background()

	t.Run("no-arg operation", func(t *testing.T) {
		out, err := Invoke(ctx, c, "routine_editor.variables.load", nil)
		require.NoError(t, err)
		vars, ok := out.([]Variable)
		require.True(t, ok)
		assert.Len(t, vars, 2)
	})

	t.Run("string argument", func(t *testing.T) {
		out, err := Invoke(ctx, c, "routine_editor.variables.get", []string{"speed_rpm"})
		require.NoError(t, err)
		v, ok := out.(Variable)
		require.True(t, ok)
		assert.Equal(t, "speed_rpm", v.Name)
	})

	t.Run("json arguments", func(t *testing.T) {
		out, err := Invoke(ctx, c, "routine_editor.variables.update", []string{"1", "900"})
		require.NoError(t, err)
		v, ok := out.(Variable)
		require.True(t, ok)
		assert.Equal(t, float64(900), v.Value)
	})

	t.Run("unknown segment", func(t *testing.T) {
		_, err := Invoke(ctx, c, "routine_editor.motors.load", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "motors")
	})

	t.Run("group without operation", func(t *testing.T) {
		_, err := Invoke(ctx, c, "routine_editor", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API group")
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := Invoke(ctx, c, "routine_editor.variables.get", []string{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "argument")
	})
}

func TestInvokePropagatesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "tok", RobotKindLive)
	_, err := Invoke(context.Background(), c, "status", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestSnakeCamelRoundtrip(t *testing.T) {
	tests := []struct {
		camel string
		snake string
	}{
		{"Status", "status"},
		{"RoutineEditor", "routine_editor"},
		{"Load", "load"},
		{"Variables", "variables"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.snake, toSnake(tt.camel))
		assert.Equal(t, tt.camel, toCamel(tt.snake))
	}
}

func TestCoerce(t *testing.T) {
	anyType := reflect.TypeOf((*any)(nil)).Elem()

	tests := []struct {
		name    string
		arg     string
		target  reflect.Type
		want    any
		wantErr bool
	}{
		{name: "number", arg: "42", target: reflect.TypeOf(0), want: 42},
		{name: "float", arg: "1.5", target: reflect.TypeOf(0.0), want: 1.5},
		{name: "bool", arg: "true", target: reflect.TypeOf(false), want: true},
		{name: "quoted string", arg: `"hello"`, target: reflect.TypeOf(""), want: "hello"},
		{name: "bare word falls back to string", arg: "speed_rpm", target: reflect.TypeOf(""), want: "speed_rpm"},
		{name: "json into any", arg: "900", target: anyType, want: float64(900)},
		{name: "word into int fails", arg: "fast", target: reflect.TypeOf(0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := coerce(tt.arg, tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}
