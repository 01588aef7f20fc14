package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Variable is one named value exposed by the robot's control program.
type Variable struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// RoutineEditorClient groups the routine-editor API surface.
type RoutineEditorClient struct {
	c *Client
}

// RoutineEditor returns the routine-editor API group.
func (c *Client) RoutineEditor() *RoutineEditorClient {
	return &RoutineEditorClient{c: c}
}

// VariablesClient reads and writes routine-editor variables.
type VariablesClient struct {
	c *Client
}

// Variables returns the variables API group.
func (r *RoutineEditorClient) Variables() *VariablesClient {
	return &VariablesClient{c: r.c}
}

// Load lists all variables defined in the routine editor.
func (v *VariablesClient) Load(ctx context.Context) ([]Variable, error) {
	resp, err := request[[]Variable](ctx, v.c, http.MethodGet, "/api/v1/routine-editor/variables", nil)
	if err != nil {
		return nil, err
	}
	return resp.Ok()
}

// Get reads a single variable by name.
func (v *VariablesClient) Get(ctx context.Context, name string) (Variable, error) {
	path := "/api/v1/routine-editor/variables/by-name/" + url.PathEscape(name)
	resp, err := request[Variable](ctx, v.c, http.MethodGet, path, nil)
	if err != nil {
		return Variable{}, err
	}
	return resp.Ok()
}

// Update writes a new value to a variable by id.
func (v *VariablesClient) Update(ctx context.Context, id int, value any) (Variable, error) {
	path := fmt.Sprintf("/api/v1/routine-editor/variables/%d", id)
	body := map[string]any{"value": value}
	resp, err := request[Variable](ctx, v.c, http.MethodPatch, path, body)
	if err != nil {
		return Variable{}, err
	}
	return resp.Ok()
}
