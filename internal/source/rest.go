package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/robotops/ro1mon/internal/config"
	"github.com/robotops/ro1mon/internal/errors"
	"github.com/robotops/ro1mon/internal/logger"
)

// restTimeout bounds each variable fetch.
const restTimeout = 5 * time.Second

// restSource polls routine-editor variables by id against the
// controller's bare REST API, no SDK involved.
type restSource struct {
	cfg  config.RESTConfig
	http *http.Client
	log  logger.Logger
}

// NewREST builds a Source over the controller REST endpoint.
func NewREST(cfg config.RESTConfig) Source {
	return &restSource{
		cfg:  cfg,
		http: &http.Client{Timeout: restTimeout},
		log:  logger.NewEnvLogger("[source/rest]"),
	}
}

func (s *restSource) Name() string {
	return config.SourceREST
}

// Read fetches each configured variable id. A failed fetch yields Null
// for that id and the rest still poll; only an empty id list is a
// transport error.
func (s *restSource) Read(ctx context.Context) (Sample, error) {
	if len(s.cfg.VariableIDs) == 0 {
		return Sample{}, errors.New(errors.ErrREST,
			"No variable ids configured",
			"Set 'rest.variable_ids' in .ro1mon.yaml")
	}

	sample := NewSample()
	for _, id := range s.cfg.VariableIDs {
		name := fmt.Sprintf("var_%d", id)
		v, err := s.fetch(ctx, id)
		if err != nil {
			s.log.Debug("fetch of variable %d failed: %v", id, err)
			sample.Set(name, Null())
			continue
		}
		sample.Set(name, v)
	}
	return sample, nil
}

func (s *restSource) Close() error {
	return nil
}

func (s *restSource) fetch(ctx context.Context, id int) (Value, error) {
	url := fmt.Sprintf("%s/api/v1/routine-editor/variables/%d", s.cfg.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Null(), err
	}
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return Null(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Null(), fmt.Errorf("variable %d: status %d", id, resp.StatusCode)
	}

	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Null(), err
	}
	return FromAny(body.Value), nil
}
