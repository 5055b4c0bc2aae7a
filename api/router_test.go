package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxpoletaev/pgfanout/api/model"
	"github.com/maxpoletaev/pgfanout/metrics"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodeclient/inmemory"
	"github.com/maxpoletaev/pgfanout/nodes"
	"github.com/maxpoletaev/pgfanout/replication"
)

type testServer struct {
	handler    http.Handler
	dialer     *inmemory.Dialer
	propagator *replication.Propagator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	registry, err := nodes.New("n1",
		nodes.Node{ID: "n1", Endpoint: nodes.Endpoint{DSN: "memory://n1"}},
		nodes.Node{ID: "n2", Endpoint: nodes.Endpoint{DSN: "memory://n2"}},
		nodes.Node{ID: "n3", Endpoint: nodes.Endpoint{DSN: "memory://n3"}},
	)
	require.NoError(t, err)

	logger := kitlog.NewNopLogger()
	dialer := inmemory.NewDialer()
	conns := nodeclient.NewConnManager(registry, dialer, logger)

	collector := metrics.New()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(collector))

	propagator := replication.NewPropagator(conns, logger, collector, replication.Config{})

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = propagator.Close(ctx)
	})

	h := CreateRouter(Services{
		Registry: registry,
		Writer:   propagator,
		Lister:   replication.NewLister(conns, logger, collector),
		Searcher: replication.NewSearcher(conns, logger, collector, 0),
		Metrics:  collector,
		Gatherer: reg,
	}, logger)

	return &testServer{
		handler:    h,
		dialer:     dialer,
		propagator: propagator,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) drain(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.propagator.Close(ctx))
}

func TestRouter_WriteThenRead(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/items", []byte(`{"name": "Widget"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.CreateItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Widget", created.Name)
	assert.NotEmpty(t, created.PropagationID)

	s.drain(t)

	for _, id := range []string{"n1", "n2", "n3"} {
		rec := s.do(t, http.MethodGet, "/items/node/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code, "node %s", id)

		var items []model.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1, "node %s", id)
		assert.Equal(t, "Widget", items[0].Name)
		assert.Equal(t, created.ID, items[0].ID)
	}

	rec = s.do(t, http.MethodGet, "/items/search?q=widg", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found model.SearchItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found.Results, 1)
	assert.Equal(t, []string{"n1", "n2", "n3"}, found.Results[0].FoundOn)
	assert.Empty(t, found.Warnings)
}

func TestRouter_SearchWithNodeDown(t *testing.T) {
	s := newTestServer(t)
	s.dialer.Node("n1").Put(nodeclient.Item{ID: 1, Name: "Alpha", CreatedAt: time.Now()})
	s.dialer.Node("n2").SetDown(true)

	rec := s.do(t, http.MethodGet, "/items/search?q=alpha", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var found model.SearchItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found.Results, 1)
	assert.Equal(t, []string{"cannot search on node: n2"}, found.Warnings)

	rec = s.do(t, http.MethodGet, "/items/node/n2", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = s.do(t, http.MethodGet, "/items/node/n9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PrimaryDown(t *testing.T) {
	s := newTestServer(t)
	s.dialer.Node("n1").SetDown(true)

	rec := s.do(t, http.MethodPost, "/items", []byte(`{"name": "Widget"}`))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Equal(t, 0, s.dialer.Node("n2").Dials())
	assert.Equal(t, 0, s.dialer.Node("n3").Dials())
}

func TestRouter_CORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/items", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/items", []byte(`{"name": "Widget"}`))
	require.Equal(t, http.StatusCreated, rec.Code)

	s.drain(t)

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "pgfanout_propagations_total 1"), body)
	assert.Contains(t, body, `pgfanout_secondary_writes_total{node="n2",result="ok"} 1`)
	assert.Contains(t, body, `pgfanout_http_requests_total{code="201",method="POST",route="/items"} 1`)
}
