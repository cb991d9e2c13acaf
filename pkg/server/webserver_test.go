package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/matst80/listing-filters/pkg/common/jsoncompat"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/storage"
	"github.com/matst80/listing-filters/pkg/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ws    *WebServer
	srv   *httptest.Server
	rec   *tracking.Recorder
	redis *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	store := storage.NewHandoffStore(storage.NewRedisClient(mr.Addr(), "", 0), time.Minute)
	t.Cleanup(func() { store.Close() })
	rec := &tracking.Recorder{}
	ws := NewWebServer(NewRegistry(nil), store, rec, logger.NewTestLogger(t), filter.ForSale)
	ws.AllowedOrigins = []string{"https://homes.example"}
	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(srv.Close)
	return &testEnv{ws: ws, srv: srv, rec: rec, redis: mr}
}

func (e *testEnv) call(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	res, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func (e *testEnv) view(t *testing.T, method, path, body string, status int) SessionView {
	t.Helper()
	code, data := e.call(t, method, path, body)
	require.Equal(t, status, code, string(data))
	var v SessionView
	require.NoError(t, jsoncompat.Unmarshal(data, &v))
	return v
}

func (e *testEnv) create(t *testing.T) SessionView {
	return e.view(t, "POST", "/api/sessions", "", http.StatusCreated)
}

func labels(chips []filter.Chip) []string {
	out := make([]string, len(chips))
	for i, c := range chips {
		out[i] = c.Label
	}
	return out
}

func TestCreateAndGetSession(t *testing.T) {
	e := newTestEnv(t)
	created := e.create(t)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "For Sale", created.State.Status)
	assert.Equal(t, "status=For+Sale", created.Query)
	assert.Empty(t, created.Chips)
	assert.Empty(t, created.QuickFilters)
	assert.Equal(t, filter.NewQuickMapper(filter.DefaultQuickFilters).Labels(), created.Available)
	assert.Len(t, e.rec.SessionIDs(), 1)

	got := e.view(t, "GET", "/api/sessions/"+created.ID, "", http.StatusOK)
	assert.Equal(t, created, got)

	code, body := e.call(t, "GET", "/api/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body), errSessionNotFound.Error())
}

func TestCreateSessionWithStatus(t *testing.T) {
	e := newTestEnv(t)
	v := e.view(t, "POST", "/api/sessions", `{"status":"Sold"}`, http.StatusCreated)
	assert.Equal(t, "Sold", v.State.Status)
	assert.Empty(t, v.Chips)

	code, _ := e.call(t, "POST", "/api/sessions", `{"status":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDispatchActions(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	path := "/api/sessions/" + id + "/actions"

	e.view(t, "POST", path, `{"type":"set-cities","payload":{"cities":["Toronto"]}}`, http.StatusOK)
	v := e.view(t, "POST", path, `{"type":"set-price","payload":{"min":500000,"max":800000,"preset":null}}`, http.StatusOK)

	assert.Equal(t, []string{"Toronto", "$500K - $800K"}, labels(v.Chips))
	assert.Equal(t, []string{"Toronto"}, v.State.Cities)
	assert.Contains(t, v.Query, "rng=price%3A500000-800000")
	assert.Contains(t, v.Query, "str=city%3AToronto")

	unchanged := e.view(t, "POST", path, `{"type":"launch-rocket"}`, http.StatusOK)
	assert.Equal(t, v, unchanged)

	code, _ := e.call(t, "POST", path, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = e.call(t, "POST", "/api/sessions/missing/actions", `{"type":"reset-all"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuickFilterAndChipRemoval(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID

	v := e.view(t, "POST", "/api/sessions/"+id+"/quick/Pool", "", http.StatusOK)
	assert.Equal(t, []string{"Pool"}, v.QuickFilters)
	require.NotNil(t, v.State.Advanced.SwimmingPool)
	assert.Equal(t, "Yes", *v.State.Advanced.SwimmingPool)
	assert.Contains(t, labels(v.Chips), "Pool")
	require.Len(t, e.rec.Events(), 1)

	v = e.view(t, "DELETE", "/api/sessions/"+id+"/chips/quick:Pool", "", http.StatusOK)
	assert.Empty(t, v.QuickFilters)
	assert.NotContains(t, labels(v.Chips), "Pool")

	code, _ := e.call(t, "POST", "/api/sessions/"+id+"/quick/Helipad", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = e.call(t, "DELETE", "/api/sessions/"+id+"/chips/city:Nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRemoveAdvancedChipResetsBlock(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	v := e.view(t, "POST", "/api/sessions/"+id+"/advanced", `{"actions":[
		{"type":"advanced/set-field","payload":{"field":"swimmingPool","value":"Yes"}},
		{"type":"advanced/set-range","payload":{"field":"squareFootage","bound":"min","value":1500}}
	]}`, http.StatusOK)
	assert.Equal(t, []string{"Advanced (2)"}, labels(v.Chips))
	assert.Len(t, e.rec.Events(), 1)

	v = e.view(t, "DELETE", "/api/sessions/"+id+"/chips/advanced:advanced", "", http.StatusOK)
	assert.Empty(t, v.Chips)
	assert.Nil(t, v.State.Advanced.SwimmingPool)
}

func TestApplyAdvanced(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	path := "/api/sessions/" + id + "/advanced"

	v := e.view(t, "POST", path, `{"actions":[]}`, http.StatusOK)
	assert.Empty(t, v.Chips)
	assert.Empty(t, e.rec.Events())

	code, body := e.call(t, "POST", path, `{"actions":[
		{"type":"advanced/toggle-house-style","payload":{"style":"Bungalow"}},
		{"type":"set-cities","payload":{"cities":["Ottawa"]}}
	]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), errNotAdvancedAction.Error())

	got := e.view(t, "GET", "/api/sessions/"+id, "", http.StatusOK)
	assert.Empty(t, got.State.Advanced.HouseStyle)
	assert.Empty(t, got.State.Cities)
}

func TestClearFilters(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	e.view(t, "POST", "/api/sessions/"+id+"/actions", `{"type":"set-status","payload":{"status":"Sold"}}`, http.StatusOK)
	e.view(t, "POST", "/api/sessions/"+id+"/quick/Garage", "", http.StatusOK)

	v := e.view(t, "DELETE", "/api/sessions/"+id+"/filters", "", http.StatusOK)
	assert.Equal(t, "For Sale", v.State.Status)
	assert.Empty(t, v.QuickFilters)
	assert.Empty(t, v.Chips)
}

func TestHandoffRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	source := e.create(t).ID
	e.view(t, "POST", "/api/sessions/"+source+"/actions", `{"type":"set-cities","payload":{"cities":"Ottawa, Kanata"}}`, http.StatusOK)

	code, body := e.call(t, "POST", "/api/sessions/"+source+"/handoff", "")
	require.Equal(t, http.StatusCreated, code, string(body))
	var res HandoffResponse
	require.NoError(t, jsoncompat.Unmarshal(body, &res))
	assert.NotEmpty(t, res.Token)

	events := e.rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, tracking.EventHandoff, events[0].Event)
	assert.Equal(t, []string{"Ottawa", "Kanata"}, events[0].Chips)

	restored := e.view(t, "GET", "/api/handoff/"+res.Token, "", http.StatusOK)
	assert.NotEqual(t, source, restored.ID)
	assert.Equal(t, []string{"Ottawa", "Kanata"}, restored.State.Cities)
	assert.Equal(t, 2, e.ws.Sessions.Len())

	code, _ = e.call(t, "GET", "/api/handoff/6f1c1d5e-0000-4000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = e.call(t, "GET", "/api/handoff/not-a-token", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandoffStoreDown(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	e.redis.Close()

	code, _ := e.call(t, "POST", "/api/sessions/"+id+"/handoff", "")
	assert.Equal(t, http.StatusBadGateway, code)
	code, _ = e.call(t, "GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestHandoffNotConfigured(t *testing.T) {
	ws := NewWebServer(NewRegistry(nil), nil, nil, logger.NewTestLogger(t), "")
	srv := httptest.NewServer(ws.Handler())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/api/handoff/whatever")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	res, err = srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, filter.ForSale, ws.DefaultStatus)
}

func TestNormalizeQuery(t *testing.T) {
	e := newTestEnv(t)
	code, body := e.call(t, "GET", "/api/query?status=Sold&str=city:Toronto&rng=price:-900000&page=500&str=bogus", "")
	require.Equal(t, http.StatusOK, code, string(body))

	var res QueryResponse
	require.NoError(t, jsoncompat.Unmarshal(body, &res))
	assert.Equal(t, "Sold", res.State.Status)
	assert.Equal(t, []string{"Toronto"}, res.State.Cities)
	assert.Contains(t, res.Query, "page=100")
	assert.Contains(t, res.Query, "rng=price%3A-900000")
	assert.Equal(t, []string{"Sold", "Toronto", "Up to $900K"}, labels(res.Chips))

	code, _ = e.call(t, "GET", "/api/query?page=two", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsAndCors(t *testing.T) {
	e := newTestEnv(t)
	id := e.create(t).ID
	e.view(t, "POST", "/api/sessions/"+id+"/actions", `{"type":"reset-all"}`, http.StatusOK)

	code, body := e.call(t, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `listingfilters_actions_total{type="reset-all"}`)

	req, err := http.NewRequest("OPTIONS", e.srv.URL+"/api/sessions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://homes.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "https://homes.example", res.Header.Get("Access-Control-Allow-Origin"))
}
