package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campuscare-admin/internal/auth"
	"campuscare-admin/internal/handlers"
	"campuscare-admin/internal/logging"
	"campuscare-admin/internal/metrics"
	"campuscare-admin/internal/models"
	"campuscare-admin/internal/query"
	"campuscare-admin/internal/reconcile"
	"campuscare-admin/internal/store"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server  *httptest.Server
	surface *reconcile.Controller
	token   string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logging.Discard()
	m := metrics.New()

	checker, err := auth.NewIdentityChecker("admin@campuscare.com", "admin123", true)
	require.NoError(t, err)
	tokens := auth.NewTokens("test-secret", time.Hour)

	newSurface := func() *reconcile.Controller {
		return reconcile.New(store.Disabled{}, reconcile.Options{Logger: log, Metrics: m})
	}
	surface := newSurface()
	surface.Start(context.Background())
	t.Cleanup(surface.Dispose)
	require.Eventually(t, func() bool { return !surface.State().Loading }, time.Second, 5*time.Millisecond)

	srv := httptest.NewServer(handlers.NewRouter(handlers.Deps{
		Checker:    checker,
		Tokens:     tokens,
		Surface:    surface,
		NewSurface: newSurface,
		Metrics:    m,
		Log:        log,
	}))
	t.Cleanup(srv.Close)

	token, err := tokens.Issue(models.AdminIdentity{Name: "Admin User", Email: "admin@campuscare.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	return &testEnv{server: srv, surface: surface, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestLogin(t *testing.T) {
	env := newEnv(t)

	resp, err := http.Post(env.server.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"admin@campuscare.com","password":"admin123"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login handlers.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "Admin User", login.Admin.Name)

	env.token = login.Token
	me, body := env.do(t, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusOK, me.StatusCode)
	assert.Equal(t, "admin@campuscare.com", body["email"])
}

func TestLogin_Rejected(t *testing.T) {
	env := newEnv(t)

	resp, err := http.Post(env.server.URL+"/auth/login", "application/json",
		strings.NewReader(`{"email":"admin@campuscare.com","password":"wrong"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Post(env.server.URL+"/auth/login", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newEnv(t)
	env.token = ""
	for _, path := range []string{"/api/dashboard", "/api/complaints", "/api/complaints/c1", "/ws"} {
		resp, _ := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestHealthAndMeta(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["live"])

	resp, body = env.do(t, http.MethodGet, "/api/meta", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["categories"], 7)
	assert.Len(t, body["statuses"], 5)
	assert.Len(t, body["priorities"], 3)

	metricsResp, err := http.Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestDashboard(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isLive"])

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(7), stats["total"])
	assert.Equal(t, float64(2), stats["pending"])
	assert.Equal(t, float64(3), stats["inProgress"])
	assert.Equal(t, float64(2), stats["resolved"])
	assert.Len(t, stats["recent"], query.RecentLimit)
	assert.Len(t, stats["byCategory"], 6)
}

func TestListComplaints(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/complaints?search=water", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := body["complaints"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "c4", list[0].(map[string]interface{})["id"])
	assert.Equal(t, float64(7), body["total"])

	resp, body = env.do(t, http.MethodGet, "/api/complaints?status=resolved&category=Infrastructure", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["complaints"], 2)

	resp, _ = env.do(t, http.MethodGet, "/api/complaints?status=closed", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = env.do(t, http.MethodGet, "/api/complaints?category=Parking", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetComplaint(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/complaints/c4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Maintenance Department", body["assignedTo"])

	resp, _ = env.do(t, http.MethodGet, "/api/complaints/c99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_Demo(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodPatch, "/api/complaints/c2/status", handlers.UpdateStatusRequest{
		Status: models.StatusResolved,
		Notes:  "Food replaced",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isLive"])
	c := body["complaint"].(map[string]interface{})
	assert.Equal(t, "resolved", c["status"])
	assert.Equal(t, "Food replaced", c["resolutionNotes"])
	assert.NotEmpty(t, c["resolvedAt"])

	c2, ok := query.Find(env.surface.State().Records, "c2")
	require.True(t, ok)
	assert.Equal(t, models.StatusResolved, c2.Status)
}

func TestUpdateStatus_Errors(t *testing.T) {
	env := newEnv(t)

	resp, _ := env.do(t, http.MethodPatch, "/api/complaints/c2/status", map[string]string{"status": "closed"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPatch, "/api/complaints/c99/status", map[string]string{"status": "resolved"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInsertSample_StoreUnavailable(t *testing.T) {
	env := newEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/complaints/sample", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body["error"], "Failed to add sample")
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame map[string]interface{}
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

// readUntil reads frames until match accepts one.
func readUntil(t *testing.T, conn *websocket.Conn, match func(map[string]interface{}) bool) map[string]interface{} {
	t.Helper()
	for i := 0; i < 20; i++ {
		if frame := readFrame(t, conn); match(frame) {
			return frame
		}
	}
	t.Fatal("expected frame never arrived")
	return nil
}

func complaintStatus(frame map[string]interface{}, id string) string {
	for _, raw := range frame["complaints"].([]interface{}) {
		c := raw.(map[string]interface{})
		if c["id"] == id {
			s, _ := c["status"].(string)
			return s
		}
	}
	return ""
}

func TestWebSocketSurface(t *testing.T) {
	env := newEnv(t)
	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws?token=" + env.token

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	state := readUntil(t, conn, func(f map[string]interface{}) bool {
		return f["type"] == "state" && f["loading"] == false
	})
	assert.Equal(t, false, state["isLive"])
	assert.Len(t, state["complaints"], 7)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "filter", "filter": map[string]string{"search": "water"}}))
	state = readUntil(t, conn, func(f map[string]interface{}) bool {
		return f["type"] == "state" && len(f["complaints"].([]interface{})) == 1
	})
	assert.Equal(t, "assigned", complaintStatus(state, "c4"))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "open", "id": "c4"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "update_status", "id": "c4", "status": "resolved", "notes": "Pump repaired"}))

	result := readUntil(t, conn, func(f map[string]interface{}) bool {
		return f["type"] == "result" && f["action"] == "update_status"
	})
	assert.Equal(t, true, result["ok"])

	state = readUntil(t, conn, func(f map[string]interface{}) bool {
		return f["type"] == "state" && complaintStatus(f, "c4") == "resolved"
	})
	detail := state["detail"].(map[string]interface{})
	assert.Equal(t, "resolved", detail["status"])
	assert.Equal(t, "Pump repaired", detail["resolutionNotes"])

	c4, ok := query.Find(env.surface.State().Records, "c4")
	require.True(t, ok)
	assert.Equal(t, models.StatusAssigned, c4.Status, "surfaces do not share state")

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))
	result = readUntil(t, conn, func(f map[string]interface{}) bool {
		return f["type"] == "result" && f["action"] == "bogus"
	})
	assert.Equal(t, "unknown command", result["error"])
}
