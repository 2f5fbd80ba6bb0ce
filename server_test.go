package trainlights_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainlights"
	"trainlights/leds"
)

// mockLines is a board of plain booleans, enough for routing tests.
type mockLines struct {
	mu     sync.Mutex
	values map[int]bool
}

func newMockLines() *mockLines {
	return &mockLines{values: make(map[int]bool)}
}

func (m *mockLines) Open() error {
	return nil
}

func (m *mockLines) Line(pin int) (leds.Line, error) {
	return mockLine{board: m, pin: pin}, nil
}

func (m *mockLines) value(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[pin]
}

type mockLine struct {
	board *mockLines
	pin   int
}

func (l mockLine) Write(high bool) error {
	l.board.mu.Lock()
	defer l.board.mu.Unlock()
	l.board.values[l.pin] = high
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *leds.Controller, *mockLines) {
	t.Helper()

	lines := newMockLines()
	controller, err := leds.NewController(lines, leds.Options{})
	require.NoError(t, err)

	srv := httptest.NewServer(trainlights.NewRouter(controller))
	t.Cleanup(func() {
		srv.Close()
		controller.AllOff()
	})

	return srv, controller, lines
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestRootEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status trainlights.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
}

func TestListLedsReportsUnknownState(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/leds")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []trainlights.LedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 24)
	for i, led := range all {
		assert.Equal(t, i+1, led.Led)
		assert.Equal(t, "unknown", led.State)
	}
}

func TestGetSingleLed(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/leds/3")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var led trainlights.LedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&led))
	assert.Equal(t, 3, led.Led)
	assert.Equal(t, "unknown", led.State)

	for _, bad := range []string{"0", "25", "abc"} {
		resp, err := http.Get(srv.URL + "/api/leds/" + bad)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "LED %q", bad)
	}
}

func TestLedOnOffEndpoints(t *testing.T) {
	srv, _, lines := newTestServer(t)

	resp := post(t, srv.URL+"/api/leds/5/on", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, lines.value(8))

	resp = post(t, srv.URL+"/api/leds/5/off", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, lines.value(8))

	resp = post(t, srv.URL+"/api/leds/99/on", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlinkEndpoint(t *testing.T) {
	srv, controller, _ := newTestServer(t)

	resp := post(t, srv.URL+"/api/leds/2/blink", trainlights.BlinkRequest{FrequencyMs: 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, controller.ActiveBlinkers())

	resp = post(t, srv.URL+"/api/leds/2/blink", trainlights.BlinkRequest{FrequencyMs: 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 1, controller.ActiveBlinkers())
}

func TestAllOffEndpoint(t *testing.T) {
	srv, controller, lines := newTestServer(t)

	post(t, srv.URL+"/api/leds/4/on", nil)
	post(t, srv.URL+"/api/leds/9/blink", trainlights.BlinkRequest{FrequencyMs: 10})

	resp := post(t, srv.URL+"/api/leds/all/off", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 0, controller.ActiveBlinkers())
	assert.Eventually(t, func() bool {
		for led := 1; led <= 24; led++ {
			if lines.value(led + 3) {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBlinkEndpointBadBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/leds/2/blink", "application/json", bytes.NewBufferString("not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
