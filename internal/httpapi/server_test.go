package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketcsv/internal/pipeline"
	"ticketcsv/internal/status"
	"ticketcsv/internal/transform"
)

type fixedDraw float64

func (f fixedDraw) Float64() float64 { return float64(f) }

type fakeAutomation struct {
	res *pipeline.Result
	err error
}

func (f *fakeAutomation) Run(context.Context) (*pipeline.Result, error) { return f.res, f.err }

func newTestServer(t *testing.T, auto Automation) *httptest.Server {
	t.Helper()
	tr := transform.NewInProcessClient(transform.Defaults{}, func() status.RandomSource { return fixedDraw(0.45) })
	srv := httptest.NewServer(NewRouter(tr, auto))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body any) (*http.Response, response) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", strings.NewReader(string(raw)))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestSimulateExternalSupport_Deterministic(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, out := post(t, srv.URL+"/simulate-external-support", map[string]string{
		"csvContent": "id,status\n1,OPEN\n2,OPEN\n3,OPEN\n4,OPEN\n",
		"policy":     "conditional_random", // ignored: the endpoint pins its policy
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, msgOK, out.Message)
	assert.Equal(t, "id,status\r\n1,PENDING\r\n2,CLOSED\r\n3,OPEN\r\n4,OPEN\r\n", out.Data)
	assert.Equal(t, map[string]int{"PENDING": 1, "CLOSED": 1, "OPEN": 2}, out.Counts)
}

func TestSimulatePendingResolution_Conditional(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, out := post(t, srv.URL+"/simulate-pending-resolution", map[string]string{
		"csvContent": "id,status\n1,PENDING\n2,CLOSED\n",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "id,status\r\n1,OPEN\r\n2,CLOSED\r\n", out.Data)
}

func TestTransform_RequestChoosesPolicyAndColumn(t *testing.T) {
	srv := newTestServer(t, nil)
	_, out := post(t, srv.URL+"/transform", map[string]string{
		"csvContent":   "id,state\n1,PENDING\n",
		"policy":       "random",
		"statusColumn": "state",
	})
	assert.Equal(t, "id,state\r\n1,OPEN\r\n", out.Data)
}

func TestSimulate_EmptyCSVIsSuccess(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, out := post(t, srv.URL+"/simulate-external-support", map[string]string{"csvContent": ""})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, out.Data)
	assert.Equal(t, msgOK, out.Message)
}

func TestSimulate_Failures(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, out := post(t, srv.URL+"/simulate-external-support", map[string]string{"csvContent": "id,status\n1\n"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, msgSimulationFail, out.Message)
	assert.Empty(t, out.Data)

	resp, _ = post(t, srv.URL+"/transform", map[string]string{"csvContent": "id\n1\n", "policy": "dice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := http.Post(srv.URL+"/simulate-external-support", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestRunAutomation(t *testing.T) {
	auto := &fakeAutomation{res: &pipeline.Result{ID: "r1", CSV: "id,status\r\n1,OPEN\r\n", Rows: 1}}
	srv := newTestServer(t, auto)
	resp, out := post(t, srv.URL+"/run-automation", struct{}{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "id,status\r\n1,OPEN\r\n", out.Data)

	auto.err = errors.New("backend down")
	resp, out = post(t, srv.URL+"/run-automation", struct{}{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, msgAutomationFail, out.Message)
}

func TestRunAutomation_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := post(t, srv.URL+"/run-automation", struct{}{})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealthAndCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/simulate-external-support", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Less(t, resp.StatusCode, 300)
}
