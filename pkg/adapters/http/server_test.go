package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/quicktrace"
	"github.com/aretw0/quicktrace/internal/testutils"
	"github.com/aretw0/quicktrace/pkg/adapters/file"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/input"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *quicktrace.Engine) {
	t.Helper()
	engine := testutils.NewEngine(t)
	return NewHandler(engine, opts...), engine
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), quicktrace.Version)
}

func TestCreateSort_Sources(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		input []int
	}{
		{"Values", `{"values":[5,2,8]}`, []int{5, 2, 8}},
		{"Text", `{"input":" 5, 2 ,8 "}`, []int{5, 2, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)
			w := do(t, h, "POST", "/sort", tt.body)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

			var trace domain.Trace
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
			assert.Equal(t, "trace-1", trace.ID)
			assert.Equal(t, tt.input, trace.Input)
			assert.Equal(t, []int{2, 5, 8}, trace.Report.FinalArray)
			assert.Len(t, trace.Report.Steps, 13)
		})
	}
}

func TestCreateSort_Random(t *testing.T) {
	h, _ := newTestHandler(t, WithGenerator(input.NewGenerator(7)))

	w := do(t, h, "POST", "/sort", `{"random":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var trace domain.Trace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
	require.Len(t, trace.Input, input.DefaultCount)
	for _, v := range trace.Input {
		assert.GreaterOrEqual(t, v, input.DefaultMin)
		assert.LessOrEqual(t, v, input.DefaultMax)
	}

	w = do(t, h, "POST", "/sort", `{"random":true,"count":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
	assert.Len(t, trace.Input, 3)
}

func TestCreateSort_RandomDefaults(t *testing.T) {
	h, _ := newTestHandler(t,
		WithGenerator(input.NewGenerator(11)),
		WithRandomDefaults(5, 200, 203),
	)

	w := do(t, h, "POST", "/sort", `{"random":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var trace domain.Trace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trace))
	require.Len(t, trace.Input, 5)
	for _, v := range trace.Input {
		assert.GreaterOrEqual(t, v, 200)
		assert.LessOrEqual(t, v, 203)
	}
}

func TestCreateSort_InvalidInput(t *testing.T) {
	var kinds []string
	h, engine := newTestHandler(t, WithInvalidInputObserver(func(kind string) {
		kinds = append(kinds, kind)
	}))

	bodies := []string{
		`{"input":"1, x, 3"}`,
		`{"input":"` + strings.Repeat("1,", 20) + `1"}`,
		`{"values":[]}`,
		`{}`,
		`{"random":true,"count":21}`,
	}
	for _, body := range bodies {
		w := do(t, h, "POST", "/sort", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "no valid array", body)
	}

	assert.Equal(t, []string{"malformed", "oversize", "empty", "empty", "oversize"}, kinds)

	ids, err := engine.Traces(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	w := do(t, h, "POST", "/sort", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTraces_Lifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	require.Equal(t, http.StatusCreated, do(t, h, "POST", "/sort", `{"values":[5,2,8]}`).Code)

	w := do(t, h, "GET", "/traces", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["trace-1"]`, w.Body.String())

	w = do(t, h, "GET", "/traces/trace-1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"finalArray":[2,5,8]`)

	w = do(t, h, "GET", "/traces/trace-1/steps/12", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var step domain.Step
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.Equal(t, domain.StepCompleted, step.Kind)
	assert.True(t, step.Completed)

	w = do(t, h, "GET", "/traces/trace-1/steps/13", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/traces/trace-1/steps/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/traces/trace-1/graph", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(t, h, "DELETE", "/traces/trace-1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/traces/trace-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "GET", "/traces", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTraces_InvalidID(t *testing.T) {
	h := NewHandler(testutils.NewEngine(t, quicktrace.WithStore(file.New(t.TempDir()))))

	for _, target := range []string{"/traces/a..b", "/traces/a..b/steps/0", "/traces/a..b/graph"} {
		w := do(t, h, "GET", target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), "invalid trace id", target)
	}

	w := do(t, h, "DELETE", "/traces/a..b", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "GET", "/traces/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type brokenEngine struct{ Engine }

func (brokenEngine) Traces(context.Context) ([]string, error) {
	return nil, errors.New("store offline")
}

func TestListTraces_StoreFailure(t *testing.T) {
	h := NewHandler(brokenEngine{})
	w := do(t, h, "GET", "/traces", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "store offline")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quicktrace_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h, _ := newTestHandler(t, WithMetrics(reg))
	w := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quicktrace_test_total 1")

	h, _ = newTestHandler(t)
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, "OPTIONS", "/sort", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}
