package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/travelmesh/core"
)

func TestRecorder_Hook(t *testing.T) {
	r := New()
	hook := r.Hook()

	in := core.NewUserMessage("hi")
	hook("WeatherExpert", in, core.NewMessage("WeatherExpert", "sunny", nil), 300*time.Millisecond)
	hook("WeatherExpert", in, core.NewMessage("WeatherExpert", "warming up", map[string]any{
		core.MetaError:    "model_loading",
		core.MetaProvider: "huggingface",
	}), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.dispatches.WithLabelValues("WeatherExpert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dispatches.WithLabelValues("WeatherExpert", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerErrors.WithLabelValues("huggingface", "model_loading")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.dispatchDuration))
}

func TestRecorder_ObserveGuide(t *testing.T) {
	r := New()
	r.ObserveGuide(true)
	r.ObserveGuide(true)
	r.ObserveGuide(false)

	expected := `
# HELP travelmesh_travel_guides_total Travel guide compositions by outcome
# TYPE travelmesh_travel_guides_total counter
travelmesh_travel_guides_total{status="fallback"} 1
travelmesh_travel_guides_total{status="ok"} 2
`
	require.NoError(t, testutil.CollectAndCompare(r.guides, strings.NewReader(expected)))
}

func TestRecorder_Handler(t *testing.T) {
	r := New(func(o *Options) { o.Namespace = "test" })
	r.ObserveGuide(true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_travel_guides_total{status="ok"} 1`)
}

func TestRecorder_Isolated(t *testing.T) {
	a, b := New(), New()
	a.ObserveGuide(true)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.guides.WithLabelValues("ok")))
}
