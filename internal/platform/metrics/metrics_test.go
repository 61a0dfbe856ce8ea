// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc-aweaver/techradar-1/internal/platform/events"
	"github.com/mc-aweaver/techradar-1/internal/platform/metrics"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(collector.Middleware)
	router.Get("/topics/{slug}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	for _, slug := range []string{"go", "rust"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/topics/"+slug, nil))
	}

	count, err := testutil.GatherAndCount(collector.Registry(), "techradar_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEventCounter(t *testing.T) {
	collector := metrics.New()
	subscriber := collector.EventCounter()

	require.NoError(t, subscriber.Handle(context.Background(), events.NewEvent("user.created", nil)))
	require.NoError(t, subscriber.Handle(context.Background(), events.NewEvent("user.created", nil)))

	count, err := testutil.GatherAndCount(collector.Registry(), "techradar_domain_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler_ServesExposition(t *testing.T) {
	recorder := httptest.NewRecorder()
	metrics.New().Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "go_goroutines")
}
