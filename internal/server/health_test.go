package server_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/stretchr/testify/require"
)

type MockStorePinger struct {
	ShouldFail bool
}

func (m *MockStorePinger) Ping(_ context.Context) error {
	if m.ShouldFail {
		return errors.New("mock store error")
	}
	return nil
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okServer.Close()

	brokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer brokenServer.Close()

	check := func(t *testing.T, store server.StorePinger, upstreams []server.Upstream) *httptest.ResponseRecorder {
		t.Helper()

		healthChecker := server.NewHealthChecker(store, upstreams, logger)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		return rr
	}

	t.Run("all systems ok", func(t *testing.T) {
		rr := check(t, &MockStorePinger{}, []server.Upstream{
			{Name: "picture_service", URL: okServer.URL},
			{Name: "quote_service", URL: okServer.URL},
		})

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"store":"ok","picture_service":"ok","quote_service":"ok"}`, rr.Body.String())
	})

	t.Run("store unavailable", func(t *testing.T) {
		rr := check(t, &MockStorePinger{ShouldFail: true}, []server.Upstream{
			{Name: "quote_service", URL: okServer.URL},
		})

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		require.JSONEq(t, `{"store":"unavailable","quote_service":"ok"}`, rr.Body.String())
	})

	t.Run("upstream degraded does not fail the check", func(t *testing.T) {
		rr := check(t, &MockStorePinger{}, []server.Upstream{
			{Name: "picture_service", URL: brokenServer.URL},
		})

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"store":"ok","picture_service":"degraded"}`, rr.Body.String())
	})

	t.Run("upstreams checked concurrently", func(t *testing.T) {
		arrived := make(chan struct{}, 2)
		// each upstream only answers ok once the other one has been asked too
		meetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			arrived <- struct{}{}
			deadline := time.After(2 * time.Second)
			for len(arrived) < 2 {
				select {
				case <-deadline:
					w.WriteHeader(http.StatusGatewayTimeout)
					return
				case <-time.After(10 * time.Millisecond):
				}
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer meetServer.Close()

		rr := check(t, &MockStorePinger{}, []server.Upstream{
			{Name: "picture_service", URL: meetServer.URL},
			{Name: "quote_service", URL: meetServer.URL},
		})

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"store":"ok","picture_service":"ok","quote_service":"ok"}`, rr.Body.String())
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		rr := check(t, &MockStorePinger{}, []server.Upstream{
			{Name: "quote_service", URL: "invalid_url"},
		})

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"store":"ok","quote_service":"unreachable"}`, rr.Body.String())
	})
}
