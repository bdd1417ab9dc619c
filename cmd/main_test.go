package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/config"
	"github.com/okian/footprint/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestConfigToService(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		t.Setenv("FOOTPRINT_ADDR", ":8080")
		t.Setenv("FOOTPRINT_QUEUE_SIZE", "1000")
		t.Setenv("FOOTPRINT_WORKER_COUNT", "2")
		t.Setenv("FOOTPRINT_MAX_BATCH_ITEMS", "5")

		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)
		convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
		convey.So(cfg.QueueSize, convey.ShouldEqual, 1000)

		convey.Convey("When the service is built from it", func() {
			svc := app.New(serviceOptions(cfg, logger.Get())...)
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			convey.Convey("Then the limits are applied", func() {
				stats := svc.GetStats()
				convey.So(stats["workerCount"], convey.ShouldEqual, 2)
				convey.So(stats["maxBatchItems"], convey.ShouldEqual, 5)
				convey.So(stats["queueFree"], convey.ShouldEqual, 1000)
			})

			convey.Convey("Then the mux serves docs and the API", func() {
				mux := newMux(svc)
				for _, path := range []string{"/healthz", "/openapi.yaml", "/api-docs", "/v1/facets", "/stats", "/metrics"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then the service metrics update without panicking", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		t.Setenv("FOOTPRINT_ADDR", "")

		convey.Convey("Then configuration loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestHTTPServer(t *testing.T) {
	convey.Convey("Given a new HTTP server", t, func() {
		srv := newHTTPServer(":0", http.NewServeMux())

		convey.Convey("Then the timeouts are set", func() {
			convey.So(srv.ReadTimeout, convey.ShouldEqual, readTimeout)
			convey.So(srv.WriteTimeout, convey.ShouldEqual, writeTimeout)
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.IdleTimeout, convey.ShouldEqual, idleTimeout)
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the metrics updaters", t, func() {
		convey.Convey("Then they stop with their context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, app.New()) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then system metrics update without panicking", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then a stopped service reports no gauges", func() {
			convey.So(func() { updateServiceMetrics(app.New()) }, convey.ShouldNotPanic)
		})
	})
}
