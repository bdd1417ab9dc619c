package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/okian/footprint/internal/adapters/http/api"
	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestAPIWithService(t *testing.T) {
	Convey("Given the API backed by a running service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(mux)

		Convey("When a food estimate is posted", func() {
			w := do(mux, http.MethodPost, "/v1/estimates/food", `{"menuType":"mixed","mealsServed":1000}`)

			Convey("Then the engine result is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var est model.Estimate
				So(json.Unmarshal(w.Body.Bytes(), &est), ShouldBeNil)
				So(est.Facet, ShouldEqual, "food")
				So(est.Result.EstimatedMassKg, ShouldEqual, 1945)
				So(est.Equivalency.IsEmpty, ShouldBeFalse)
			})
		})

		Convey("When a batch is posted and polled", func() {
			w := do(mux, http.MethodPost, "/v1/batches", `{"items":[{"facet":"food","input":{"menuType":"mixed","mealsServed":1000}}]}`)
			So(w.Code, ShouldEqual, http.StatusAccepted)
			var receipt service.BatchReceipt
			So(json.Unmarshal(w.Body.Bytes(), &receipt), ShouldBeNil)

			var b model.Batch
			deadline := time.Now().Add(5 * time.Second)
			for time.Now().Before(deadline) {
				r := do(mux, http.MethodGet, "/v1/batches/"+receipt.ID, "")
				So(r.Code, ShouldEqual, http.StatusOK)
				So(json.Unmarshal(r.Body.Bytes(), &b), ShouldBeNil)
				if b.Status == model.StatusCompleted {
					break
				}
				time.Sleep(5 * time.Millisecond)
			}

			Convey("Then the batch completes with the item estimate", func() {
				So(b.Status, ShouldEqual, model.StatusCompleted)
				So(b.TotalMassKg, ShouldEqual, 1945)
				So(b.Outcomes[0].Estimate.Result.EstimatedMassKg, ShouldEqual, 1945)
			})
		})
	})
}
