package ops_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loremdai/tennishealth/internal/adapters/http/ops"
	"github.com/loremdai/tennishealth/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpsEndpoints(t *testing.T) {
	Convey("Given the operational handler", t, func() {
		mux := http.NewServeMux()
		ops.NewHandler().Register(mux)

		Convey("When requesting /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it should report ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When requesting /metrics", func() {
			metrics.RecordFileRead()

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it should expose the pipeline counters", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "tennishealth_pipeline_files_read_total")
			})
		})
	})
}
