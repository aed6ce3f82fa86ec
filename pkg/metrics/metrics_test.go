package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lagiland/scoreboard/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithRegistry(registry))
		So(manager, ShouldNotBeNil)

		Convey("Then its metric families register without collision", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Counters report nothing before their first increment; gauges
			// and histograms appear immediately.
			So(families, ShouldNotBeNil)
		})
	})

	Convey("Given the global helpers", t, func() {
		Convey("When submissions and failures are recorded", func() {
			metrics.RecordSubmission(12.5)
			metrics.RecordDuplicateSubmission()
			metrics.RecordDeletion()
			metrics.RecordFeedbackFailure()
			metrics.RecordStoreError("create")
			metrics.RecordHTTPRequest("contestants", "POST", "201")
			metrics.RecordHTTPRequestDuration("contestants", "POST", "201", 12.5)

			Convey("Then the registry serves the counters", func() {
				n, err := testutil.GatherAndCount(metrics.GetRegistry(),
					"scoreboard_contest_submissions_total",
					"scoreboard_contest_feedback_failures_total",
					"scoreboard_contest_store_errors_total",
					"scoreboard_contest_http_requests_total",
				)
				So(err, ShouldBeNil)
				So(n, ShouldBeGreaterThanOrEqualTo, 4)
			})
		})

		Convey("When gauges are updated", func() {
			metrics.UpdateContestantCount(7)
			metrics.UpdateAverageScore(83.4)

			Convey("Then the gauge values are visible", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)

				values := map[string]float64{}
				for _, fam := range families {
					if len(fam.GetMetric()) == 1 && fam.GetMetric()[0].GetGauge() != nil {
						values[fam.GetName()] = fam.GetMetric()[0].GetGauge().GetValue()
					}
				}
				So(values["scoreboard_contest_contestants"], ShouldEqual, 7)
				So(values["scoreboard_contest_average_score"], ShouldEqual, 83.4)
			})
		})
	})
}
