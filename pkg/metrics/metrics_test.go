package metrics_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/streamkit/bingo/pkg/metrics"
)

func gatheredNames() map[string]bool {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		panic(err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestMetricsRegistry(t *testing.T) {
	Convey("Given the metrics registry", t, func() {
		So(metrics.GetRegistry(), ShouldNotBeNil)

		Convey("When recording game activity", func() {
			So(func() {
				metrics.RecordCardIssued()
				metrics.RecordCellMark()
				metrics.RecordCellUnmark()
				metrics.RecordBingoAchieved()
				metrics.UpdateActivePlayers(3)
				metrics.UpdateDeckCount(2)
				metrics.RecordEventReport()
				metrics.RecordDuplicateReport()
				metrics.RecordEventConfirmed()
				metrics.RecordEventRejected()
				metrics.UpdatePendingEvents(1)
				metrics.RecordWinSubmitted()
				metrics.RecordWinConfirmed()
				metrics.RecordWinRejected()
				metrics.UpdatePendingWins(1)
				metrics.RecordPersistenceError()
				metrics.RecordNotifyError()
				metrics.RecordHTTPRequest("cards", "POST", "201")
				metrics.RecordHTTPRequestDuration("cards", "POST", "201", 1.5)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(10)
				metrics.RecordSystemGCPauseTime(0.1)
			}, ShouldNotPanic)

			Convey("Then the counters are gatherable under the service namespace", func() {
				names := gatheredNames()
				So(names["streambingo_core_cards_issued_total"], ShouldBeTrue)
				So(names["streambingo_core_bingos_achieved_total"], ShouldBeTrue)
				So(names["streambingo_core_active_players"], ShouldBeTrue)
				So(names["streambingo_core_wins_submitted_total"], ShouldBeTrue)
				So(names["streambingo_core_http_requests_total"], ShouldBeTrue)
			})
		})
	})
}
