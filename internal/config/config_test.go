package config_test

import (
	"testing"

	"github.com/streamkit/bingo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.BingoSize, convey.ShouldEqual, 5)
			convey.So(cfg.FillPolicy, convey.ShouldEqual, "confirmed-or-self-report")
			convey.So(cfg.Points, convey.ShouldResemble, []int{100, 75, 50, 25, 10})
			convey.So(cfg.MaxLeaderboardLimit, convey.ShouldEqual, 100)
			convey.So(cfg.NotifyBufferSize, convey.ShouldEqual, 64)
		})
	})
}
