package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/okian/pitchline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.BriefRatePerSec, convey.ShouldEqual, 5)
			convey.So(cfg.BriefBurst, convey.ShouldEqual, 10)
			convey.So(cfg.DefaultContainerWidth, convey.ShouldEqual, 960)
		})
	})
}
