package logger_test

import (
	"context"
	"testing"

	"github.com/lagiland/scoreboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)
			So(func() {
				log.Info(context.Background(), "hello",
					logger.String("k", "v"),
					logger.Int("n", 1),
					logger.Float64("f", 1.5),
				)
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a scoped logger", func() {
			So(logger.Named("store"), ShouldNotBeNil)
		})

		Convey("Then valid level strings are accepted", func() {
			for _, level := range []string{"debug", "info", "WARN", "warning", "error", ""} {
				So(logger.SetLevelString(level), ShouldBeNil)
			}
		})

		Convey("Then an unknown level string is rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
