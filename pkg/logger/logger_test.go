package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get should return a logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Named("test"), ShouldNotBeNil)
			})
		})

		Convey("When initialized with the json format", func() {
			buf := &bytes.Buffer{}
			So(Init(WithFormat(FormatJSON), WithSink(zapcore.AddSync(buf))), ShouldBeNil)
			defer func() { _ = Init() }()

			Get().Info(context.Background(), "hello", String("k", "v"))

			Convey("Then the record is encoded as json", func() {
				So(buf.String(), ShouldContainSubstring, `"msg":"hello"`)
				So(buf.String(), ShouldContainSubstring, `"k":"v"`)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		defer SetLevel(zapcore.InfoLevel)

		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "info", "", "WARN", "warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(SetLevelString("loud"), ShouldNotBeNil)
		})

		Convey("Then debug records are filtered until the level is lowered", func() {
			buf := &bytes.Buffer{}
			So(Init(WithSink(zapcore.AddSync(buf))), ShouldBeNil)
			defer func() { _ = Init() }()

			Get().Debug(context.Background(), "hidden")
			So(buf.String(), ShouldNotContainSubstring, "hidden")

			So(SetLevelString("debug"), ShouldBeNil)
			Get().Debug(context.Background(), "visible")
			So(buf.String(), ShouldContainSubstring, "visible")
		})
	})
}

func TestFromZap(t *testing.T) {
	Convey("Given a logger wrapping an observed zap core", t, func() {
		core, logs := observer.New(zapcore.DebugLevel)
		l := FromZap(zap.New(core)).Named("timeline")

		Convey("When logging with fields", func() {
			l.Warn(context.Background(), "no reserve", String("position", "guardOne"), Int("rank", 4), Error(errors.New("boom")))

			Convey("Then the fields are preserved", func() {
				So(logs.Len(), ShouldEqual, 1)
				entry := logs.All()[0]
				So(entry.LoggerName, ShouldEqual, "timeline")
				So(entry.Level, ShouldEqual, zapcore.WarnLevel)
				ctx := entry.ContextMap()
				So(ctx["position"], ShouldEqual, "guardOne")
				So(ctx["rank"], ShouldEqual, int64(4))
				So(ctx["error"], ShouldEqual, "boom")
			})
		})
	})

	Convey("Given a nil zap logger", t, func() {
		Convey("Then FromZap falls back to a no-op", func() {
			So(func() { FromZap(nil).Info(context.Background(), "dropped") }, ShouldNotPanic)
			So(func() { Nop().Error(context.Background(), "dropped") }, ShouldNotPanic)
		})
	})
}
