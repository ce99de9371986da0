package api

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestErrorHelpers(t *testing.T) {
	convey.Convey("Given the API error kinds", t, func() {
		convey.Convey("Then ErrServe should be defined", func() {
			convey.So(ErrServe, convey.ShouldNotBeNil)
			convey.So(ErrServe.Error(), convey.ShouldEqual, "http serve failed")
		})

		convey.Convey("Then Wrap keeps the cause visible", func() {
			cause := errors.New("boom")
			err := Wrap("api.test", cause)
			convey.So(errors.Is(err, cause), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldEqual, "api.test: boom")
		})

		convey.Convey("Then NewKind scopes a sentinel to an operation", func() {
			err := NewKind("api.test", ErrBadRequest)
			convey.So(errors.Is(err, ErrBadRequest), convey.ShouldBeTrue)
		})

		convey.Convey("Then WrapKind keeps the kind and the cause text", func() {
			cause := errors.New("boom")
			err := WrapKind("api.test", ErrServe, cause)
			convey.So(errors.Is(err, ErrServe), convey.ShouldBeTrue)
			convey.So(errors.Is(err, cause), convey.ShouldBeFalse)
			convey.So(err.Error(), convey.ShouldContainSubstring, "boom")
		})
	})
}
