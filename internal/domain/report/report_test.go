package report_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
)

func TestEventID(t *testing.T) {
	Convey("Given event texts", t, func() {
		Convey("Then ids are lower-case with hyphen-collapsed separators", func() {
			So(report.EventID("Chat spams F"), ShouldEqual, "chat-spams-f")
			So(report.EventID("chat   SPAMS f!"), ShouldEqual, "chat-spams-f")
			So(report.EventID("  Streamer dies... twice  "), ShouldEqual, "streamer-dies-twice")
		})

		Convey("Then differently phrased texts converge on one id", func() {
			So(report.EventID("CHAT SPAMS F"), ShouldEqual, report.EventID("chat spams f"))
		})
	})
}

func TestAggregator(t *testing.T) {
	ctx := context.Background()
	alice := model.Reporter{UserID: "u1", Username: "alice"}
	bob := model.Reporter{UserID: "u2", Username: "bob"}

	Convey("Given a fresh aggregator", t, func() {
		a := report.New()

		Convey("When the first report arrives", func() {
			ev, added := a.Report(ctx, "Chat spams F", alice)

			Convey("Then a pending event is created", func() {
				So(added, ShouldBeTrue)
				So(ev.ID, ShouldEqual, "chat-spams-f")
				So(ev.Text, ShouldEqual, "Chat spams F")
				So(ev.Status, ShouldEqual, model.EventPending)
				So(len(ev.ReportedBy), ShouldEqual, 1)
				So(a.Size(ctx), ShouldEqual, 1)
			})

			Convey("And the same reporter reports again", func() {
				ev, added := a.Report(ctx, "chat SPAMS f!", alice)

				Convey("Then it is a no-op on the same event", func() {
					So(added, ShouldBeFalse)
					So(ev.ID, ShouldEqual, "chat-spams-f")
					So(len(ev.ReportedBy), ShouldEqual, 1)
					So(a.Size(ctx), ShouldEqual, 1)
				})
			})

			Convey("And a second reporter reports the same event", func() {
				ev, added := a.Report(ctx, "chat spams f", bob)

				Convey("Then the reporter list grows without a new event", func() {
					So(added, ShouldBeTrue)
					So(len(ev.ReportedBy), ShouldEqual, 2)
					So(a.Size(ctx), ShouldEqual, 1)
				})
			})

			Convey("And the event is confirmed", func() {
				got, err := a.Adjudicate(ctx, "chat-spams-f", true)

				Convey("Then it moves to history with a timestamp", func() {
					So(err, ShouldBeNil)
					So(got.Status, ShouldEqual, model.EventConfirmed)
					So(got.ConfirmedAt, ShouldNotBeNil)
					So(a.Size(ctx), ShouldEqual, 0)
					So(len(a.History(ctx)), ShouldEqual, 1)
				})

				Convey("Then adjudicating it again fails", func() {
					_, err := a.Adjudicate(ctx, "chat-spams-f", false)
					So(err, ShouldEqual, report.ErrEventNotFound)
				})
			})

			Convey("And the event is rejected", func() {
				got, err := a.Adjudicate(ctx, "chat-spams-f", false)

				Convey("Then it leaves pending without a confirmation time", func() {
					So(err, ShouldBeNil)
					So(got.Status, ShouldEqual, model.EventRejected)
					So(got.ConfirmedAt, ShouldBeNil)
					So(a.Size(ctx), ShouldEqual, 0)
				})
			})
		})

		Convey("When adjudicating an unknown id", func() {
			_, err := a.Adjudicate(ctx, "never-reported", true)
			So(err, ShouldEqual, report.ErrEventNotFound)
		})
	})

	Convey("Given reports arriving over time", t, func() {
		now := time.Unix(1000, 0)
		a := report.New(report.WithClock(func() time.Time {
			now = now.Add(time.Second)
			return now
		}))

		a.Report(ctx, "second event", alice)
		a.Report(ctx, "third event", alice)
		a.Report(ctx, "first event", bob)

		Convey("Then Pending orders by first report time", func() {
			pending := a.Pending(ctx)
			So(len(pending), ShouldEqual, 3)
			So(pending[0].ID, ShouldEqual, "second-event")
			So(pending[1].ID, ShouldEqual, "third-event")
			So(pending[2].ID, ShouldEqual, "first-event")
		})

		Convey("Then a snapshot round trip preserves state", func() {
			_, err := a.Adjudicate(ctx, "second-event", true)
			So(err, ShouldBeNil)

			restored := report.New()
			restored.Restore(ctx, a.Snapshot(ctx))
			So(restored.Size(ctx), ShouldEqual, 2)
			So(len(restored.History(ctx)), ShouldEqual, 1)

			ev, added := restored.Report(ctx, "third event", alice)
			So(added, ShouldBeFalse)
			So(len(ev.ReportedBy), ShouldEqual, 1)
		})
	})
}
