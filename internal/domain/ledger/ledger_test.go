package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
)

// newLedger returns a ledger with a fixed clock and sequential ids.
func newLedger(opts ...ledger.Option) *ledger.Ledger {
	n := 0
	base := []ledger.Option{
		ledger.WithClock(func() time.Time { return time.Unix(5000, 0) }),
		ledger.WithIDFunc(func() string {
			n++
			return fmt.Sprintf("sub-%d", n)
		}),
	}
	return ledger.New(append(base, opts...)...)
}

func submission(player string, completed time.Time) model.WinSubmission {
	return model.WinSubmission{
		PlayerID:         player,
		Username:         player,
		Platform:         "twitch",
		PlatformUsername: player,
		BingoType:        "row 1",
		CompletedAt:      completed,
	}
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	Convey("Given a ledger", t, func() {
		l := newLedger()

		Convey("When submitting a win claim", func() {
			id, err := l.Submit(ctx, submission("alice", time.Unix(100, 0)))

			Convey("Then it is stored pending with stamped fields", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "sub-1")

				sub, err := l.Get(ctx, id)
				So(err, ShouldBeNil)
				So(sub.Status, ShouldEqual, model.SubmissionPending)
				So(sub.SubmittedAt.Equal(time.Unix(5000, 0)), ShouldBeTrue)
				So(sub.Placement, ShouldEqual, 0)
				So(sub.Points, ShouldEqual, 0)
				So(l.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When looking up an unknown submission", func() {
			_, err := l.Get(ctx, "nope")
			So(err, ShouldEqual, ledger.ErrSubmissionNotFound)
		})
	})
}

func TestAdjudicate(t *testing.T) {
	ctx := context.Background()

	Convey("Given submissions completed in a known order", t, func() {
		l := newLedger()
		first, _ := l.Submit(ctx, submission("alice", time.Unix(100, 0)))
		second, _ := l.Submit(ctx, submission("bob", time.Unix(200, 0)))
		third, _ := l.Submit(ctx, submission("carol", time.Unix(300, 0)))

		Convey("When confirmed out of achievement order", func() {
			_, err := l.Adjudicate(ctx, third, true)
			So(err, ShouldBeNil)
			_, err = l.Adjudicate(ctx, first, true)
			So(err, ShouldBeNil)

			Convey("Then placements follow completion time, not confirmation order", func() {
				a, _ := l.Get(ctx, first)
				c, _ := l.Get(ctx, third)
				So(a.Placement, ShouldEqual, 1)
				So(a.Points, ShouldEqual, 100)
				So(c.Placement, ShouldEqual, 2)
				So(c.Points, ShouldEqual, 75)
			})

			Convey("And a later confirmation shifts everyone behind it", func() {
				_, err := l.Adjudicate(ctx, second, true)
				So(err, ShouldBeNil)

				b, _ := l.Get(ctx, second)
				c, _ := l.Get(ctx, third)
				So(b.Placement, ShouldEqual, 2)
				So(b.Points, ShouldEqual, 75)
				So(c.Placement, ShouldEqual, 3)
				So(c.Points, ShouldEqual, 50)
			})
		})

		Convey("When a submission is rejected", func() {
			got, err := l.Adjudicate(ctx, second, false)

			Convey("Then it keeps no placement and leaves pending", func() {
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, model.SubmissionRejected)
				So(got.RejectedAt, ShouldNotBeNil)
				So(got.Placement, ShouldEqual, 0)

				pending := l.Pending(ctx)
				So(len(pending), ShouldEqual, 2)
				So(pending[0].ID, ShouldEqual, first)
				So(pending[1].ID, ShouldEqual, third)
			})
		})

		Convey("When re-adjudicating a settled submission", func() {
			_, err := l.Adjudicate(ctx, first, true)
			So(err, ShouldBeNil)

			Convey("Then a late reject cannot strip the placement", func() {
				_, err := l.Adjudicate(ctx, first, false)
				So(err, ShouldEqual, ledger.ErrAlreadyAdjudicated)

				a, _ := l.Get(ctx, first)
				So(a.Status, ShouldEqual, model.SubmissionConfirmed)
				So(a.Placement, ShouldEqual, 1)
				So(a.Points, ShouldEqual, 100)
			})

			Convey("And a rejected submission stays rejected", func() {
				_, err := l.Adjudicate(ctx, second, false)
				So(err, ShouldBeNil)
				_, err = l.Adjudicate(ctx, second, true)
				So(err, ShouldEqual, ledger.ErrAlreadyAdjudicated)
			})
		})

		Convey("When adjudicating an unknown id", func() {
			_, err := l.Adjudicate(ctx, "nope", true)
			So(err, ShouldEqual, ledger.ErrSubmissionNotFound)
		})
	})

	Convey("Given a short points table", t, func() {
		l := newLedger(ledger.WithPoints([]int{10}))
		first, _ := l.Submit(ctx, submission("alice", time.Unix(100, 0)))
		second, _ := l.Submit(ctx, submission("bob", time.Unix(200, 0)))
		l.Adjudicate(ctx, first, true)
		l.Adjudicate(ctx, second, true)

		Convey("Then placements past the table score zero", func() {
			a, _ := l.Get(ctx, first)
			b, _ := l.Get(ctx, second)
			So(a.Points, ShouldEqual, 10)
			So(b.Placement, ShouldEqual, 2)
			So(b.Points, ShouldEqual, 0)
		})
	})
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()

	Convey("Given confirmed wins across several players", t, func() {
		l := newLedger()
		ids := make([]string, 0, 4)
		for i, player := range []string{"alice", "bob", "alice", "carol"} {
			id, _ := l.Submit(ctx, submission(player, time.Unix(int64(100*(i+1)), 0)))
			ids = append(ids, id)
		}
		for _, id := range ids {
			_, err := l.Adjudicate(ctx, id, true)
			So(err, ShouldBeNil)
		}

		Convey("Then rows aggregate per player and sort by points", func() {
			entries := l.Leaderboard(ctx, 0)
			So(len(entries), ShouldEqual, 3)

			// alice: placements 1 and 3 -> 100 + 50, two wins.
			So(entries[0].Username, ShouldEqual, "alice")
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[0].TotalPoints, ShouldEqual, 150)
			So(entries[0].Wins, ShouldEqual, 2)
			So(entries[0].BestPlacement, ShouldEqual, 1)

			So(entries[1].Username, ShouldEqual, "bob")
			So(entries[1].TotalPoints, ShouldEqual, 75)
			So(entries[2].Username, ShouldEqual, "carol")
			So(entries[2].TotalPoints, ShouldEqual, 25)
		})

		Convey("Then a limit truncates before ranks are assigned", func() {
			entries := l.Leaderboard(ctx, 2)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].Rank, ShouldEqual, 1)
			So(entries[1].Rank, ShouldEqual, 2)
		})

		Convey("Then a snapshot round trip reproduces the leaderboard", func() {
			restored := ledger.New()
			restored.Restore(ctx, l.Snapshot(ctx))
			So(restored.Leaderboard(ctx, 0), ShouldResemble, l.Leaderboard(ctx, 0))
		})
	})

	Convey("Given players tied on points", t, func() {
		l := newLedger(ledger.WithPoints([]int{50, 50}))
		first, _ := l.Submit(ctx, submission("alice", time.Unix(100, 0)))
		second, _ := l.Submit(ctx, submission("bob", time.Unix(200, 0)))
		l.Adjudicate(ctx, first, true)
		l.Adjudicate(ctx, second, true)

		Convey("Then equal wins break the tie by earlier last win", func() {
			entries := l.Leaderboard(ctx, 0)
			So(len(entries), ShouldEqual, 2)
			So(entries[0].Username, ShouldEqual, "alice")
			So(entries[1].Username, ShouldEqual, "bob")
		})
	})
}
