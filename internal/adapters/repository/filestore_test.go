package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/streamkit/bingo/internal/adapters/repository"
	"github.com/streamkit/bingo/internal/domain/deck"
	"github.com/streamkit/bingo/internal/domain/ledger"
	"github.com/streamkit/bingo/internal/domain/model"
	"github.com/streamkit/bingo/internal/domain/report"
)

func sampleSnapshot() repository.Snapshot {
	confirmed := time.Unix(2000, 0).UTC()
	return repository.Snapshot{
		Decks: deck.Snapshot{
			Decks: []model.Deck{
				{ID: "base", Name: "Base", Type: model.DeckMain, Events: []string{"a", "b"}, CreatedAt: time.Unix(1, 0).UTC()},
			},
			ActiveDeckID: "base",
		},
		Players: []model.PlayerState{
			{
				PlayerID: "u1",
				Username: "alice",
				DeckID:   "base",
				Card:     model.Grid{{"a", "b"}, {"c", "d"}},
				Checked: map[model.Position]bool{
					{Row: 0, Col: 1}: true,
				},
				ConfirmedTexts: map[string]bool{"a": true},
			},
		},
		Events: report.Snapshot{
			Pending: []model.PendingEvent{
				{ID: "a", Text: "a", Status: model.EventPending, FirstReportedAt: time.Unix(1500, 0).UTC(),
					ReportedBy: []model.Reporter{{UserID: "u1", Username: "alice"}}},
			},
			History: []model.PendingEvent{
				{ID: "b", Text: "b", Status: model.EventConfirmed, ConfirmedAt: &confirmed},
			},
		},
		Wins: ledger.Snapshot{
			Submissions: []model.WinSubmission{
				{ID: "sub-1", PlayerID: "u1", Username: "alice", Platform: "twitch",
					Status: model.SubmissionConfirmed, Placement: 1, Points: 100,
					CompletedAt: time.Unix(1800, 0).UTC(), SubmittedAt: time.Unix(1900, 0).UTC()},
			},
		},
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store on an empty directory", t, func() {
		dir := t.TempDir()
		s, err := repository.NewFileStore(repository.WithDir(dir))
		So(err, ShouldBeNil)

		Convey("Then loading yields an empty snapshot", func() {
			snap, err := s.Load(ctx)
			So(err, ShouldBeNil)
			So(snap.Players, ShouldBeEmpty)
			So(snap.Decks.Decks, ShouldBeEmpty)
			So(snap.Events.Pending, ShouldBeEmpty)
			So(snap.Wins.Submissions, ShouldBeEmpty)
		})

		Convey("When saving a snapshot", func() {
			So(s.Save(ctx, sampleSnapshot()), ShouldBeNil)

			Convey("Then one JSON file exists per concern", func() {
				for _, name := range []string{
					"decks.json", "players.json", "pending-events.json",
					"event-history.json", "win-submissions.json",
				} {
					_, err := os.Stat(filepath.Join(dir, name))
					So(err, ShouldBeNil)
				}
			})

			Convey("Then a reload reproduces the state", func() {
				got, err := s.Load(ctx)
				So(err, ShouldBeNil)

				want := sampleSnapshot()
				So(got.Decks, ShouldResemble, want.Decks)
				So(got.Players, ShouldResemble, want.Players)
				So(got.Events, ShouldResemble, want.Events)
				So(got.Wins, ShouldResemble, want.Wins)
			})
		})

		Convey("When a state file is corrupt", func() {
			So(os.WriteFile(filepath.Join(dir, "players.json"), []byte("{nope"), 0o644), ShouldBeNil)
			_, err := s.Load(ctx)

			Convey("Then the load fails with a persistence error", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, repository.ErrPersistence)
			})
		})

		Convey("When exporting and importing a backup", func() {
			path, err := s.Export(ctx, sampleSnapshot())
			So(err, ShouldBeNil)

			got, err := s.Import(ctx, path)
			So(err, ShouldBeNil)
			So(got.Players, ShouldResemble, sampleSnapshot().Players)
			So(got.SavedAt.IsZero(), ShouldBeFalse)
		})
	})
}
