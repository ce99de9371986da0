package card_test

import (
	"fmt"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/streamkit/bingo/internal/domain/card"
	"github.com/streamkit/bingo/internal/domain/model"
)

func pool(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("event %d", i)
	}
	return out
}

func TestRequired(t *testing.T) {
	Convey("Given grid sizes", t, func() {
		Convey("Then odd sizes reserve the center cell", func() {
			So(card.Required(3), ShouldEqual, 8)
			So(card.Required(5), ShouldEqual, 24)
			So(card.Required(7), ShouldEqual, 48)
		})

		Convey("Then even sizes need a full grid of events", func() {
			So(card.Required(4), ShouldEqual, 16)
			So(card.Required(6), ShouldEqual, 36)
		})
	})
}

func TestGenerate(t *testing.T) {
	Convey("Given a card generator", t, func() {
		g := card.New()

		Convey("When generating a 3x3 grid from 8 events", func() {
			grid, err := g.Generate(pool(8), 3)

			Convey("Then the grid has a FREE center and distinct cells", func() {
				So(err, ShouldBeNil)
				So(grid.Size(), ShouldEqual, 3)
				So(grid[1][1], ShouldEqual, model.FreeCell)

				seen := make(map[string]bool)
				for _, row := range grid {
					for _, cell := range row {
						if cell == model.FreeCell {
							continue
						}
						So(seen[cell], ShouldBeFalse)
						seen[cell] = true
					}
				}
				So(len(seen), ShouldEqual, 8)
			})
		})

		Convey("When generating a 4x4 grid", func() {
			grid, err := g.Generate(pool(16), 4)

			Convey("Then no cell is FREE", func() {
				So(err, ShouldBeNil)
				for _, row := range grid {
					So(row, ShouldNotContain, model.FreeCell)
				}
			})
		})

		Convey("When the pool is too small", func() {
			_, err := g.Generate(pool(7), 3)

			Convey("Then it reports insufficient events", func() {
				So(err, ShouldEqual, card.ErrInsufficientEvents)
			})
		})

		Convey("When the size is out of range", func() {
			_, err := g.Generate(pool(100), 8)
			So(err, ShouldEqual, card.ErrInvalidSize)

			_, err = g.Generate(pool(100), 2)
			So(err, ShouldEqual, card.ErrInvalidSize)
		})
	})

	Convey("Given two generators seeded identically", t, func() {
		a := card.New(card.WithRand(rand.New(rand.NewSource(42))))
		b := card.New(card.WithRand(rand.New(rand.NewSource(42))))

		Convey("Then they draw identical grids", func() {
			ga, err := a.Generate(pool(30), 5)
			So(err, ShouldBeNil)
			gb, err := b.Generate(pool(30), 5)
			So(err, ShouldBeNil)
			So(ga, ShouldResemble, gb)
		})
	})
}
