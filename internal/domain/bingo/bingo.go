// Package bingo contains the pure win-detection logic for card grids.
package bingo

import (
	"fmt"

	"github.com/streamkit/bingo/internal/domain/model"
)

// Kind labels the line that completed a bingo.
type Kind string

// Line kinds, in scan order.
const (
	KindRow          Kind = "row"
	KindColumn       Kind = "column"
	KindMainDiagonal Kind = "diagonal-main"
	KindAntiDiagonal Kind = "diagonal-anti"
)

// Result describes the outcome of a win check. Index is the zero-based row
// or column for row/column wins and 0 for diagonals.
type Result struct {
	Won   bool
	Kind  Kind
	Index int
}

// Label renders a human-readable bingo type, e.g. "row 1" or
// "diagonal (main)". Row and column labels are one-based.
func (r Result) Label() string {
	switch r.Kind {
	case KindRow:
		return fmt.Sprintf("row %d", r.Index+1)
	case KindColumn:
		return fmt.Sprintf("column %d", r.Index+1)
	case KindMainDiagonal:
		return "diagonal (main)"
	case KindAntiDiagonal:
		return "diagonal (anti)"
	default:
		return ""
	}
}

// FillFunc reports whether the cell at (row, col) counts as filled.
type FillFunc func(row, col int) bool

// Evaluate scans the grid for a fully satisfied line: rows 0..N-1 first,
// then columns 0..N-1, then the main diagonal, then the anti diagonal. The
// first satisfied line wins even when several lines complete at once.
// Pure function: no mutation, no I/O.
func Evaluate(grid model.Grid, isFilled FillFunc) Result {
	size := grid.Size()

	for row := 0; row < size; row++ {
		complete := true
		for col := 0; col < size; col++ {
			if !isFilled(row, col) {
				complete = false
				break
			}
		}
		if complete {
			return Result{Won: true, Kind: KindRow, Index: row}
		}
	}

	for col := 0; col < size; col++ {
		complete := true
		for row := 0; row < size; row++ {
			if !isFilled(row, col) {
				complete = false
				break
			}
		}
		if complete {
			return Result{Won: true, Kind: KindColumn, Index: col}
		}
	}

	main, anti := true, true
	for i := 0; i < size; i++ {
		if !isFilled(i, i) {
			main = false
		}
		if !isFilled(i, size-1-i) {
			anti = false
		}
	}
	if main {
		return Result{Won: true, Kind: KindMainDiagonal}
	}
	if anti {
		return Result{Won: true, Kind: KindAntiDiagonal}
	}

	return Result{}
}

// SelfReported is the lenient fill policy: a cell is filled when it is FREE
// or the player has checked its position.
func SelfReported(st *model.PlayerState) FillFunc {
	return func(row, col int) bool {
		if st.Card[row][col] == model.FreeCell {
			return true
		}
		return st.Checked[model.Position{Row: row, Col: col}]
	}
}

// ConfirmedOrSelfReported is the strict-leaning policy used once streamer
// confirmation is in play: a cell is filled when it is FREE, its text has
// been confirmed by the streamer, or the player has checked its position.
func ConfirmedOrSelfReported(st *model.PlayerState) FillFunc {
	return func(row, col int) bool {
		cell := st.Card[row][col]
		if cell == model.FreeCell {
			return true
		}
		if st.ConfirmedTexts[cell] {
			return true
		}
		return st.Checked[model.Position{Row: row, Col: col}]
	}
}

// ConfirmedOnly requires streamer confirmation for every non-FREE cell.
func ConfirmedOnly(st *model.PlayerState) FillFunc {
	return func(row, col int) bool {
		cell := st.Card[row][col]
		return cell == model.FreeCell || st.ConfirmedTexts[cell]
	}
}

// Policy builds a FillFunc for a player state.
type Policy func(st *model.PlayerState) FillFunc

// Fill policy names accepted in configuration.
const (
	PolicySelfReported            = "self-report"
	PolicyConfirmedOrSelfReported = "confirmed-or-self-report"
	PolicyConfirmedOnly           = "confirmed-only"
)

// PolicyByName resolves a configured policy name. Unknown names fall back
// to confirmed-or-self-report, the current production behavior.
func PolicyByName(name string) Policy {
	switch name {
	case PolicySelfReported:
		return SelfReported
	case PolicyConfirmedOnly:
		return ConfirmedOnly
	default:
		return ConfirmedOrSelfReported
	}
}
