// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// FreeCell is the sentinel value placed at the center of odd-sized grids.
// It counts as filled under every fill policy.
const FreeCell = "FREE"

// DeckType distinguishes the single active main deck from addon decks.
type DeckType string

// Deck types.
const (
	DeckMain  DeckType = "main"
	DeckAddon DeckType = "addon"
)

// Deck is a named pool of candidate bingo-cell event strings. Decks are
// authored by streamer tooling and read-only to the core.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        DeckType  `json:"type"`
	Events      []string  `json:"events"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Grid is an immutable size x size matrix of cell values. Every non-FREE
// cell is unique within the grid.
type Grid [][]string

// Size returns the grid dimension.
func (g Grid) Size() int { return len(g) }

// Contains reports whether any non-FREE cell holds text.
func (g Grid) Contains(text string) bool {
	for _, row := range g {
		for _, cell := range row {
			if cell != FreeCell && cell == text {
				return true
			}
		}
	}
	return false
}

// Position identifies a cell by zero-based row and column.
type Position struct {
	Row int
	Col int
}

// MarshalText encodes a position as "row-col" so positions can key JSON maps.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d-%d", p.Row, p.Col)), nil
}

// UnmarshalText decodes the "row-col" form.
func (p *Position) UnmarshalText(text []byte) error {
	var row, col int
	if _, err := fmt.Sscanf(string(text), "%d-%d", &row, &col); err != nil {
		return fmt.Errorf("invalid position %q: %w", text, err)
	}
	p.Row, p.Col = row, col
	return nil
}

// Reporter identifies a player who reported an event.
type Reporter struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// EventStatus tracks adjudication of a crowd-reported event.
type EventStatus string

// Event statuses.
const (
	EventPending   EventStatus = "pending"
	EventConfirmed EventStatus = "confirmed"
	EventRejected  EventStatus = "rejected"
)

// PendingEvent is a crowd-reported occurrence awaiting streamer adjudication.
// ReportedBy never contains the same reporter twice.
type PendingEvent struct {
	ID              string      `json:"id"`
	Text            string      `json:"text"`
	ReportedBy      []Reporter  `json:"reported_by"`
	FirstReportedAt time.Time   `json:"first_reported_at"`
	Status          EventStatus `json:"status"`
	ConfirmedAt     *time.Time  `json:"confirmed_at,omitempty"`
}

// SubmissionStatus tracks adjudication of a claimed win.
type SubmissionStatus string

// Submission statuses.
const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionConfirmed SubmissionStatus = "confirmed"
	SubmissionRejected  SubmissionStatus = "rejected"
)

// WinSubmission records a claimed bingo win. Placement and Points are
// assigned at confirmation time only; placement reflects the order of
// achieving bingo (CompletedAt), not the order of confirmation.
type WinSubmission struct {
	ID               string           `json:"id"`
	PlayerID         string           `json:"player_id"`
	Username         string           `json:"username"`
	Platform         string           `json:"platform"`
	PlatformUsername string           `json:"platform_username"`
	BingoType        string           `json:"bingo_type"`
	DeckID           string           `json:"deck_id,omitempty"`
	DeckName         string           `json:"deck_name,omitempty"`
	CompletedAt      time.Time        `json:"completed_at"`
	SubmittedAt      time.Time        `json:"submitted_at"`
	Status           SubmissionStatus `json:"status"`
	Placement        int              `json:"placement,omitempty"`
	Points           int              `json:"points,omitempty"`
	ConfirmedAt      *time.Time       `json:"confirmed_at,omitempty"`
	RejectedAt       *time.Time       `json:"rejected_at,omitempty"`
}

// PlayerState is one player's card plus mutable cell state. It is owned
// exclusively by the service's player registry and keyed by player id.
//
// BingoAchieved and WinClaimed each transition false -> true at most once
// per card lifetime.
type PlayerState struct {
	PlayerID         string            `json:"player_id"`
	Username         string            `json:"username"`
	DeckID           string            `json:"deck_id"`
	DeckName         string            `json:"deck_name"`
	Card             Grid              `json:"card"`
	CreatedAt        time.Time         `json:"created_at"`
	Checked          map[Position]bool `json:"checked"`
	ConfirmedTexts   map[string]bool   `json:"confirmed_texts"`
	BingoAchieved    bool              `json:"bingo_achieved"`
	BingoAchievedAt  *time.Time        `json:"bingo_achieved_at,omitempty"`
	BingoType        string            `json:"bingo_type,omitempty"`
	WinClaimed       bool              `json:"win_claimed"`
	Platform         string            `json:"platform,omitempty"`
	PlatformUsername string            `json:"platform_username,omitempty"`
}

// Clone returns a deep copy safe to hand across component boundaries.
// The card grid is shared; it is immutable once generated.
func (s *PlayerState) Clone() PlayerState {
	out := *s
	out.Checked = make(map[Position]bool, len(s.Checked))
	for k, v := range s.Checked {
		out.Checked[k] = v
	}
	out.ConfirmedTexts = make(map[string]bool, len(s.ConfirmedTexts))
	for k, v := range s.ConfirmedTexts {
		out.ConfirmedTexts[k] = v
	}
	return out
}
