// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/bytedance/sonic"
)

// DateLayout is the calendar-day format used by league files and reports.
const DateLayout = "2006-01-02"

// Position is a roster slot.
type Position string

// Canonical basketball slots.
const (
	GuardOne       Position = "guardOne"
	GuardTwo       Position = "guardTwo"
	ForwardOne     Position = "forwardOne"
	ForwardTwo     Position = "forwardTwo"
	Center         Position = "center"
	ReserveGuard   Position = "reserveGuard"
	ReserveForward Position = "reserveForward"
	ReserveCenter  Position = "reserveCenter"
)

// KnownPositions lists every declared slot in roster order.
func KnownPositions() []Position {
	return []Position{GuardOne, GuardTwo, ForwardOne, ForwardTwo, Center, ReserveGuard, ReserveForward, ReserveCenter}
}

// IsKnown reports whether p is one of the declared slots.
func (p Position) IsKnown() bool {
	for _, k := range KnownPositions() {
		if p == k {
			return true
		}
	}
	return false
}

// GameLogEntry is one played game.
type GameLogEntry struct {
	Rank  int
	Date  time.Time
	Stats map[string]float64
}

// Stat returns the value of a category, zero when absent.
func (e GameLogEntry) Stat(category string) float64 {
	return e.Stats[category]
}

// MarshalJSON renders the date as a calendar day.
func (e GameLogEntry) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(struct {
		Rank  int                `json:"rank"`
		Date  string             `json:"date"`
		Stats map[string]float64 `json:"stats"`
	}{e.Rank, FormatDate(e.Date), e.Stats})
}

// InactiveGameLogEntry is one missed game.
type InactiveGameLogEntry struct {
	Rank   int
	Date   time.Time
	Reason string
}

// MarshalJSON renders the date as a calendar day.
func (e InactiveGameLogEntry) MarshalJSON() ([]byte, error) {
	return sonic.ConfigStd.Marshal(struct {
		Rank   int    `json:"rank"`
		Date   string `json:"date"`
		Reason string `json:"reason,omitempty"`
	}{e.Rank, FormatDate(e.Date), e.Reason})
}

// Player carries a season of played and missed games. Ranks are unique
// across both logs and increase with game date.
type Player struct {
	ID              string
	Name            string
	GameLog         []GameLogEntry
	InactiveGameLog []InactiveGameLogEntry
}

// Transaction reassigns a position to a new player from Date onwards.
type Transaction struct {
	Position Position
	Date     time.Time
	Player   Player
}

// Team is a fantasy roster keyed by position.
type Team struct {
	ID           string
	Name         string
	Owner        string
	Players      map[Position]Player
	Transactions []Transaction
}

// AddTransaction appends tx to the team's transaction log.
func (t *Team) AddTransaction(tx Transaction) {
	t.Transactions = append(t.Transactions, tx)
}

// League is the input of a standings run.
type League struct {
	Name      string
	StartDate time.Time
	Teams     []Team
}

// ParseDate parses a YYYY-MM-DD string as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MustDate is ParseDate for literals; it panics on malformed input.
func MustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Day truncates t to UTC midnight of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
