package ports

import (
	"context"
	"time"
)

// Badge states of a calendar cell.
const (
	CellFree     = "free"
	CellOccupied = "occupied"
	CellOwn      = "own"
)

// WeekViewInput selects the week to render. Week/Year of zero mean the week
// containing today. ViewerCode distinguishes "own" from "occupied" cells.
type WeekViewInput struct {
	House      string
	Week       int
	Year       int
	ViewerCode string
}

// DayCell is one room-by-day cell of the calendar grid.
type DayCell struct {
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	OccupantCode string    `json:"occupant_code,omitempty"`
}

// RoomRow is the 7-day strip of a single room.
type RoomRow struct {
	Room string    `json:"room"`
	Days []DayCell `json:"days"`
}

// WeekView is the room x day occupancy grid for one guest house and week.
type WeekView struct {
	House  string    `json:"house"`
	Week   int       `json:"week"`
	Year   int       `json:"year"`
	Monday time.Time `json:"monday"`
	Sunday time.Time `json:"sunday"`
	Rows   []RoomRow `json:"rows"`
}

// CalendarService composes the week utility and the occupancy resolver into
// the weekly occupancy grid.
type CalendarService interface {
	WeekView(ctx context.Context, in WeekViewInput) (*WeekView, error)
}
