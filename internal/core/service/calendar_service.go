package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
	"github.com/jackvpt/hhguesthouses-api/pkg/week"
)

type calendarService struct {
	houses ports.GuestHouseRepository
	occs   ports.OccupancyRepository
	log    zerolog.Logger
}

// NewCalendarService returns the CalendarService producing the weekly
// room-by-day occupancy grid.
func NewCalendarService(houses ports.GuestHouseRepository, occs ports.OccupancyRepository, log zerolog.Logger) ports.CalendarService {
	return &calendarService{houses: houses, occs: occs, log: log}
}

func (s *calendarService) WeekView(ctx context.Context, in ports.WeekViewInput) (*ports.WeekView, error) {
	if in.Week == 0 || in.Year == 0 {
		now := time.Now()
		in.Week = week.Number(now)
		// The ISO year is the year of the week's Thursday, which can differ
		// from the calendar year around January 1.
		in.Year = week.FromDate(now).Monday.AddDate(0, 0, 3).Year()
	}

	house, err := s.houses.FindByName(ctx, in.House)
	if err != nil {
		return nil, err
	}

	r := week.FromWeek(in.Week, in.Year)
	occupancies, err := s.occs.ListRange(ctx, house.Name, r.Monday, r.Sunday.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	view := &ports.WeekView{
		House:  house.Name,
		Week:   in.Week,
		Year:   in.Year,
		Monday: r.Monday,
		Sunday: r.Sunday,
		Rows:   make([]ports.RoomRow, 0, len(house.Rooms)),
	}
	for _, room := range house.Rooms {
		row := ports.RoomRow{Room: room.Name, Days: make([]ports.DayCell, 7)}
		for i := 0; i < 7; i++ {
			day := r.Monday.AddDate(0, 0, i)
			cell := ports.DayCell{Date: day, Status: ports.CellFree}
			if occ := domain.FindOccupancy(occupancies, house.Name, room.Name, day); occ != nil {
				cell.OccupantCode = occ.OccupantCode
				if in.ViewerCode != "" && occ.OccupantCode == in.ViewerCode {
					cell.Status = ports.CellOwn
				} else {
					cell.Status = ports.CellOccupied
				}
			}
			row.Days[i] = cell
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
