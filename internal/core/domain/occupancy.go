package domain

import (
	"errors"
	"time"

	"github.com/jackvpt/hhguesthouses-api/pkg/week"
)

var ErrOccupancyNotFound = errors.New("occupancy not found")
var ErrOccupancyConflict = errors.New("room already booked for these dates")
var ErrInvalidDateRange = errors.New("arrival must be before departure")

// Occupancy is a single room booking. The occupant is present on the
// half-open interval [Arrival, Departure): the departure day is free.
// OccupantCode references a User's code name but is not a foreign key.
type Occupancy struct {
	ID           string    `json:"id"`
	OccupantCode string    `json:"occupant_code"`
	House        string    `json:"house"`
	Room         string    `json:"room"`
	Arrival      time.Time `json:"arrival"`
	Departure    time.Time `json:"departure"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Covers reports whether the occupant is present on the given calendar day.
// All three dates are compared at day granularity.
func (o *Occupancy) Covers(date time.Time) bool {
	d := week.Midnight(date)
	return !d.Before(week.Midnight(o.Arrival)) && d.Before(week.Midnight(o.Departure))
}

// Overlaps reports whether the booking shares at least one night with the
// half-open interval [arrival, departure).
func (o *Occupancy) Overlaps(arrival, departure time.Time) bool {
	return week.Midnight(arrival).Before(week.Midnight(o.Departure)) &&
		week.Midnight(o.Arrival).Before(week.Midnight(departure))
}

// FindOccupancy returns the first occupancy in input order matching the guest
// house, room, and day, or nil when the room is free that day.
func FindOccupancy(occupancies []Occupancy, houseName, roomName string, date time.Time) *Occupancy {
	for i := range occupancies {
		o := &occupancies[i]
		if o.House == houseName && o.Room == roomName && o.Covers(date) {
			return o
		}
	}
	return nil
}

// CanEditOccupancy reports whether actor may modify or cancel the booking:
// either it is their own (code name match) or their role moderates.
func CanEditOccupancy(actor User, occ Occupancy) bool {
	return occ.OccupantCode == actor.CodeName || actor.Role.CanModerate()
}
