package domain

import "errors"

var ErrGuestHouseNotFound = errors.New("guest house not found")
var ErrGuestHouseExists = errors.New("guest house already exists")

// Room is a bookable room within a guest house. Descriptions are localized
// strings keyed by language code ("fr", "en", ...).
type Room struct {
	Name         string            `json:"name"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
}

// GuestHouse is a property with an ordered list of rooms. Read-mostly
// reference data.
type GuestHouse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rooms []Room `json:"rooms"`
}

// Room returns the room with the given name, or nil when absent.
func (g *GuestHouse) Room(name string) *Room {
	for i := range g.Rooms {
		if g.Rooms[i].Name == name {
			return &g.Rooms[i]
		}
	}
	return nil
}
