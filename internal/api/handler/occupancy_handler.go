package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jackvpt/hhguesthouses-api/internal/api/metrics"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

// OccupancyHandler handles HTTP requests for bookings and the weekly calendar.
type OccupancyHandler struct {
	service  ports.OccupancyService
	calendar ports.CalendarService
}

func NewOccupancyHandler(service ports.OccupancyService, calendar ports.CalendarService) *OccupancyHandler {
	return &OccupancyHandler{service: service, calendar: calendar}
}

type createOccupancyRequest struct {
	OccupantCode string `json:"occupant_code"`
	House        string `json:"house"     validate:"required"`
	Room         string `json:"room"      validate:"required"`
	Arrival      string `json:"arrival"   validate:"required,datetime=2006-01-02"`
	Departure    string `json:"departure" validate:"required,datetime=2006-01-02"`
}

type updateOccupancyRequest struct {
	OccupantCode *string `json:"occupant_code"`
	House        *string `json:"house"`
	Room         *string `json:"room"`
	Arrival      *string `json:"arrival"   validate:"omitempty,datetime=2006-01-02"`
	Departure    *string `json:"departure" validate:"omitempty,datetime=2006-01-02"`
}

// List returns all bookings.
//
// @Summary      List bookings
// @Tags         occupancies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Occupancy
// @Failure      401  {object}  map[string]string
// @Router       /occupancies [get]
func (h *OccupancyHandler) List(c echo.Context) error {
	occs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, occs)
}

// Create books a room.
//
// @Summary      Create a booking
// @Tags         occupancies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOccupancyRequest  true  "Booking details; occupant_code defaults to the caller"
// @Success      201   {object}  domain.Occupancy
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /occupancies [post]
func (h *OccupancyHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOccupancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	arrival, _ := time.Parse(time.DateOnly, req.Arrival)
	departure, _ := time.Parse(time.DateOnly, req.Departure)

	occ, err := h.service.Create(c.Request().Context(), actor, ports.CreateOccupancyInput{
		OccupantCode: req.OccupantCode,
		House:        req.House,
		Room:         req.Room,
		Arrival:      arrival,
		Departure:    departure,
	})
	if err != nil {
		return err
	}

	metrics.OccupancyWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, occ)
}

// Update partially updates a booking.
//
// @Summary      Update a booking
// @Tags         occupancies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Booking id"
// @Param        body  body      updateOccupancyRequest  true  "Fields to change"
// @Success      200   {object}  domain.Occupancy
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /occupancies/{id} [put]
func (h *OccupancyHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateOccupancyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateOccupancyInput{
		OccupantCode: req.OccupantCode,
		House:        req.House,
		Room:         req.Room,
	}
	if req.Arrival != nil {
		arrival, _ := time.Parse(time.DateOnly, *req.Arrival)
		in.Arrival = &arrival
	}
	if req.Departure != nil {
		departure, _ := time.Parse(time.DateOnly, *req.Departure)
		in.Departure = &departure
	}

	occ, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.OccupancyWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, occ)
}

// Delete removes a booking.
//
// @Summary      Delete a booking
// @Tags         occupancies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /occupancies/{id} [delete]
func (h *OccupancyHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.OccupancyWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "occupancy deleted"})
}

// Calendar renders the weekly occupancy grid for one guest house.
//
// @Summary      Weekly occupancy calendar
// @Tags         occupancies
// @Produce      json
// @Security     BearerAuth
// @Param        house  query     string  true   "Guest house name"
// @Param        week   query     int     false  "ISO week number (defaults to the current week)"
// @Param        year   query     int     false  "ISO year (defaults to the current year)"
// @Success      200    {object}  ports.WeekView
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /occupancies/calendar [get]
func (h *OccupancyHandler) Calendar(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	house := c.QueryParam("house")
	if house == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "house is required")
	}

	week, err := queryInt(c, "week")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "week must be an integer")
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "year must be an integer")
	}

	view, err := h.calendar.WeekView(c.Request().Context(), ports.WeekViewInput{
		House:      house,
		Week:       week,
		Year:       year,
		ViewerCode: actor.CodeName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// queryInt parses an optional integer query parameter; absent means zero.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
