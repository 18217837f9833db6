package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jackvpt/hhguesthouses-api/internal/core/domain"
	"github.com/jackvpt/hhguesthouses-api/internal/core/ports"
)

// GuestHouseHandler serves the guest house reference data. The collection is
// read-mostly; creation is an admin bootstrap operation, so the handler talks
// to the repository port directly.
type GuestHouseHandler struct {
	repo ports.GuestHouseRepository
}

func NewGuestHouseHandler(repo ports.GuestHouseRepository) *GuestHouseHandler {
	return &GuestHouseHandler{repo: repo}
}

type roomRequest struct {
	Name         string            `json:"name" validate:"required"`
	Descriptions map[string]string `json:"descriptions"`
}

type createGuestHouseRequest struct {
	Name  string        `json:"name"  validate:"required"`
	Rooms []roomRequest `json:"rooms" validate:"min=1,dive"`
}

// List returns all guest houses with their rooms.
//
// @Summary      List guest houses
// @Tags         guesthouses
// @Produce      json
// @Success      200  {array}  domain.GuestHouse
// @Router       /guesthouses [get]
func (h *GuestHouseHandler) List(c echo.Context) error {
	houses, err := h.repo.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, houses)
}

// Create registers a new guest house.
//
// @Summary      Create a guest house
// @Tags         guesthouses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createGuestHouseRequest  true  "Guest house with its rooms"
// @Success      201   {object}  domain.GuestHouse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /guesthouses [post]
func (h *GuestHouseHandler) Create(c echo.Context) error {
	var req createGuestHouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gh := &domain.GuestHouse{Name: req.Name, Rooms: make([]domain.Room, 0, len(req.Rooms))}
	for _, r := range req.Rooms {
		gh.Rooms = append(gh.Rooms, domain.Room{Name: r.Name, Descriptions: r.Descriptions})
	}

	created, err := h.repo.Create(c.Request().Context(), gh)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}
