// Package dispatch is the HTTP surface for the ride and rating operations the
// conversation flow never calls itself: ride intake, status updates, driver
// assignment, history and ratings.
package dispatch

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/henokhm/ride-hailing-bot/internal/models"
	"github.com/henokhm/ride-hailing-bot/internal/realtime"
	"github.com/henokhm/ride-hailing-bot/internal/store"
)

type Handler struct {
	Store *store.Store
	Hub   *realtime.Hub
}

func NewHandler(st *store.Store, hub *realtime.Hub) *Handler {
	return &Handler{Store: st, Hub: hub}
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}

// storeFail maps the store's error taxonomy onto HTTP statuses.
func storeFail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, store.ErrIllegalTransition):
		return fail(c, fiber.StatusConflict, "illegal status transition")
	case errors.Is(err, store.ErrConstraint):
		return fail(c, fiber.StatusBadRequest, "constraint violation")
	case errors.Is(err, store.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "already exists")
	default:
		return fail(c, fiber.StatusInternalServerError, "internal error")
	}
}

func ok(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

type createRideReq struct {
	PassengerID  int64  `json:"passenger_id"`
	RideFrom     string `json:"ride_from"`
	RideTo       string `json:"ride_to"`
	ETA          int    `json:"eta"`
	FareEstimate int    `json:"fare_estimate"`
}

func (h *Handler) CreateRide(c *fiber.Ctx) error {
	var req createRideReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.RideFrom == "" || req.RideTo == "" {
		return fail(c, fiber.StatusBadRequest, "ride_from and ride_to are required")
	}

	ride, err := h.Store.CreateRide(req.PassengerID, req.RideFrom, req.RideTo, req.ETA, req.FareEstimate)
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, fiber.StatusCreated, ride)
}

type updateStatusReq struct {
	Status models.RideStatus `json:"status"`
}

func (h *Handler) UpdateRideStatus(c *fiber.Ctx) error {
	rideID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid ride id")
	}

	var req updateStatusReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	ride, err := h.Store.UpdateRideStatus(int64(rideID), req.Status)
	if err != nil {
		return storeFail(c, err)
	}

	h.Hub.BroadcastEvent(realtime.RideEvent{
		Type:     "status_changed",
		RideID:   ride.RideID,
		Status:   req.Status,
		DriverID: ride.DriverID,
	})
	return ok(c, fiber.StatusOK, ride)
}

type assignDriverReq struct {
	DriverID int64 `json:"driver_id"`
}

func (h *Handler) AssignDriver(c *fiber.Ctx) error {
	rideID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid ride id")
	}

	var req assignDriverReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	ride, err := h.Store.AssignDriver(int64(rideID), req.DriverID)
	if err != nil {
		return storeFail(c, err)
	}

	h.Hub.BroadcastEvent(realtime.RideEvent{
		Type:     "driver_assigned",
		RideID:   ride.RideID,
		Status:   ride.Status,
		DriverID: req.DriverID,
	})
	return ok(c, fiber.StatusOK, ride)
}

func (h *Handler) GetRideHistory(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}

	rides, err := h.Store.GetRideHistory(int64(userID))
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, fiber.StatusOK, rides)
}

type createRatingReq struct {
	DriverID    int64  `json:"driver_id"`
	PassengerID int64  `json:"passenger_id"`
	RatingValue int    `json:"rating_value"`
	Feedback    string `json:"feedback"`
}

func (h *Handler) CreateRating(c *fiber.Ctx) error {
	var req createRatingReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	rating, err := h.Store.CreateRating(req.DriverID, req.PassengerID, req.RatingValue, req.Feedback)
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, fiber.StatusCreated, rating)
}

func (h *Handler) GetDriverRatings(c *fiber.Ctx) error {
	driverID, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid driver id")
	}

	ratings, err := h.Store.GetDriverRatings(int64(driverID))
	if err != nil {
		return storeFail(c, err)
	}
	return ok(c, fiber.StatusOK, ratings)
}
