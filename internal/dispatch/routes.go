package dispatch

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/henokhm/ride-hailing-bot/internal/middleware"
	"github.com/henokhm/ride-hailing-bot/internal/realtime"
)

// Register mounts the dispatch routes. Everything under /api except login is
// behind the bearer-token middleware; the websocket feed is open, it only
// carries ride events.
func Register(app *fiber.App, h *Handler, a *AuthHandler) {
	api := app.Group("/api")

	api.Post("/auth/login", a.Login)

	protected := api.Group("/", middleware.JWTAuth(a.JWTSecret))
	protected.Post("/rides", h.CreateRide)
	protected.Patch("/rides/:id/status", h.UpdateRideStatus)
	protected.Patch("/rides/:id/driver", h.AssignDriver)
	protected.Get("/users/:id/rides", h.GetRideHistory)
	protected.Post("/ratings", h.CreateRating)
	protected.Get("/drivers/:id/ratings", h.GetDriverRatings)

	app.Get("/ws/rides", websocket.New(realtime.ServeWS(h.Hub)))
}
