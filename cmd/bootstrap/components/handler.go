package components

import (
	"studio-booking/internal/handler"
	"studio-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewBlockedWindowHandler,
		api.NewStudioHandler,
		NewHandlers,
		handler.NewRouter,
	),
)

func NewHandlers(
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	blockedWindow *api.BlockedWindowHandler,
	studio *api.StudioHandler,
) handler.Handlers {
	return handler.Handlers{
		Availability:  availability,
		Booking:       booking,
		BlockedWindow: blockedWindow,
		Studio:        studio,
	}
}
