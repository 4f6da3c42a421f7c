package components

import (
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/readstore"
	"studio-booking/internal/infra/repository"
	"studio-booking/internal/infra/uow"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		NewSettingsReadStore,
		readstore.NewStudioReadStore,
		readstore.NewBlockedWindowReadStore,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.BookingViewStore)),
		),
		fx.Annotate(
			repository.NewIdempotencyRepository,
			fx.As(new(shared.IdempotencyRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(shared.NotificationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewSettingsReadStore(dbtx db.DBTX, cfg config.Config) shared.SettingsReads {
	return readstore.NewSettingsReadStore(dbtx, cfg.Booking)
}
