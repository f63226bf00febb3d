package components

import (
	"playa-admin/internal/infra"
	"playa-admin/internal/infra/readstore"
	"playa-admin/internal/infra/uow"
	"playa-admin/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,

		fx.Annotate(
			readstore.NewLotReadStore,
			fx.As(new(queries.LotViewRepo)),
			fx.As(new(queries.LotGuard)),
		),
		fx.Annotate(
			readstore.NewSpaceReadStore,
			fx.As(new(queries.SpaceViewRepo)),
		),
		fx.Annotate(
			readstore.NewSpaceTypeReadStore,
			fx.As(new(queries.SpaceTypeViewRepo)),
		),
		fx.Annotate(
			readstore.NewRateReadStore,
			fx.As(new(queries.RateViewRepo)),
		),
		fx.Annotate(
			readstore.NewSubscriptionReadStore,
			fx.As(new(queries.SubscriptionViewRepo)),
		),
		fx.Annotate(
			readstore.NewShiftReadStore,
			fx.As(new(queries.ShiftViewRepo)),
		),
		fx.Annotate(
			readstore.NewPaymentReadStore,
			fx.As(new(queries.PaymentViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
