package components

import (
	"log/slog"

	"playa-admin/internal/infra/cache"
	"playa-admin/internal/infra/mailqueue"
	"playa-admin/internal/pkg/clock"
	"playa-admin/internal/pkg/config"
	"playa-admin/internal/usecase/commands"
	"playa-admin/internal/usecase/queries"
	"playa-admin/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		func(c *cache.ReportCache) *cache.ReportCache { return c },
		fx.As(new(commands.ReportInvalidator)),
		fx.As(new(queries.ReportCache)),
	),
	fx.Annotate(
		func(p *mailqueue.Publisher) *mailqueue.Publisher { return p },
		fx.As(new(commands.InvitationPublisher)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewLotCommands,
		commands.NewSpaceCommands,
		commands.NewSpaceTypeCommands,
		commands.NewRateCommands,
		commands.NewSubscriptionCommands,
		commands.NewShiftCommands,
		commands.NewOccupationCommands,
		NewInvitationCommands,
	),
)

func NewInvitationCommands(
	uow shared.UnitOfWork,
	publisher commands.InvitationPublisher,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) commands.InvitationCommands {
	return commands.NewInvitationCommands(uow, publisher, cfg.Server.BaseURL, clk, logger)
}

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLotQueries,
		queries.NewSpaceQueries,
		queries.NewCatalogQueries,
		queries.NewSubscriptionQueries,
		queries.NewShiftQueries,
		queries.NewRevenueQueries,
	),
)
