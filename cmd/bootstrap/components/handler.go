package components

import (
	"playa-admin/internal/handler"
	"playa-admin/internal/handler/api"
	"playa-admin/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewLotHandler,
		api.NewCatalogHandler,
		api.NewSubscriptionHandler,
		api.NewOperationsHandler,
		api.NewReportHandler,
		api.NewInvitationHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	lot *api.LotHandler,
	catalog *api.CatalogHandler,
	subscription *api.SubscriptionHandler,
	operations *api.OperationsHandler,
	report *api.ReportHandler,
	invitation *api.InvitationHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Lot:          lot,
		Catalog:      catalog,
		Subscription: subscription,
		Operations:   operations,
		Report:       report,
		Invitation:   invitation,
	}
}
