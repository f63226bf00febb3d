package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"playa-admin/internal/handler/api"
	"playa-admin/internal/handler/middleware"
	"playa-admin/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth         *api.AuthHandler
	Lot          *api.LotHandler
	Catalog      *api.CatalogHandler
	Subscription *api.SubscriptionHandler
	Operations   *api.OperationsHandler
	Report       *api.ReportHandler
	Invitation   *api.InvitationHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, auth *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/auth/login", Handler: h.Auth.Login},
			{Method: http.MethodPost, Path: "/invitations/:token/accept", Handler: h.Invitation.Accept},
		})

		owner := apiGroup.Group("")
		owner.Use(auth.RequireAuth(), auth.RequireOwner())
		{
			addRoutes(owner, []route{
				{Method: http.MethodPost, Path: "/lots", Handler: h.Lot.Create},
				{Method: http.MethodPatch, Path: "/lots/:id", Handler: h.Lot.Update},
				{Method: http.MethodPost, Path: "/lots/:id/activate", Handler: h.Lot.Activate},
				{Method: http.MethodPost, Path: "/lots/:id/suspend", Handler: h.Lot.Suspend},

				{Method: http.MethodPost, Path: "/lots/:id/spaces", Handler: h.Catalog.CreateSpace},
				{Method: http.MethodPost, Path: "/spaces/:id/suspend", Handler: h.Catalog.SuspendSpace},
				{Method: http.MethodPost, Path: "/spaces/:id/restore", Handler: h.Catalog.RestoreSpace},

				{Method: http.MethodPost, Path: "/lots/:id/space-types", Handler: h.Catalog.CreateSpaceType},
				{Method: http.MethodPatch, Path: "/space-types/:id", Handler: h.Catalog.UpdateSpaceType},
				{Method: http.MethodDelete, Path: "/space-types/:id", Handler: h.Catalog.RemoveSpaceType},

				{Method: http.MethodPost, Path: "/lots/:id/rates", Handler: h.Catalog.CreateRate},
				{Method: http.MethodPatch, Path: "/lots/:id/rates/:rateID", Handler: h.Catalog.UpdateRatePrice},
				{Method: http.MethodDelete, Path: "/lots/:id/rates/:rateID", Handler: h.Catalog.DeleteRate},

				{Method: http.MethodPost, Path: "/invitations", Handler: h.Invitation.Invite},
				{Method: http.MethodGet, Path: "/reports/revenue", Handler: h.Report.Revenue},
			})
		}

		authed := apiGroup.Group("")
		authed.Use(auth.RequireAuth())
		{
			addRoutes(authed, []route{
				{Method: http.MethodPost, Path: "/auth/refresh", Handler: h.Auth.Refresh},
				{Method: http.MethodGet, Path: "/auth/me", Handler: h.Auth.Me},

				{Method: http.MethodGet, Path: "/lots", Handler: h.Lot.List},
				{Method: http.MethodGet, Path: "/lots/:id", Handler: h.Lot.Get},
				{Method: http.MethodGet, Path: "/lots/:id/spaces", Handler: h.Catalog.ListSpaces},
				{Method: http.MethodGet, Path: "/lots/:id/space-types", Handler: h.Catalog.ListSpaceTypes},
				{Method: http.MethodGet, Path: "/lots/:id/rates", Handler: h.Catalog.ListRates},
				{Method: http.MethodGet, Path: "/lots/:id/shifts", Handler: h.Operations.ShiftBoard},

				{Method: http.MethodPost, Path: "/lots/:id/subscriptions", Handler: h.Subscription.Create},
				{Method: http.MethodGet, Path: "/lots/:id/subscriptions", Handler: h.Subscription.List},
				{Method: http.MethodGet, Path: "/subscriptions/:id", Handler: h.Subscription.Get},
				{Method: http.MethodPatch, Path: "/subscriptions/:id", Handler: h.Subscription.Edit},
				{Method: http.MethodPost, Path: "/subscriptions/:id/finalize", Handler: h.Subscription.Finalize},
				{Method: http.MethodPost, Path: "/bills/:billID/pay", Handler: h.Subscription.PayBill},

				{Method: http.MethodPost, Path: "/shifts/open", Handler: h.Operations.OpenShift},
				{Method: http.MethodPost, Path: "/shifts/close", Handler: h.Operations.CloseShift},

				{Method: http.MethodPost, Path: "/occupations/entry", Handler: h.Operations.RegisterEntry},
				{Method: http.MethodPost, Path: "/occupations/:id/exit", Handler: h.Operations.RegisterExit},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
