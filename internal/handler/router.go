package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lastbite/internal/handler/api"
	"lastbite/internal/handler/middleware"
	"lastbite/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	pool *pgxpool.Pool,
	offerHandler *api.OfferHandler,
	merchantHandler *api.MerchantHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, pool, offerHandler, merchantHandler, reservationHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	pool *pgxpool.Pool,
	offerHandler *api.OfferHandler,
	merchantHandler *api.MerchantHandler,
	reservationHandler *api.ReservationHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/ready", readinessCheck(pool))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := engine.Group("/api/v1")
	{
		addRoutes(v1, []route{
			{Method: http.MethodGet, Path: "/offers", Handler: offerHandler.ListOffers},
		})

		merchant := v1.Group("/merchant")
		{
			addRoutes(merchant, []route{
				{Method: http.MethodPost, Path: "/register", Handler: merchantHandler.Register},
			})

			authed := merchant.Group("")
			authed.Use(authMiddleware.RequireAPIKey())
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/profile", Handler: merchantHandler.GetProfile},
				{Method: http.MethodPost, Path: "/profile", Handler: merchantHandler.UpdateProfile},
				{Method: http.MethodGet, Path: "/offers", Handler: merchantHandler.ListOffers},
				{Method: http.MethodPost, Path: "/offers", Handler: merchantHandler.CreateOffer},
				{Method: http.MethodGet, Path: "/offers/csv", Handler: merchantHandler.ExportOffersCSV},
				{Method: http.MethodPost, Path: "/offers/:id", Handler: merchantHandler.UpdateOffer},
				{Method: http.MethodDelete, Path: "/offers/:id", Handler: merchantHandler.ArchiveOffer},
				{Method: http.MethodGet, Path: "/kpi", Handler: merchantHandler.GetKPI},
			})
		}

		reservations := v1.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodPost, Path: "/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodGet, Path: "/qr", Handler: reservationHandler.RenderQR},
			})

			redeem := reservations.Group("")
			redeem.Use(authMiddleware.RequireAPIKey())
			addRoutes(redeem, []route{
				{Method: http.MethodPost, Path: "/redeem", Handler: reservationHandler.RedeemReservation},
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

// @Summary Readiness check
// @Description Check if the service can reach its database
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /ready [get]
func readinessCheck(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
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
