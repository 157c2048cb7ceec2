package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/reciply/reciply/internal/asset"
	assetdomain "github.com/reciply/reciply/internal/asset/domain"
	"github.com/reciply/reciply/internal/auth"
	authdomain "github.com/reciply/reciply/internal/auth/domain"
	"github.com/reciply/reciply/internal/billing"
	billingdomain "github.com/reciply/reciply/internal/billing/domain"
	"github.com/reciply/reciply/internal/cache"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/extract"
	extractdomain "github.com/reciply/reciply/internal/extract/domain"
	"github.com/reciply/reciply/internal/generation"
	generationdomain "github.com/reciply/reciply/internal/generation/domain"
	"github.com/reciply/reciply/internal/metrics"
	"github.com/reciply/reciply/internal/migration"
	"github.com/reciply/reciply/internal/raster"
	"github.com/reciply/reciply/internal/ratelimit"
	"github.com/reciply/reciply/internal/receipt"
	receiptdomain "github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/internal/render"
	"github.com/reciply/reciply/internal/storage"
	"github.com/reciply/reciply/internal/user"
	userdomain "github.com/reciply/reciply/internal/user/domain"
	"github.com/reciply/reciply/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	db.Module,
	migration.Module,
	metrics.Module,
	fx.Provide(newSnowflakeNode),
	fx.Provide(registerGin),
	auth.Module,
	user.Module,
	receipt.Module,
	render.Module,
	raster.Module,
	storage.Module,
	generation.Module,
	billing.Module,
	extract.Module,
	asset.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func NewEngine(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(m.Handler())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(m *metrics.Metrics) *gin.Engine {
	return NewEngine(m)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	authsvc       authdomain.Service
	usersvc       userdomain.Service
	receiptsvc    receiptdomain.Service
	generationsvc generationdomain.Service
	billingsvc    billingdomain.Service
	extractsvc    extractdomain.Service
	assetsvc      assetdomain.Service
	limiter       *ratelimit.Generation
	metrics       *metrics.Metrics

	// userCache absorbs the per-request user lookup behind auth.
	userCache cache.Cache[string, userdomain.User]
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	Authsvc       authdomain.Service
	Usersvc       userdomain.Service
	Receiptsvc    receiptdomain.Service
	Generationsvc generationdomain.Service
	Billingsvc    billingdomain.Service
	Extractsvc    extractdomain.Service
	Assetsvc      assetdomain.Service
	Limiter       *ratelimit.Generation `optional:"true"`
	Metrics       *metrics.Metrics
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		log:           p.Log.Named("http.server"),
		authsvc:       p.Authsvc,
		usersvc:       p.Usersvc,
		receiptsvc:    p.Receiptsvc,
		generationsvc: p.Generationsvc,
		billingsvc:    p.Billingsvc,
		extractsvc:    p.Extractsvc,
		assetsvc:      p.Assetsvc,
		limiter:       p.Limiter,
		metrics:       p.Metrics,
		userCache:     cache.NewTTLCache[string, userdomain.User](),
	}

	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/v1", s.AuthRequired())

	api.POST("/receipts/generate", s.GenerateReceipt)
	api.GET("/receipts", s.ListReceipts)
	api.GET("/receipts/:id", s.GetReceipt)
	api.DELETE("/receipts/:id", s.DeleteReceipt)

	api.GET("/me", s.GetMe)

	api.GET("/templates", s.ListTemplates)
	api.GET("/templates/:id", s.GetTemplate)

	api.POST("/layouts/extract", s.ExtractLayout)
	api.POST("/uploads/logo", s.UploadLogo)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/v1/admin", s.AuthRequired(), s.AdminRequired())

	admin.GET("/users", s.AdminListUsers)
	admin.PATCH("/users/:id/credits", s.AdminSetCredits)
	admin.PATCH("/users/:id/ban", s.AdminSetBanned)
	admin.GET("/receipts/:id", s.AdminGetReceipt)
	admin.DELETE("/receipts/:id", s.AdminDeleteReceipt)
}

func (s *Server) registerPublicRoutes() {
	s.engine.POST("/webhooks/billing", s.BillingWebhook)
}
