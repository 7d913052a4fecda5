package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kabisa/ebmbridge/internal/auth"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	"github.com/kabisa/ebmbridge/internal/business"
	businessdomain "github.com/kabisa/ebmbridge/internal/business/domain"
	"github.com/kabisa/ebmbridge/internal/config"
	"github.com/kabisa/ebmbridge/internal/invoicing"
	invoicingdomain "github.com/kabisa/ebmbridge/internal/invoicing/domain"
	"github.com/kabisa/ebmbridge/internal/observability"
	obsmiddleware "github.com/kabisa/ebmbridge/internal/observability/logger"
	obsmetrics "github.com/kabisa/ebmbridge/internal/observability/metrics"
	obstracing "github.com/kabisa/ebmbridge/internal/observability/tracing"
	"github.com/kabisa/ebmbridge/internal/providers"
	"github.com/kabisa/ebmbridge/internal/report"
	reportdomain "github.com/kabisa/ebmbridge/internal/report/domain"
	"github.com/kabisa/ebmbridge/internal/vsdc"
	"github.com/kabisa/ebmbridge/internal/webhookactivity"
	wadomain "github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	business.Module,
	webhookactivity.Module,
	report.Module,
	providers.Module,
	vsdc.Module,
	invoicing.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
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
	engine       *gin.Engine
	cfg          config.Config
	authsvc      authdomain.Service
	businessSvc  businessdomain.Service
	invoicingSvc invoicingdomain.Service
	activitySvc  wadomain.Service
	reportSvc    reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Authsvc      authdomain.Service
	BusinessSvc  businessdomain.Service
	InvoicingSvc invoicingdomain.Service
	ActivitySvc  wadomain.Service
	ReportSvc    reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		authsvc:      p.Authsvc,
		businessSvc:  p.BusinessSvc,
		invoicingSvc: p.InvoicingSvc,
		activitySvc:  p.ActivitySvc,
		reportSvc:    p.ReportSvc,
	}

	svc.registerAuthRoutes()
	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.POST("/change-password", s.AuthRequired(), s.ChangePassword)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerWebhookRoutes() {
	// Zoho posts here; these carry no bearer token.
	webhooks := s.engine.Group("/api/v1/webhooks/zoho")

	webhooks.POST("/invoice", s.HandleInvoiceWebhook)
	webhooks.POST("/credit-note", s.HandleCreditNoteWebhook)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/receipts/:filename", s.DownloadReceipt)
	// Legacy path kept for links already embedded in Zoho documents.
	s.engine.GET("/download-pdf/:filename", s.DownloadReceipt)

	// -------- Businesses --------
	api.GET("/businesses", s.AuthRequired(), s.ListBusinesses)
	api.POST("/businesses", s.AuthRequired(), s.CreateBusiness)
	api.GET("/businesses/:id", s.AuthRequired(), s.GetBusinessByID)
	api.PATCH("/businesses/:id", s.AuthRequired(), s.UpdateBusiness)
	api.DELETE("/businesses/:id", s.AuthRequired(), s.DeleteBusiness)

	// -------- Webhook activity --------
	api.GET("/activities", s.AuthRequired(), s.ListActivities)
	api.GET("/activities/stats", s.AuthRequired(), s.GetActivityStats)
	api.GET("/activities/:id", s.AuthRequired(), s.GetActivityByID)

	// -------- Reports --------
	api.GET("/reports/transactions", s.AuthRequired(), s.ListTransactions)
	api.GET("/reports/x", s.AuthRequired(), s.GetXReport)
	api.POST("/reports/z", s.AuthRequired(), s.CloseZReport)
	api.GET("/reports/z", s.AuthRequired(), s.ListZReports)
}
