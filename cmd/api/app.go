package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/hugohenrick/erp-pdv/docs"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-pdv/internal/adapter/api/route"
	"github.com/hugohenrick/erp-pdv/internal/adapter/repository"
	"github.com/hugohenrick/erp-pdv/internal/config"
	"github.com/hugohenrick/erp-pdv/internal/infrastructure/cache"
	"github.com/hugohenrick/erp-pdv/internal/infrastructure/database"
	"github.com/hugohenrick/erp-pdv/internal/infrastructure/telemetry"
	"github.com/hugohenrick/erp-pdv/internal/service/coupon"
	"github.com/hugohenrick/erp-pdv/internal/service/inventory"
	"github.com/hugohenrick/erp-pdv/internal/service/metrics"
	"github.com/hugohenrick/erp-pdv/internal/service/notification"
	"github.com/hugohenrick/erp-pdv/internal/service/sales"
	"github.com/hugohenrick/erp-pdv/pkg/auth"
	"github.com/hugohenrick/erp-pdv/pkg/logger"
	"github.com/hugohenrick/erp-pdv/pkg/tenant"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const version = "1.0.0"

// App representa a aplicação e suas dependências
type App struct {
	cfg        *config.Config
	logger     logger.Logger
	router     *gin.Engine
	server     *http.Server
	db         *database.PostgresDB
	cache      *cache.RedisCache
	telemetry  *telemetry.Provider
	dispatcher *notification.Dispatcher
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{cfg: cfg, logger: log}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.OTLPEndpoint,
	})
	if err != nil {
		return nil, err
	}
	app.telemetry = tp

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}
	app.db = db

	// Sem Redis os relatórios são calculados a cada requisição
	var metricsCache metrics.Cache
	if cfg.RedisAddr != "" {
		cacheCfg := cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "erp-pdv:metrics:",
			TTL:      cfg.MetricsCacheTTL,
		}
		client, err := cache.NewClient(ctx, cacheCfg)
		if err != nil {
			log.Warn("cache de métricas desativado", "error", err)
		} else {
			app.cache = cache.New(client, cacheCfg)
			metricsCache = app.cache
		}
	}

	// Repositórios
	saleRepo := repository.NewSaleRepository(db)
	couponRepo := repository.NewCouponRepository(db.Pool())
	clientRepo := repository.NewClientRepository(db.Pool())

	// Serviços
	salesService := sales.NewService(
		saleRepo,
		inventory.NewGuard(),
		coupon.NewValidator(cfg.ReportLocation, time.Now),
		log.With("service", "sales"),
		tp.Tracer("erp-pdv/sales"),
	)
	metricsService := metrics.NewService(saleRepo, metricsCache, cfg.ReportLocation, time.Now, log.With("service", "metrics"))
	salesService.OnCommit(metricsService.SaleCommitted)

	app.dispatcher = notification.NewDispatcher(notification.Config{
		Workers:    cfg.NotificationWorkers,
		QueueSize:  cfg.NotificationQueue,
		JobTimeout: notification.DefaultConfig().JobTimeout,
	}, log.With("service", "notification"))

	var notifier coupon.Notifier
	if cfg.EmailGatewayURL != "" {
		sender := notification.NewGatewaySender(cfg.EmailGatewayURL, cfg.EmailTimeout)
		notifier = notification.NewCouponNotifier(clientRepo, app.dispatcher, sender, cfg.EmailFrom, log.With("service", "notification"))
	} else {
		log.Warn("EMAIL_GATEWAY_URL não definida, clientes não serão avisados de novos cupons")
	}
	couponService := coupon.NewService(couponRepo, notifier, log.With("service", "coupon"))

	// Controllers
	checks := map[string]controller.Pinger{"database": db}
	if app.cache != nil {
		checks["redis"] = app.cache
	}
	controllers := route.Controllers{
		Sale:    controller.NewSaleController(salesService, log),
		Metrics: controller.NewMetricsController(metricsService, log),
		Coupon:  controller.NewCouponController(couponService, cfg.ReportLocation, log),
		Health:  controller.NewHealthController(version, checks),
	}

	protected, err := app.authMiddlewares()
	if err != nil {
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))
	router.Use(otelgin.Middleware(cfg.ServiceName, otelgin.WithTracerProvider(tp.TracerProvider())))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	route.Setup(router, cfg.APIBasePath, controllers, protected...)
	app.router = router

	app.server = &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// authMiddlewares monta a cadeia de autenticação do AUTH_MODE
func (a *App) authMiddlewares() ([]gin.HandlerFunc, error) {
	if a.cfg.AuthMode == config.AuthModeHeader {
		a.logger.Warn("autenticação por cabeçalho tenant-id, use apenas atrás de um gateway confiável")
		return []gin.HandlerFunc{tenant.Middleware(tenant.FromHeader)}, nil
	}

	jwtService, err := auth.NewJWTService(a.cfg.JWTSecretKey, a.cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("erro ao configurar autenticação: %w", err)
	}
	return []gin.HandlerFunc{
		auth.JWTAuthMiddleware(jwtService),
		tenant.Middleware(tenant.FromAuth),
	}, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", tenant.HeaderName},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// Start inicia o worker de notificações e o servidor HTTP
func (a *App) Start(ctx context.Context) error {
	if err := a.dispatcher.Start(ctx); err != nil {
		return err
	}

	go func() {
		a.logger.Info("servidor HTTP iniciado", "addr", a.server.Addr, "auth_mode", a.cfg.AuthMode)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("erro no servidor HTTP", "error", err)
		}
	}()
	return nil
}

// Shutdown encerra o servidor, drena as notificações e libera os recursos
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("erro ao encerrar servidor HTTP: %w", err))
	}
	if err := a.dispatcher.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("erro ao encerrar notificações: %w", err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("erro ao fechar cache: %w", err))
		}
	}
	a.db.Close()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("erro ao encerrar telemetria: %w", err))
	}
	return errors.Join(errs...)
}
