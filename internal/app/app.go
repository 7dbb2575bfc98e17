package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/controller"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/commerce"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/payment-gateway"
	shippingaggregator "github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/shipping-aggregator"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/point-of-sales/storefront-service/internal/middleware"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/repository"
	"github.com/alimikegami/point-of-sales/storefront-service/internal/service"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/response"
	"github.com/alimikegami/point-of-sales/storefront-service/pkg/validator"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

type App struct {
	Config *config.Config
	Redis  *redis.Client
	Server *echo.Echo

	scheduler     gocron.Scheduler
	publisher     publisher
	traceProvider *sdktrace.TracerProvider
}

func (app *App) Start() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}
	app.traceProvider = traceProvider

	tracer := traceProvider.Tracer("storefront-service")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			// add the context to the request
			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)
	e.Use(localmiddleware.SessionMiddleware(app.Config.SessionConfig))

	app.publisher = kafka.NopProducer{}
	if app.Config.KafkaConfig.BrokerAddress != "" {
		app.publisher = kafka.CreateProducer(kafka.CreateKafkaWriter(app.Config))
	}

	commerceClient := commerce.CreateClient(app.Config)
	aggregatorClient := shippingaggregator.CreateRajaOngkirClient(app.Config)
	statusFetcher := paymentgateway.CreateStatusFetcher(paymentgateway.CreateMidtransClient(app.Config))

	commerceRepo := repository.CreateCommerceRepository(commerceClient)
	cacheRepo := repository.CreateRedisRepository(app.Redis)

	shippingSvc := service.CreateShippingService(aggregatorClient, cacheRepo, app.Config)
	checkoutSvc := service.CreateCheckoutService(commerceRepo, cacheRepo, shippingSvc, app.publisher, app.Config)
	confirmationSvc := service.CreateConfirmationService(commerceRepo, cacheRepo, statusFetcher, app.publisher, app.Config)
	purgeSvc := service.CreateCachePurgeService(cacheRepo, app.Config)
	accountSvc := service.CreateAccountService(commerceRepo, app.Config.MidtransConfig.PaymentMethodCode)

	controller.CreateRajaOngkirController(e, shippingSvc)
	controller.CreateCachePurgeController(e, purgeSvc)

	g := e.Group("/api/v1")

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	controller.CreateCheckoutController(g, checkoutSvc)
	controller.CreateConfirmationController(g, confirmationSvc, service.NewConfirmationPoller(confirmationSvc))
	controller.CreateAccountController(g, accountSvc)

	if interval := app.Config.CacheConfig.PurgeInterval; interval > 0 {
		app.scheduler, err = gocron.NewScheduler()
		if err != nil {
			panic(err)
		}

		// add a job to the scheduler
		_, err = app.scheduler.NewJob(
			gocron.DurationJob(
				interval,
			),
			gocron.NewTask(
				purgeSvc.PurgeAggregatorCache,
			),
		)
		if err != nil {
			panic(err)
		}

		app.scheduler.Start()
	}

	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event publisher")
		}
	}
	if app.traceProvider != nil {
		if err := app.traceProvider.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown tracing")
		}
	}

	if app.Server == nil {
		return nil
	}
	return app.Server.Shutdown(ctx)
}
