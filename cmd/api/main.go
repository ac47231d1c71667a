package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stylelane-api/docs"
	appanalytics "github.com/jhoicas/stylelane-api/internal/application/analytics"
	"github.com/jhoicas/stylelane-api/internal/application/auth"
	"github.com/jhoicas/stylelane-api/internal/application/inventory"
	"github.com/jhoicas/stylelane-api/internal/application/seed"
	"github.com/jhoicas/stylelane-api/internal/application/usecase"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/asn"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/messaging"
	infrapdf "github.com/jhoicas/stylelane-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stylelane-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stylelane-api/internal/interfaces/http"
	"github.com/jhoicas/stylelane-api/pkg/config"
	"github.com/jhoicas/stylelane-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	b, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend de persistencia")
	}
	defer b.Close()

	// En memoria no hay datos previos: se siembra la demo para poder iniciar sesión.
	if cfg.Storage.Backend == config.BackendMemory {
		if _, err := seed.NewSeeder(b.Stores, b.Users, b.Products, b.Inventory).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed en memoria")
		}
	}

	// Notificaciones: RabbitMQ si está habilitado, si no solo log.
	var notifier inventory.Notifier = messaging.NewLogNotifier(log.Zerolog())
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.NewRabbitMQNotifier(messaging.RabbitMQConfig{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RetryCount: 5,
			RetryDelay: 2 * time.Second,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer rmq.Close()
		notifier = rmq
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	asnBuilder := asn.NewXMLBuilder()

	authUC := auth.NewAuthUseCase(b.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	storeUC := usecase.NewStoreUseCase(b.Stores)
	userUC := usecase.NewUserUseCase(b.Users, b.Stores)
	productUC := usecase.NewProductUseCase(b.Products, b.Inventory, pdfGenerator)
	inventoryUC := inventory.NewInventoryUseCase(b.Tx, b.Inventory, b.Products, b.Stores)
	saleUC := inventory.NewSaleUseCase(b.Tx, notifier)
	restockUC := inventory.NewRestockUseCase(b.Tx, b.Inventory, b.Restocks, notifier)
	shipNoticeUC := inventory.NewShipNoticeUseCase(b.Restocks, b.Products, b.Stores, b.Users, asnBuilder)
	recommendationUC := inventory.NewRecommendationUseCase(b.Inventory, b.Analytics)
	analyticsUC := appanalytics.NewAnalyticsUseCase(b.Analytics, b.Sales)
	reportUC := appanalytics.NewReportUseCase(b.Sales, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(b.Stores, b.Users, b.Inventory, b.Sales)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: docs.SwaggerFile,
			Path:     "docs",
			Title:    "StyleLane API",
		}))
	} else {
		log.Warn().Str("file", docs.SwaggerFile).Msg("documento Swagger no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		StoreUC:          storeUC,
		UserUC:           userUC,
		ProductUC:        productUC,
		InventoryUC:      inventoryUC,
		SaleUC:           saleUC,
		RestockUC:        restockUC,
		ShipNoticeUC:     shipNoticeUC,
		RecommendationUC: recommendationUC,
		AnalyticsUC:      analyticsUC,
		ReportUC:         reportUC,
		DashboardUC:      dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
