package main

import (
	"errors"
	"net/http"
	"shop-service/internal/handler"
	mid "shop-service/internal/middleware"
	"shop-service/internal/schema"
	"shop-service/internal/seed"
	"shop-service/internal/session"
	"shop-service/pkg/config"
	"shop-service/pkg/database"
	"shop-service/pkg/logger"
	"shop-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting shop-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Prices serialize as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("path", appConfig.Database.Path))

	// Reconcile optional columns added after the first released schema
	altered := schema.Reconcile(database.GetDB(), schema.Required())
	log.Info("Schema reconciled", zap.Int("columns_added", altered))

	// Backfill descriptions and seed the demo catalog on a fresh database
	if err := seed.Run(database.GetDB()); err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	// Initialize the cart session store
	handler.Init(newSessionStore(appConfig, log))

	// Initialize Echo instance
	e := echo.New()
	e.HTTPErrorHandler = httpErrorHandler(log)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(mid.SessionMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Public API routes
	e.GET("/api/products", handler.ListProducts)
	e.POST("/api/orders", handler.CreateOrder)
	e.GET("/api/feedback", handler.ListFeedback)

	// Shop routes
	shop := e.Group("/shop")
	shop.GET("/api/products", handler.ListProducts)
	shop.GET("/api/feedback", handler.ListFeedback)
	shop.POST("/api/feedback", handler.CreateFeedback)
	shop.DELETE("/api/feedback/:id", handler.DeleteFeedback)
	shop.GET("/shop", handler.Shop)
	shop.GET("/cart", handler.ViewCart)
	shop.POST("/add_to_cart/:product_id", handler.AddToCart)
	shop.POST("/clear_cart", handler.ClearCart)
	shop.GET("/checkout", handler.CheckoutForm)
	shop.POST("/checkout", handler.Checkout)
	shop.GET("/product/:id", handler.ProductDetail)
	shop.POST("/product/:id/feedback", handler.ProductFeedback)
	shop.GET("/order/:id", handler.OrderDetail)

	// Admin routes
	admin := e.Group("/admin")
	admin.GET("/", handler.AdminPanel)
	admin.GET("/order/:id", handler.OrderDetail)
	admin.POST("/update_order_status/:id", handler.UpdateOrderStatus)
	admin.POST("/delete_order/:id", handler.DeleteOrder)
	admin.POST("/delete_feedback/:id", handler.AdminDeleteFeedback)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// newSessionStore picks the cart session backend from config.
func newSessionStore(cfg *config.Config, log *zap.Logger) session.Store {
	if cfg.Session.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
		})
		log.Info("Using redis session store",
			zap.String("addr", cfg.Session.RedisAddr),
			zap.Duration("ttl", cfg.Session.TTL))
		return session.NewRedisStore(client, cfg.Session.TTL)
	}

	log.Info("Using in-memory session store")
	return session.NewMemoryStore()
}

// httpErrorHandler converts unhandled errors into the generic JSON error
// payloads the clients expect.
func httpErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Server Error"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			switch code {
			case http.StatusNotFound:
				message = "Not Found"
			case http.StatusBadRequest:
				message = "Bad Request"
			default:
				if msg, ok := httpErr.Message.(string); ok {
					message = msg
				}
			}
		} else {
			log.Error("Unhandled error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}

		if err := c.JSON(code, echo.Map{"error": message}); err != nil {
			log.Error("Failed to write error response", zap.Error(err))
		}
	}
}
