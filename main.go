package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnshJain2033/Backend-Ecommerce-App/controllers"
	"github.com/AnshJain2033/Backend-Ecommerce-App/database"
	"github.com/AnshJain2033/Backend-Ecommerce-App/gateway"
	"github.com/AnshJain2033/Backend-Ecommerce-App/middleware"
	"github.com/AnshJain2033/Backend-Ecommerce-App/repository"
	"github.com/AnshJain2033/Backend-Ecommerce-App/routes"
	"github.com/AnshJain2033/Backend-Ecommerce-App/sender"
	"github.com/AnshJain2033/Backend-Ecommerce-App/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, reading environment directly")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	client, db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Close(client)

	var redisClient *redis.Client
	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logger.Warn("invalid redis url, caching disabled", zap.Error(err))
	} else {
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	gw, err := gateway.NewBraintreeGateway(
		cfg.BraintreeEnv,
		cfg.BraintreeMerchantID,
		cfg.BraintreePublicKey,
		cfg.BraintreePrivateKey,
	)
	if err != nil {
		logger.Fatal("failed to initialize payment gateway", zap.Error(err))
	}

	emailSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err != nil {
		logger.Fatal("failed to initialize email sender", zap.Error(err))
	}

	notificationService, err := services.NewNotificationService(
		orderRepo,
		userRepo,
		productRepo,
		emailSender,
		cfg.EmailTemplate,
	)
	if err != nil {
		logger.Fatal("failed to initialize notification service", zap.Error(err))
	}

	mailerWorker := services.NewMailerWorker(notificationService, cfg.MailQueueSize)
	mailerWorker.Start()

	orderService := services.NewOrderService(orderRepo, gw, mailerWorker)
	catalogService := services.NewCatalogService(productRepo, categoryRepo)

	var cache *controllers.CacheManager
	if redisClient != nil {
		cache = controllers.NewCacheManager(redisClient)
	}

	productController := controllers.NewProductController(catalogService, cache)
	paymentController := controllers.NewPaymentController(orderService)
	notificationController := controllers.NewNotificationController(notificationService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, productController, paymentController, notificationController)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	mailerWorker.Stop()

	logger.Info("server stopped")
}
