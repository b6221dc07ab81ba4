package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/campfireagency/socialpress/configs"
	"github.com/campfireagency/socialpress/internal/api/handlers"
	"github.com/campfireagency/socialpress/internal/api/middleware"
	job "github.com/campfireagency/socialpress/internal/jobs"
	"github.com/campfireagency/socialpress/internal/queue"
	"github.com/campfireagency/socialpress/internal/repository"
	"github.com/campfireagency/socialpress/internal/service"
	"github.com/campfireagency/socialpress/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	if _, err := utils.DeriveKey(cfg.SecretKey); err != nil {
		log.Fatalf("Invalid SECRET_KEY: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key",
		MaxAge:       3600,
	}))

	contentRepo := repository.NewContentRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)

	r2Service := service.NewR2Service(*cfg)
	facebookService := service.NewFacebookService(nil)
	instagramService := service.NewInstagramService(nil, service.Poller{
		Interval: cfg.IGPollInterval,
		MaxWait:  cfg.IGProcessingWait,
	})
	publishService := service.NewPublishService(*cfg, contentRepo, socialAccountRepo, facebookService, instagramService, r2Service)
	platformService := service.NewPlatformService(*cfg, socialAccountRepo, nil)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	publish := handlers.NewPublishHandler(contentRepo, client)
	api.Post("/content/publish", publish.PublishNow)
	api.Get("/content", publish.GetContent)

	platform := handlers.NewPlatformHandler(platformService)
	api.Post("/accounts/connect", platform.ConnectAccount)
	api.Get("/accounts", platform.ListAccounts)
	api.Post("/accounts/remove", platform.DeactivateAccount)

	// queue worker
	queueW := queue.NewQueue(publishService)

	// periodic sweep for due scheduled content
	scanJob := job.NewPublishScanJob(contentRepo, client)
	c := cron.New()
	c.AddFunc("@every 00h01m00s", scanJob.ScanDueContent)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishContent, queueW.HandlePublishContentTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
