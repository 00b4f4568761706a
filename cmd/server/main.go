package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/pitch-evaluator/internal/bootstrap"
	"github.com/fadilmartias/pitch-evaluator/internal/config"
	"github.com/fadilmartias/pitch-evaluator/internal/domain/fiber/handler"
	applogger "github.com/fadilmartias/pitch-evaluator/internal/logger"
	"github.com/fadilmartias/pitch-evaluator/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	slogger := applogger.New(appConfig.LogLevel, appConfig.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		// Multipart overhead on top of two uploads
		BodyLimit: int(appConfig.MaxUploadBytes)*2 + 1024*1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env != "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	uc, err := bootstrap.NewEvaluationUsecase(ctx, config.LoadScoringConfig(), slogger)
	if err != nil {
		slogger.Error("could not initialise evaluation pipeline", "error", err)
		os.Exit(1)
	}
	handler.NewEvaluateHandler(uc, appConfig.MaxUploadBytes, slogger).RegisterRoutes(app)

	go uc.PurgeExpired(ctx, time.Minute)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				slogger.Debug("runtime stats", "goroutines", runtime.NumGoroutine())
			}
		}
	}()

	go func() {
		<-ctx.Done()
		slogger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slogger.Error("shutdown failed", "error", err)
		}
	}()

	slogger.Info("server running", "port", appConfig.Port, "env", appConfig.Env)
	if err := app.Listen(appConfig.Port); err != nil {
		slogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
