package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-history/config"
	"go-inventory-history/internal/app"
	"go-inventory-history/internal/handler"
	"go-inventory-history/pkg/logger"
	"go-inventory-history/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	zapLog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync(zapLog)

	// 2. Tracing (optional)
	if cfg.Observ.JaegerEndpoint != "" {
		tp, err := telemetry.InitTracer(cfg.Observ.ServiceName, cfg.Observ.JaegerEndpoint)
		if err != nil {
			zapLog.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				zapLog.Warn("Error shutting down tracer", zap.Error(err))
			}
		}()
	}

	// 3. Database, cache, broker and services
	application, err := app.New(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to start application", zap.Error(err))
	}
	defer application.Close()

	invHandler := handler.NewInventoryHandler(application.Inventory, zapLog)
	dashHandler := handler.NewDashboardHandler(application.Dashboard)

	// 4. Setup Fiber
	fiberApp := fiber.New(fiber.Config{
		AppName: "Inventory History API",
	})

	fiberApp.Use(fiberlogger.New()) // Logging request
	fiberApp.Use(recover.New())     // Panic recovery
	fiberApp.Use(cors.New())        // CORS

	// 5. Routes
	handler.SetupRoutes(fiberApp, invHandler, dashHandler)

	// 6. Graceful Shutdown
	go func() {
		if err := fiberApp.Listen(":" + cfg.Server.Port); err != nil {
			zapLog.Panic("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down server...")
	if err := fiberApp.Shutdown(); err != nil {
		zapLog.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLog.Info("Server exited")
}
