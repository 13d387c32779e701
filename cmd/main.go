package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/khendev23/gap-cafe-type/internal/handler"
	"github.com/khendev23/gap-cafe-type/internal/repositories"
	"github.com/khendev23/gap-cafe-type/internal/router"
	"github.com/khendev23/gap-cafe-type/internal/service"
	"github.com/khendev23/gap-cafe-type/pkg/database"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/envconfig"
	"github.com/khendev23/gap-cafe-type/pkg/flags"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
	"github.com/khendev23/gap-cafe-type/pkg/shutdownsetup"
)

func main() {
	flagConfig := flags.Parse()

	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting GAP cafe kiosk backend",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	// Primary pool is mandatory: it is the cafe's own database and the
	// fallback for every request.
	primary, err := database.NewConnection(envconfig.LoadDatabaseConfig("PRIMARY"), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to primary database", "error", err)
	}
	defer primary.Close()

	if err := primary.RunMigrations(flagConfig.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations on primary database", "error", err)
	}

	if err := primary.ValidateConnection(5 * time.Second); err != nil {
		appLogger.Fatal("Primary database unresponsive after migrations", "error", err)
	}

	// Secondary pool is best-effort: outside production some clients are
	// routed to the off-site database, but the router falls back to primary
	// when it is unreachable.
	var secondary *database.DB
	if envconfig.GetEnv("DB_HOST_SECONDARY", "") != "" {
		secondary, err = database.NewConnection(envconfig.LoadDatabaseConfig("SECONDARY"), appLogger)
		if err != nil {
			appLogger.Warn("Failed to connect to secondary database, routing everything to primary", "error", err)
			secondary = nil
		} else {
			defer secondary.Close()
			if err := secondary.RunMigrations(flagConfig.MigrationsDir); err != nil {
				appLogger.Warn("Failed to run migrations on secondary database", "error", err)
			}
		}
	}

	pools := dbrouter.New(dbrouter.Config{
		Production:      envconfig.IsProduction(),
		PrimaryIPPrefix: envconfig.GetEnv("DB_PRIMARY_IP_PREFIX", "49."),
	}, primary, secondary, appLogger)

	orderRepo := repositories.NewOrderRepository(appLogger, pools)
	menuRepo := repositories.NewMenuRepository(appLogger, pools)

	orderService := service.NewOrderService(orderRepo, appLogger)
	menuService := service.NewMenuService(menuRepo, orderRepo, appLogger)

	orderHandler := handler.NewOrderHandler(orderService, pools, appLogger)
	menuHandler := handler.NewMenuHandler(menuService, pools, appLogger)

	mux := router.New(orderHandler, menuHandler, pools, appLogger)

	port := flagConfig.Port
	if port == "" {
		port = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "")

	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server error", "error", err)
		}
	}()

	shutdownsetup.SetupGracefulShutdown(server, appLogger)

	// Final pool stats before the deferred closes run.
	primary.LogStats()
}
