package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersync/cmd"
	"ordersync/internal/adapters/in/http"
	"ordersync/internal/adapters/out/natsstan"
	"ordersync/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "order")

	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}
	if err = postgres.MigrateOrderStore(db); err != nil {
		log.Fatalf("Error migrating order store: %v", err)
	}

	conn, err := natsstan.Connect(configs.StanClusterID, configs.StanClientID, configs.NatsURL)
	if err != nil {
		log.Fatalf("Error connecting to NATS Streaming: %v", err)
	}
	defer conn.Close()

	app := cmd.NewCompositionRoot(
		configs,
		db,
		cmd.Adapters{
			StatusEventChannel: natsstan.NewStatusEventPublisher(conn, configs.OrderStatusSubject, logger),
		},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startWebServer(ctx, app, configs.HTTPPort)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()
	http.RegisterHealth(e)
	app.CreateOrderServer().Register(e)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}
