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
	innatsstan "ordersync/internal/adapters/in/natsstan"
	outnatsstan "ordersync/internal/adapters/out/natsstan"
	"ordersync/internal/adapters/out/objectstore"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "invoice")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to postgres: %v", err)
	}
	if err = postgres.MigrateInvoiceStore(db); err != nil {
		log.Fatalf("Error migrating invoice store: %v", err)
	}

	minioClient, err := objectstore.NewClient(objectstore.Config{
		Endpoint:  configs.MinioEndpoint,
		AccessKey: configs.MinioAccessKey,
		SecretKey: configs.MinioSecretKey,
		Region:    configs.MinioRegion,
		UseSSL:    configs.MinioUseSSL,
		Bucket:    configs.InvoiceBucketName,
	})
	if err != nil {
		log.Fatalf("Error creating minio client: %v", err)
	}
	if err = objectstore.EnsureBucket(ctx, minioClient, configs.InvoiceBucketName, configs.MinioRegion); err != nil {
		log.Fatalf("Error preparing invoice bucket: %v", err)
	}
	storage, err := objectstore.NewInvoiceStorage(minioClient, configs.InvoiceBucketName)
	if err != nil {
		log.Fatalf("Error creating invoice storage: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, cmd.Adapters{InvoiceFileStorage: storage}, logger)

	conn, err := outnatsstan.Connect(configs.StanClusterID, configs.StanClientID, configs.NatsURL)
	if err != nil {
		log.Fatalf("Error connecting to NATS Streaming: %v", err)
	}
	defer conn.Close()

	subscriber := innatsstan.NewSubscriber(innatsstan.SubscriberConfig{
		Subject:     configs.OrderStatusSubject,
		QueueGroup:  configs.OrderStatusQueueGroup,
		Durable:     configs.OrderStatusDurable,
		AckWait:     configs.OrderStatusAckWait,
		MaxInflight: configs.OrderStatusPrefetch,
	}, app.CreateOrderStatusChangedHandler(), logger)
	if err = subscriber.Subscribe(ctx, conn); err != nil {
		log.Fatalf("Error subscribing to %s: %v", configs.OrderStatusSubject, err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string) {
	e := echo.New()
	http.RegisterHealth(e)
	app.CreateInvoiceServer().Register(e)

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
