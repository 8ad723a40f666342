package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StanClusterID         string
	StanClientID          string
	NatsURL               string
	OrderStatusSubject    string
	OrderStatusDurable    string
	OrderStatusQueueGroup string
	OrderStatusPrefetch   int
	OrderStatusAckWait    time.Duration

	MinioEndpoint     string
	MinioAccessKey    string
	MinioSecretKey    string
	MinioRegion       string
	MinioUseSSL       bool
	InvoiceBucketName string
	InvoiceURLTTL     time.Duration

	SentReconcileSchedule string
}

// LoadConfig reads the process environment, after loading .env when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	prefetch, prefetchErr := intVariable("ORDER_STATUS_PREFETCH", 50)
	ackWait, ackWaitErr := durationVariable("ORDER_STATUS_ACK_WAIT", 30*time.Second)
	urlTTL, urlTTLErr := durationVariable("INVOICE_URL_TTL", 5*time.Minute)
	useSSL, useSSLErr := boolVariable("MINIO_USE_SSL", false)
	if err := errors.Join(prefetchErr, ackWaitErr, urlTTLErr, useSSLErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:   variable("HTTP_PORT", "8080"),
		DBHost:     variable("DB_HOST", "localhost"),
		DBPort:     variable("DB_PORT", "5432"),
		DBUser:     variable("DB_USER", ""),
		DBPassword: variable("DB_PASSWORD", ""),
		DBName:     variable("DB_NAME", ""),
		DBSslMode:  variable("DB_SSLMODE", "disable"),

		StanClusterID:         variable("STAN_CLUSTER_ID", "test-cluster"),
		StanClientID:          variable("STAN_CLIENT_ID", ""),
		NatsURL:               variable("NATS_URL", "nats://localhost:4222"),
		OrderStatusSubject:    variable("ORDER_STATUS_SUBJECT", "order_status_changed"),
		OrderStatusDurable:    variable("ORDER_STATUS_DURABLE", "invoice-service"),
		OrderStatusQueueGroup: variable("ORDER_STATUS_QUEUE_GROUP", "invoice-service"),
		OrderStatusPrefetch:   prefetch,
		OrderStatusAckWait:    ackWait,

		MinioEndpoint:     variable("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:    variable("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:    variable("MINIO_SECRET_KEY", ""),
		MinioRegion:       variable("MINIO_REGION", ""),
		MinioUseSSL:       useSSL,
		InvoiceBucketName: variable("INVOICE_BUCKET_NAME", "invoice"),
		InvoiceURLTTL:     urlTTL,

		SentReconcileSchedule: variable("SENT_RECONCILE_SCHEDULE", "0 */5 * * * *"),
	}, nil
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func variable(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func boolVariable(key string, fallback bool) (bool, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
