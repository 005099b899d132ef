package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "festivol"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Self-service unregistration is blocked inside this window before the
	// mission starts.
	DefaultCancelCutoff = 24 * time.Hour

	// Optimistic-concurrency retry budget for versioned mission writes.
	DefaultMaxCASRetries    = 5
	DefaultRetryBackoffBase = 25 * time.Millisecond

	DefaultAutoApproveResponsibles = false
	DefaultMoveTransactions        = true

	DefaultKafkaBrokers         = "localhost:9092"
	DefaultNotificationsTopic   = "volunteer.notifications"
	DefaultNotificationTimeout  = 5 * time.Second
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 100 * time.Millisecond

	DefaultPaginationLimit = 100
)
