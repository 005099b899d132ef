package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCancelCutoff     = "CANCEL_CUTOFF"
	EnvMaxCASRetries    = "MAX_CAS_RETRIES"
	EnvRetryBackoffBase = "RETRY_BACKOFF_BASE"

	EnvAutoApproveResponsibles = "AUTO_APPROVE_RESPONSIBLES"
	EnvMoveTransactions        = "MOVE_TRANSACTIONS"

	EnvKafkaBrokers         = "KAFKA_BROKERS"
	EnvNotificationsTopic   = "NOTIFICATIONS_TOPIC"
	EnvNotificationTimeout  = "NOTIFICATION_TIMEOUT"
	EnvProducerMaxAttempts  = "PRODUCER_MAX_ATTEMPTS"
	EnvProducerBatchTimeout = "PRODUCER_BATCH_TIMEOUT"
)
