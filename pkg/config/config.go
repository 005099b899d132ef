package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"festivol/pkg/client"
	"festivol/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Registration engine knobs.
	CancelCutoff     time.Duration
	MaxCASRetries    int
	RetryBackoffBase time.Duration

	// AutoApproveResponsibles skips the pending queue for coordinator
	// requests. Threaded explicitly into the operations that honor it.
	AutoApproveResponsibles bool

	// MoveTransactions commits Move inside a single Mongo transaction.
	// Disable on deployments without replica sets; the saga path with a
	// compensating re-register is used instead.
	MoveTransactions bool

	KafkaBrokers         []string
	NotificationsTopic   string
	NotificationTimeout  time.Duration
	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CancelCutoff:     getEnvDuration(EnvCancelCutoff, DefaultCancelCutoff),
		MaxCASRetries:    getEnvNum(EnvMaxCASRetries, DefaultMaxCASRetries),
		RetryBackoffBase: getEnvDuration(EnvRetryBackoffBase, DefaultRetryBackoffBase),

		AutoApproveResponsibles: getEnvBool(EnvAutoApproveResponsibles, DefaultAutoApproveResponsibles),
		MoveTransactions:        getEnvBool(EnvMoveTransactions, DefaultMoveTransactions),

		KafkaBrokers:         strings.Split(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers), ","),
		NotificationsTopic:   getEnvStr(EnvNotificationsTopic, DefaultNotificationsTopic),
		NotificationTimeout:  getEnvDuration(EnvNotificationTimeout, DefaultNotificationTimeout),
		ProducerMaxAttempts:  getEnvNum(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.FormatJSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	for name, d := range map[string]time.Duration{
		"RequestTimeout":  cfg.RequestTimeout,
		"IdempotencyTTL":  cfg.IdempotencyTTL,
		"ReadTimeout":     cfg.ReadTimeout,
		"WriteTimeout":    cfg.WriteTimeout,
		"IdleTimeout":     cfg.IdleTimeout,
		"ShutdownTimeout": cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.CancelCutoff < 0 {
		problems = append(problems, fmt.Sprintf("CancelCutoff cannot be negative, got: %s", cfg.CancelCutoff))
	}
	if cfg.MaxCASRetries < 1 {
		problems = append(problems, fmt.Sprintf("MaxCASRetries must be at least 1, got: %d", cfg.MaxCASRetries))
	}
	if cfg.RetryBackoffBase <= 0 {
		problems = append(problems, fmt.Sprintf("RetryBackoffBase must be positive, got: %s", cfg.RetryBackoffBase))
	}

	if len(cfg.KafkaBrokers) == 0 {
		problems = append(problems, "KafkaBrokers cannot be empty")
	}
	if cfg.NotificationsTopic == "" {
		problems = append(problems, "NotificationsTopic cannot be empty")
	}
	if cfg.NotificationTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("NotificationTimeout must be positive, got: %s", cfg.NotificationTimeout))
	}

	if len(problems) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, p := range problems {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"cancel_cutoff", cfg.CancelCutoff,
		"max_cas_retries", cfg.MaxCASRetries,
		"retry_backoff_base", cfg.RetryBackoffBase,
		"auto_approve_responsibles", cfg.AutoApproveResponsibles,
		"move_transactions", cfg.MoveTransactions,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"notifications_topic", cfg.NotificationsTopic,
		"notification_timeout", cfg.NotificationTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
