package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelbook/pkg/client"
	"hotelbook/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	StoreBackend   string
	BookingTimeout time.Duration

	RedisURL       string
	SearchCacheTTL time.Duration

	NotifyBroker         string
	BookingTopic         string
	BookingDLQTopic      string
	ConsumerGroupID      string
	RabbitMQURL          string
	BookingQueue         string
	NotifyBufferSize     int
	NotifyPublishTimeout time.Duration

	PricingServiceURL string
	PricingTimeout    time.Duration

	AuthJWTSecret string
	AdminEmails   []string

	DynamoTable       string
	DynamoRegion      string
	DynamoEndpoint    string
	DynamoMaxAttempts int

	CapacityCheckSchedule  string
	CapacityAlertThreshold int
	CapacityWindowDays     int

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment, validates it and exits the process on an
// invalid configuration.
func Load(serviceName string) *Config {
	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the environment without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		StoreBackend:   strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),
		BookingTimeout: getEnvDuration(EnvBookingTimeout, DefaultBookingTimeout),

		RedisURL:       os.Getenv(EnvRedisURL),
		SearchCacheTTL: getEnvDuration(EnvSearchCacheTTL, DefaultSearchCacheTTL),

		NotifyBroker:         strings.ToLower(getEnvStr(EnvNotifyBroker, DefaultNotifyBroker)),
		BookingTopic:         getEnvStr(EnvBookingTopic, DefaultBookingTopic),
		BookingDLQTopic:      getEnvStr(EnvBookingDLQTopic, DefaultBookingDLQTopic),
		ConsumerGroupID:      getEnvStr(EnvConsumerGroupID, DefaultConsumerGroupID),
		RabbitMQURL:          getEnvStr(EnvRabbitMQURL, DefaultRabbitMQURL),
		BookingQueue:         getEnvStr(EnvBookingQueue, DefaultBookingQueue),
		NotifyBufferSize:     getEnvNum(EnvNotifyBufferSize, DefaultNotifyBufferSize),
		NotifyPublishTimeout: getEnvDuration(EnvNotifyPublishTimeout, DefaultNotifyPublishTimeout),

		PricingServiceURL: getEnvStr(EnvPricingServiceURL, DefaultPricingServiceURL),
		PricingTimeout:    getEnvDuration(EnvPricingTimeout, DefaultPricingTimeout),

		AuthJWTSecret: os.Getenv(EnvAuthJWTSecret),
		AdminEmails:   getEnvList(EnvAdminEmails, DefaultAdminEmails),

		DynamoTable:       getEnvStr(EnvDynamoTable, DefaultDynamoTable),
		DynamoRegion:      getEnvStr(EnvDynamoRegion, DefaultDynamoRegion),
		DynamoEndpoint:    os.Getenv(EnvDynamoEndpoint),
		DynamoMaxAttempts: getEnvNum(EnvDynamoMaxAttempts, DefaultDynamoMaxAttempts),

		CapacityCheckSchedule:  getEnvStr(EnvCapacityCheckSchedule, DefaultCapacityCheckSchedule),
		CapacityAlertThreshold: getEnvNum(EnvCapacityAlertThreshold, DefaultCapacityAlertThreshold),
		CapacityWindowDays:     getEnvNum(EnvCapacityWindowDays, DefaultCapacityWindowDays),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects the search cache client. An empty REDIS_URL leaves the
// cache disabled.
func (cfg *Config) SetRedis() {
	if cfg.RedisURL == "" {
		cfg.Log.Warn("REDIS_URL not set, search cache disabled")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL)
}

func (cfg *Config) SetDynamo() {
	cfg.Client.SetDynamo(cfg.Log, cfg.DynamoRegion, cfg.DynamoEndpoint)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreBackend {
	case StoreMongo, StoreDynamoDB, StoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("StoreBackend must be one of mongo, dynamodb, memory, got: %s", cfg.StoreBackend))
	}

	if cfg.StoreBackend == StoreMongo {
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	}

	if cfg.StoreBackend == StoreDynamoDB {
		if cfg.DynamoTable == "" {
			errors = append(errors, "DynamoTable cannot be empty")
		}
		if cfg.DynamoRegion == "" {
			errors = append(errors, "DynamoRegion cannot be empty")
		}
		if cfg.DynamoMaxAttempts <= 0 {
			errors = append(errors, fmt.Sprintf("DynamoMaxAttempts must be positive, got: %d", cfg.DynamoMaxAttempts))
		}
	}

	switch cfg.NotifyBroker {
	case BrokerKafka:
		if cfg.BookingTopic == "" {
			errors = append(errors, "BookingTopic cannot be empty when NotifyBroker is kafka")
		}
	case BrokerRabbitMQ:
		if !strings.HasPrefix(cfg.RabbitMQURL, "amqp://") && !strings.HasPrefix(cfg.RabbitMQURL, "amqps://") {
			errors = append(errors, "RabbitMQURL must start with 'amqp://' or 'amqps://'")
		}
		if cfg.BookingQueue == "" {
			errors = append(errors, "BookingQueue cannot be empty when NotifyBroker is rabbitmq")
		}
	case BrokerNone:
	default:
		errors = append(errors, fmt.Sprintf("NotifyBroker must be one of kafka, rabbitmq, none, got: %s", cfg.NotifyBroker))
	}

	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"BookingTimeout", cfg.BookingTimeout},
		{"SearchCacheTTL", cfg.SearchCacheTTL},
		{"NotifyPublishTimeout", cfg.NotifyPublishTimeout},
		{"PricingTimeout", cfg.PricingTimeout},
	}
	for _, d := range positiveDurations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.NotifyBufferSize <= 0 {
		errors = append(errors, fmt.Sprintf("NotifyBufferSize must be positive, got: %d", cfg.NotifyBufferSize))
	}
	if cfg.CapacityAlertThreshold < 0 || cfg.CapacityAlertThreshold > 100 {
		errors = append(errors, fmt.Sprintf("CapacityAlertThreshold must be between 0 and 100, got: %d", cfg.CapacityAlertThreshold))
	}
	if cfg.CapacityWindowDays <= 0 {
		errors = append(errors, fmt.Sprintf("CapacityWindowDays must be positive, got: %d", cfg.CapacityWindowDays))
	}
	if cfg.CapacityCheckSchedule == "" {
		errors = append(errors, "CapacityCheckSchedule cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"booking_timeout", cfg.BookingTimeout,
		"redis_enabled", cfg.RedisURL != "",
		"search_cache_ttl", cfg.SearchCacheTTL,
		"notify_broker", cfg.NotifyBroker,
		"booking_topic", cfg.BookingTopic,
		"booking_queue", cfg.BookingQueue,
		"rabbitmq_url", redactURL(cfg.RabbitMQURL),
		"notify_buffer_size", cfg.NotifyBufferSize,
		"pricing_service_url", cfg.PricingServiceURL,
		"pricing_timeout", cfg.PricingTimeout,
		"jwt_secret_set", cfg.AuthJWTSecret != "",
		"admin_emails", len(cfg.AdminEmails),
		"dynamo_table", cfg.DynamoTable,
		"dynamo_region", cfg.DynamoRegion,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"capacity_check_schedule", cfg.CapacityCheckSchedule,
		"capacity_alert_threshold", cfg.CapacityAlertThreshold,
		"capacity_window_days", cfg.CapacityWindowDays,
	)
}

// IsAdminEmail reports whether email is configured as an administrator.
func (cfg *Config) IsAdminEmail(email string) bool {
	for _, e := range cfg.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func redactURL(uri string) string {
	credentialRegex := regexp.MustCompile(`(\w+://)[^:/]+:[^@]+@`)
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
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
