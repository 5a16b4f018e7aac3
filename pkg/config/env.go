package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvStoreBackend   = "STORE_BACKEND"
	EnvBookingTimeout = "BOOKING_TIMEOUT"

	EnvRedisURL       = "REDIS_URL"
	EnvSearchCacheTTL = "SEARCH_CACHE_TTL"

	EnvNotifyBroker         = "NOTIFY_BROKER"
	EnvBookingTopic         = "BOOKING_TOPIC"
	EnvBookingDLQTopic      = "BOOKING_DLQ_TOPIC"
	EnvConsumerGroupID      = "CONSUMER_GROUP_ID"
	EnvRabbitMQURL          = "RABBITMQ_URL"
	EnvBookingQueue         = "BOOKING_QUEUE"
	EnvNotifyBufferSize     = "NOTIFY_BUFFER_SIZE"
	EnvNotifyPublishTimeout = "NOTIFY_PUBLISH_TIMEOUT"

	EnvPricingServiceURL = "PRICING_SERVICE_URL"
	EnvPricingTimeout    = "PRICING_TIMEOUT"

	EnvAuthJWTSecret = "AUTH_JWT_SECRET"
	EnvAdminEmails   = "ADMIN_EMAILS"

	EnvDynamoTable       = "DYNAMO_TABLE"
	EnvDynamoRegion      = "DYNAMO_REGION"
	EnvDynamoEndpoint    = "DYNAMO_ENDPOINT"
	EnvDynamoMaxAttempts = "DYNAMO_MAX_ATTEMPTS"

	EnvCapacityCheckSchedule  = "CAPACITY_CHECK_SCHEDULE"
	EnvCapacityAlertThreshold = "CAPACITY_ALERT_THRESHOLD"
	EnvCapacityWindowDays     = "CAPACITY_WINDOW_DAYS"
)
