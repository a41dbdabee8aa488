package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Razorpay Razorpay `validate:"required"`

	Auth Auth `validate:"required"`

	Cache Cache `validate:"required"`

	Order Order
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID       string   `validate:"required"`
	Brokers       []string `validate:"required,min=1,dive,hostname_port"`
	CallbackTopic string   `validate:"required"`
	EventsTopic   string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`

	AutoMigrate bool
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Razorpay struct {
	KeyID     string        `validate:"required"`
	KeySecret string        `validate:"required"`
	BaseURL   string        `validate:"required,url"`
	Currency  string        `validate:"required,len=3,uppercase"`
	Timeout   time.Duration `validate:"gt=0"`
}

type Auth struct {
	JWTSecret string `validate:"required,min=16"`
}

type Cache struct {
	Backend   string        `validate:"required,oneof=lru redis"`
	Capacity  int           `validate:"gte=1"`
	TTL       time.Duration `validate:"gt=0"`
	RedisAddr string        `validate:"required_if=Backend redis"`
}

type Order struct {
	// Отклонять заказ, если totalPrice не совпадает с суммой позиций
	RecomputeTotal bool
	// Разрешать только переходы pending→processing→shipped→delivered и отмену
	StrictTransitions bool
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID:       env("KAFKA_GROUP_ID", "order-service"),
			CallbackTopic: env("KAFKA_CALLBACK_TOPIC", "payment-callbacks"),
			EventsTopic:   env("KAFKA_EVENTS_TOPIC", "order-events"),
			Brokers:       strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "shop"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),

			AutoMigrate: envBool("POSTGRES_AUTO_MIGRATE", false),
		},

		Razorpay: Razorpay{
			KeyID:     env("RAZORPAY_KEY_ID", ""),
			KeySecret: env("RAZORPAY_KEY_SECRET", ""),
			BaseURL:   env("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
			Currency:  env("RAZORPAY_CURRENCY", "INR"),
			Timeout:   envDuration("RAZORPAY_TIMEOUT", 10*time.Second),
		},

		Auth: Auth{
			JWTSecret: env("JWT_SECRET", ""),
		},

		Cache: Cache{
			Backend:   env("CACHE_BACKEND", "lru"),
			Capacity:  envInt("CACHE_CAPACITY", 1000),
			TTL:       envDuration("CACHE_TTL", 10*time.Minute),
			RedisAddr: env("REDIS_ADDR", ""),
		},

		Order: Order{
			RecomputeTotal:    envBool("ORDER_RECOMPUTE_TOTAL", false),
			StrictTransitions: envBool("ORDER_STRICT_TRANSITIONS", false),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
