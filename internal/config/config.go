package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	YooKassa YooKassaConfig
	Mail     MailConfig
	Admin    AdminConfig
	Features FeatureFlags
	LogFile  string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

type YooKassaConfig struct {
	ShopID    string
	SecretKey string
	ReturnURL string
	BaseURL   string
	Timeout   time.Duration
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Timeout  time.Duration
}

type AdminConfig struct {
	Token string
}

type FeatureFlags struct {
	EnableOrderEvents  bool
	EnableOrderCaching bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 4000),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "sello"),
			Password:     getEnvString("DB_PASSWORD", "sello"),
			Name:         getEnvString("DB_NAME", "sello"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     splitCSV(getEnvString("KAFKA_BROKERS", "localhost:9092")),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "sello.orders"),
		},
		YooKassa: YooKassaConfig{
			ShopID:    getEnvString("YOOKASSA_SHOP_ID", ""),
			SecretKey: getEnvString("YOOKASSA_SECRET_KEY", ""),
			ReturnURL: getEnvString("YOOKASSA_RETURN_URL", ""),
			BaseURL:   getEnvString("YOOKASSA_BASE_URL", "https://api.yookassa.ru/v3"),
			Timeout:   time.Duration(getEnvInt("YOOKASSA_TIMEOUT", 15)) * time.Second,
		},
		Mail: MailConfig{
			Host:     getEnvString("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnvString("SMTP_USER", ""),
			Password: getEnvString("SMTP_PASSWORD", ""),
			From:     getEnvString("SMTP_FROM", "noreply@sellomarket.ru"),
			Timeout:  time.Duration(getEnvInt("SMTP_TIMEOUT", 10)) * time.Second,
		},
		Admin: AdminConfig{
			Token: getEnvString("ADMIN_TOKEN", ""),
		},
		Features: FeatureFlags{
			EnableOrderEvents:  getEnvBool("ENABLE_ORDER_EVENTS", false),
			EnableOrderCaching: getEnvBool("ENABLE_ORDER_CACHING", false),
		},
		LogFile: getEnvString("LOG_FILE", ""),
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
