package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	CommerceConfig   CommerceConfig
	RajaOngkirConfig RajaOngkirConfig
	MidtransConfig   MidtransConfig
	RedisConfig      RedisConfig
	KafkaConfig      KafkaConfig
	SessionConfig    SessionConfig
	CacheConfig      CacheConfig
	TracingConfig    TracingConfig
}

type CommerceConfig struct {
	APIURL       string
	ChannelToken string
}

type RajaOngkirConfig struct {
	BaseURL  string
	APIKey   string
	OriginID string
	Couriers []string
}

type MidtransConfig struct {
	ServerKey         string
	Environment       string
	PaymentMethodCode string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	KeyPrefix  string
	TTL        time.Duration
}

type CacheConfig struct {
	KeyPrefix     string
	PurgeInterval time.Duration
}

type TracingConfig struct {
	CollectorHost string
}

const (
	defaultRajaOngkirBaseURL = "https://rajaongkir.komerce.id/api/v1"
	defaultCouriers          = "jne:sicepat:jnt:pos:tiki"
	defaultCacheKeyPrefix    = "storefront:cache:"
	defaultSessionKeyPrefix  = "storefront:session:"
)

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		CommerceConfig: CommerceConfig{
			APIURL:       os.Getenv("COMMERCE_API_URL"),
			ChannelToken: os.Getenv("COMMERCE_CHANNEL_TOKEN"),
		},
		RajaOngkirConfig: RajaOngkirConfig{
			BaseURL:  getEnv("RAJAONGKIR_BASE_URL", defaultRajaOngkirBaseURL),
			APIKey:   os.Getenv("RAJAONGKIR_API_KEY"),
			OriginID: os.Getenv("RAJAONGKIR_ORIGIN_ID"),
			Couriers: splitCouriers(getEnv("RAJAONGKIR_COURIERS", defaultCouriers)),
		},
		MidtransConfig: MidtransConfig{
			ServerKey:         os.Getenv("MIDTRANS_SERVER_KEY"),
			Environment:       getEnv("MIDTRANS_ENVIRONMENT", "sandbox"),
			PaymentMethodCode: getEnv("PAYMENT_METHOD_CODE", "midtrans"),
		},
		RedisConfig: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		SessionConfig: SessionConfig{
			Secret:     os.Getenv("SESSION_SECRET"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "storefront_session"),
			KeyPrefix:  getEnv("SESSION_KEY_PREFIX", defaultSessionKeyPrefix),
			TTL:        24 * time.Hour,
		},
		CacheConfig: CacheConfig{
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", defaultCacheKeyPrefix),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err == nil {
		conf.RedisConfig.DB = redisDB
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	purgeInterval, err := time.ParseDuration(os.Getenv("CACHE_PURGE_INTERVAL"))
	if err == nil {
		conf.CacheConfig.PurgeInterval = purgeInterval
	}

	return &conf
}

// CachePurgeSecret is looked up on every call so a rotated secret takes
// effect without a restart.
func CachePurgeSecret() string {
	return strings.TrimSpace(os.Getenv("CACHE_PURGE_SECRET"))
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitCouriers(raw string) []string {
	var couriers []string
	for _, code := range strings.Split(raw, ":") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			couriers = append(couriers, code)
		}
	}
	return couriers
}
