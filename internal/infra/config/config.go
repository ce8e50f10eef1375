package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App       AppSettings       `mapstructure:"app"`
	Postgres  PostgresSettings  `mapstructure:"postgres"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Kafka     KafkaSettings     `mapstructure:"kafka"`
	JWT       JWTSettings       `mapstructure:"jwt"`
	S3        S3Settings        `mapstructure:"s3"`
	Telemetry TelemetrySettings `mapstructure:"telemetry"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Argon2    Argon2Settings    `mapstructure:"argon2"`
	Seed      SeedSettings      `mapstructure:"seed"`
}

type AppSettings struct {
	Name           string   `mapstructure:"name"`
	Env            string   `mapstructure:"env"`
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// RedisSettings configures Redis connection and TLS
type RedisSettings struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	DB         int    `mapstructure:"db"`
	Password   string `mapstructure:"password"`
	TLSEnabled bool   `mapstructure:"tls_enabled"`
}

// KafkaSettings configures Kafka producer
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

// JWTSettings configures the shared symmetric signing secret and lifetime.
type JWTSettings struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// S3Settings configures the attachment object store.
type S3Settings struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

// RateLimitSettings configures rate limiting windows and max attempts per endpoint
type RateLimitSettings struct {
	WindowDuration      time.Duration `mapstructure:"window_duration"`
	LoginMaxAttempts    int           `mapstructure:"login_max_attempts"`
	RegisterMaxAttempts int           `mapstructure:"register_max_attempts"`
}

// Argon2Settings configures Argon2id password hashing parameters
type Argon2Settings struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
	SaltLength  uint32 `mapstructure:"salt_length"`
	KeyLength   uint32 `mapstructure:"key_length"`
}

type TelemetrySettings struct {
	MetricsPort  int     `mapstructure:"metrics_port"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	ServiceName  string  `mapstructure:"service_name"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

// SeedSettings configures the bootstrap catalogue and admin account.
type SeedSettings struct {
	Enabled       bool   `mapstructure:"enabled"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
	CoursesFile   string `mapstructure:"courses_file"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("SPHERE")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.allowed_origins",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"postgres.max_conn_lifetime",
		"postgres.max_conn_idle_time",
		"postgres.health_check_period",
		"redis.host",
		"redis.port",
		"redis.db",
		"redis.password",
		"redis.tls_enabled",
		"kafka.brokers",
		"kafka.topic_prefix",
		"kafka.async",
		"jwt.secret",
		"jwt.issuer",
		"jwt.token_ttl",
		"s3.endpoint",
		"s3.region",
		"s3.bucket",
		"s3.access_key_id",
		"s3.secret_access_key",
		"s3.use_path_style",
		"s3.public_base_url",
		"telemetry.metrics_port",
		"telemetry.otlp_endpoint",
		"telemetry.service_name",
		"telemetry.sampling_rate",
		"rate_limit.window_duration",
		"rate_limit.login_max_attempts",
		"rate_limit.register_max_attempts",
		"argon2.memory",
		"argon2.iterations",
		"argon2.parallelism",
		"argon2.salt_length",
		"argon2.key_length",
		"seed.enabled",
		"seed.admin_email",
		"seed.admin_password",
		"seed.admin_name",
		"seed.courses_file",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required (set SPHERE_JWT_SECRET)")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cuet-sphere")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.allowed_origins", []string{"*"})

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "sphere")
	v.SetDefault("postgres.password", "sphere_password")
	v.SetDefault("postgres.database", "sphere")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.tls_enabled", false)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic_prefix", "sphere")
	v.SetDefault("kafka.async", true)

	v.SetDefault("jwt.issuer", "cuet-sphere")
	v.SetDefault("jwt.token_ttl", "24h")

	v.SetDefault("s3.region", "ap-southeast-1")
	v.SetDefault("s3.bucket", "cuet-sphere-files")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("telemetry.metrics_port", 9090)
	v.SetDefault("telemetry.otlp_endpoint", "http://localhost:4318")
	v.SetDefault("telemetry.service_name", "cuet-sphere")
	v.SetDefault("telemetry.sampling_rate", 1.0)

	v.SetDefault("rate_limit.window_duration", "1m")
	v.SetDefault("rate_limit.login_max_attempts", 5)
	v.SetDefault("rate_limit.register_max_attempts", 3)

	v.SetDefault("argon2.memory", 65536) // 64 MB
	v.SetDefault("argon2.iterations", 3)
	v.SetDefault("argon2.parallelism", 4)
	v.SetDefault("argon2.salt_length", 16)
	v.SetDefault("argon2.key_length", 32)

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.admin_email", "")
	v.SetDefault("seed.admin_password", "")
	v.SetDefault("seed.admin_name", "System Admin")
	v.SetDefault("seed.courses_file", "")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "SPHERE_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
