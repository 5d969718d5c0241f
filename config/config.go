package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env           string         `yaml:"env"`
	HTTPAddr      string         `yaml:"http_addr"`
	PublicBaseURL string         `yaml:"public_base_url"`
	UploadDir     string         `yaml:"upload_dir"`
	Database      DatabaseConfig `yaml:"database"`
	Redis         RedisConfig    `yaml:"redis"`
	Kafka         KafkaConfig    `yaml:"kafka"`
	NATS          NATSConfig     `yaml:"nats"`
	JWT           JWTConfig      `yaml:"jwt"`
	Log           LogConfig      `yaml:"log"`
	Bootstrap     BootstrapAdmin `yaml:"bootstrap"`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	MenuTTL  time.Duration `yaml:"menu_ttl"`
	StatsTTL time.Duration `yaml:"stats_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type JWTConfig struct {
	Secret         string        `yaml:"secret"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

// BootstrapAdmin seeds the first admin account on startup when both fields are set.
type BootstrapAdmin struct {
	Email    string `yaml:"admin_email"`
	Password string `yaml:"admin_password"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Env:           "production",
		HTTPAddr:      ":8081",
		PublicBaseURL: "http://localhost:8081",
		UploadDir:     "./uploads",
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			Name:            "mfood",
			User:            "postgres",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			MenuTTL:  10 * time.Minute,
			StatsTTL: 30 * 24 * time.Hour,
		},
		Kafka: KafkaConfig{
			Topic:   "pos-events",
			GroupID: "agg-svc",
		},
		NATS: NATSConfig{
			SubjectPrefix: "pos",
		},
		JWT: JWTConfig{
			AccessTokenTTL: 12 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads .env (when present), then the optional YAML file, then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// RequireJWTSecret is called by services that issue or verify tokens. Development
// falls back to a fixed secret.
func (c *Config) RequireJWTSecret() error {
	if c.JWT.Secret != "" {
		return nil
	}
	if !c.IsDevelopment() {
		return errors.New("JWT secret is not set")
	}
	c.JWT.Secret = "development-secret"
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.Env = getEnv("APP_ENV", c.Env)
	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", c.PublicBaseURL), "/")
	c.UploadDir = getEnv("UPLOAD_DIR", c.UploadDir)

	c.Database.DSN = getEnv("DATABASE_URL", c.Database.DSN)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		c.Database.AutoMigrate, _ = strconv.ParseBool(v)
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		c.Redis.Addr = host + ":" + getEnv("REDIS_PORT", "6379")
	}
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		c.Kafka.Brokers = strings.Split(broker, ",")
	}
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)
	c.Kafka.GroupID = getEnv("KAFKA_GROUP_ID", c.Kafka.GroupID)

	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Bootstrap.Email = getEnv("BOOTSTRAP_ADMIN_EMAIL", c.Bootstrap.Email)
	c.Bootstrap.Password = getEnv("BOOTSTRAP_ADMIN_PASSWORD", c.Bootstrap.Password)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return "host=" + d.Host + " port=" + d.Port + " user=" + d.User +
		" password=" + d.Password + " dbname=" + d.Name + " sslmode=disable"
}

func SetupLogger(cfg *Config, service string) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stderr)
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger.With().Timestamp().Str("svc", service).Logger()
}

func MustInitPostgres(cfg DatabaseConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("Failed to connect to Redis")
	}

	return client
}

// NewKafkaReader returns nil when no broker is configured.
func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
		GroupID: cfg.GroupID,
	})
}

// Writes are synchronous, so a request waits at most this long for its batch to flush.
const kafkaBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter returns nil when no broker is configured.
func NewKafkaWriter(cfg KafkaConfig) *kafka.Writer {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           kafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// ConnectNATS returns a nil connection when no URL is configured.
func ConnectNATS(cfg NATSConfig, name string) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
