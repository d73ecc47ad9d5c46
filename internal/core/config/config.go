package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name        string
	Env         string
	HTTP        HTTP
	Admin       AdminHTTP
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int `mapstructure:"access_token_ttl_min"`
}

type Redis struct {
	Addr            string `mapstructure:"addr"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	ProductTTLSec   int    `mapstructure:"product_ttl_sec"`
	IdempotencyTTLS int    `mapstructure:"idempotency_ttl_sec"`
}

type Kafka struct {
	Brokers    string `mapstructure:"brokers"` // CSV；为空则不发事件
	OrderTopic string `mapstructure:"order_topic"`
	// 单条事件写入的最长等待；写入在后台进行，不占用请求
	PublishTimeoutMS int `mapstructure:"publish_timeout_ms"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int `mapstructure:"max_open_conns"`
	MaxIdleConns       int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool
	LogLevel           string `mapstructure:"log_level"`
}

type Admin struct {
	DefaultUsername string `mapstructure:"default_username"`
	DefaultPassword string `mapstructure:"default_password"`
}

type Order struct {
	RepriceFromCatalog bool `mapstructure:"reprice_from_catalog"`
}

type Limits struct {
	RPS            float64
	Burst          int
	Concurrency    int64
	MaxBodyBytes   int64 `mapstructure:"max_body_bytes"`
	RequestTimeout int   `mapstructure:"request_timeout_sec"`
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Kafka  Kafka `mapstructure:"kafka"`
	Admin  Admin
	Order  Order
	Limits Limits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "brewbuy")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.issuer", "brewbuy")
	v.SetDefault("jwt.access_token_ttl_min", 600)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "file:brewbuy.db?cache=shared")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("redis.product_ttl_sec", 300)
	v.SetDefault("redis.idempotency_ttl_sec", 86400)
	v.SetDefault("kafka.order_topic", "brewbuy.orders")
	v.SetDefault("kafka.publish_timeout_ms", 2000)
	v.SetDefault("admin.default_username", "admin")
	v.SetDefault("admin.default_password", "admin123")
	v.SetDefault("limits.rps", 50)
	v.SetDefault("limits.burst", 100)
	v.SetDefault("limits.concurrency", 300)
	v.SetDefault("limits.max_body_bytes", 16<<20)
	v.SetDefault("limits.request_timeout_sec", 10)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load 读取 YAML 配置，APP_ 前缀环境变量覆盖
func Load(path string) (*Config, error) {
	v := newViper()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Default 仅默认值 + 环境变量（测试与无配置文件时使用）
func Default() *Config {
	var c Config
	_ = newViper().Unmarshal(&c)
	return &c
}
