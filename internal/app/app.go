package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/core/cache"
	"brewbuy/internal/core/config"
	"brewbuy/internal/core/database"
	"brewbuy/internal/core/events"
	"brewbuy/internal/core/logger"
	"brewbuy/internal/domain"
	"brewbuy/internal/repo"
	"brewbuy/internal/service"
)

// LoadConfig 先加载 .env，再读 CONFIG_PATH 指向的 YAML
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(os.Getenv("CONFIG_PATH"))
}

// NewLogger 按配置构建 zap，并接管标准库 log
func NewLogger(cfg *config.Config) (*zap.Logger, func()) {
	l, sync := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.File.Enable,
		Filename:   cfg.Log.File.Filename,
		MaxSizeMB:  cfg.Log.File.MaxSizeMB,
		MaxBackups: cfg.Log.File.MaxBackups,
		MaxAgeDays: cfg.Log.File.MaxAgeDays,
		Compress:   cfg.Log.File.Compress,
	})
	undo := logger.RedirectStdLog(l, zapcore.InfoLevel)
	return l, func() { undo(); sync() }
}

func OpenDB(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	return db, nil
}

// App 两个 HTTP 服务与 CLI 共用的依赖
type App struct {
	Cfg *config.Config
	Log *zap.Logger
	DB  *gorm.DB
	JWT *auth.JWTer

	Admins   *service.AdminUserService
	Users    *service.UserService
	Auth     *service.AuthService
	Products *service.ProductService
	Orders   *service.OrderService

	cache *cache.Cache
	kafka *events.KafkaPublisher
}

func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	db, err := OpenDB(cfg, l)
	if err != nil {
		return nil, err
	}
	a := &App{
		Cfg: cfg,
		Log: l,
		DB:  db,
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		},
	}

	a.Admins = service.NewAdminUserService(repo.NewAdminUserRepo(db), cfg.Admin.DefaultUsername, l)
	if err := a.Admins.EnsureDefault(ctx, cfg.Admin.DefaultPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	a.Users = service.NewUserService(repo.NewUserRepo(db), l)
	a.Auth = service.NewAuthService(a.Admins, a.Users, a.JWT, l)

	// Redis 未配置时缓存直通、幂等校验关闭
	a.cache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if a.cache.Enabled() {
		if err := a.cache.RDB.Ping(ctx).Err(); err != nil {
			l.Warn("redis unreachable, cache calls will fall back to db", zap.Error(err))
		} else {
			l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}
	var idem domain.IdempotencyGuard
	if g := cache.NewIdempotency(a.cache, time.Duration(cfg.Redis.IdempotencyTTLS)*time.Second); g != nil {
		idem = g
	}

	var pub domain.OrderEventPublisher = events.Noop{}
	a.kafka = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.OrderTopic,
		time.Duration(cfg.Kafka.PublishTimeoutMS)*time.Millisecond, l)
	if a.kafka != nil {
		pub = a.kafka
		l.Info("order events enabled", zap.String("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrderTopic))
	}

	productRepo := repo.NewProductRepo(db)
	a.Products = service.NewProductService(productRepo, a.cache, time.Duration(cfg.Redis.ProductTTLSec)*time.Second, l)
	a.Orders = service.NewOrderService(repo.NewOrderRepo(db), productRepo, pub, idem,
		service.OrderOptions{RepriceFromCatalog: cfg.Order.RepriceFromCatalog}, l)
	return a, nil
}

func (a *App) Close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.Log.Warn("kafka close", zap.Error(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.Log.Warn("redis close", zap.Error(err))
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
