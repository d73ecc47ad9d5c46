package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"brewbuy/internal/core/auth"
	"brewbuy/internal/core/cache/cachetest"
	"brewbuy/internal/core/database"
	"brewbuy/internal/domain"
	"brewbuy/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      "file:" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memIdempotency struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (m *memIdempotency) Claim(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

type fixture struct {
	db       *gorm.DB
	jwter    *auth.JWTer
	admins   *AdminUserService
	users    *UserService
	auth     *AuthService
	products *ProductService
	orders   *OrderService
	events   *recordingPublisher
	idem     *memIdempotency
	cache    *cachetest.Memory
}

func newFixture(t *testing.T, opts OrderOptions) *fixture {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	f := &fixture{
		db:     db,
		jwter:  &auth.JWTer{Secret: []byte("test"), Issuer: "brewbuy", TTL: time.Hour},
		events: &recordingPublisher{},
		idem:   &memIdempotency{},
	}
	productRepo := repo.NewProductRepo(db)
	f.admins = NewAdminUserService(repo.NewAdminUserRepo(db), "admin", log)
	require.NoError(t, f.admins.EnsureDefault(context.Background(), "admin123"))
	f.users = NewUserService(repo.NewUserRepo(db), log)
	f.auth = NewAuthService(f.admins, f.users, f.jwter, log)
	c, mem := cachetest.NewCache()
	f.cache = mem
	f.products = NewProductService(productRepo, c, time.Minute, log)
	f.orders = NewOrderService(repo.NewOrderRepo(db), productRepo, f.events, f.idem, opts, log)
	return f
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	return u
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
