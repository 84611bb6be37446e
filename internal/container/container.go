package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/config"
	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/noteful/internal/infrastructure/postgres"
	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/metrics"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

// Stores is the repository set for one storage backend.
type Stores struct {
	Users   repository.UserRepository
	Folders repository.FolderRepository
	Tags    repository.TagRepository
	Notes   repository.NoteRepository
	Tx      repository.Transactor
	Ping    func(ctx context.Context) error
}

func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Users:   pginfra.NewUserRepository(pool),
		Folders: pginfra.NewFolderRepository(pool),
		Tags:    pginfra.NewTagRepository(pool),
		Notes:   pginfra.NewNoteRepository(pool),
		Tx:      pginfra.NewTxManager(pool),
		Ping:    pool.Ping,
	}
}

func MemoryStores(st *memory.Store) Stores {
	return Stores{
		Users:   st.Users(),
		Folders: st.Folders(),
		Tags:    st.Tags(),
		Notes:   st.Notes(),
		Tx:      st,
		Ping:    st.Ping,
	}
}

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	stores      Stores

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher

	metricsRegistry *prometheus.Registry
	collector       metrics.Recorder = metrics.Nop{}
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetStores(s Stores)           { stores = s }
func GetStores() Stores            { return stores }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

// SetMetrics installs the registry served on /metrics and the collector
// registered on it.
func SetMetrics(reg *prometheus.Registry, c *metrics.Collector) {
	metricsRegistry = reg
	collector = c
}
func GetMetricsRegistry() *prometheus.Registry { return metricsRegistry }
func GetMetrics() metrics.Recorder             { return collector }

// Reset clears every singleton. Tests call it between setups.
func Reset() {
	cfg, logger, redisClient = nil, nil, nil
	stores = Stores{}
	jwtManager, rabbitPub = nil, nil
	metricsRegistry, collector = nil, metrics.Nop{}
}
