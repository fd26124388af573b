package bootstrap

import (
	"context"
	"io"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/cache"
	"github.com/Domenick1991/airdesk/internal/catalog"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// App is the composition root shared by the console and the HTTP server.
type App struct {
	Catalog *catalog.Catalog
	Events  *kafka.Emitter

	closers []io.Closer
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewApp opens the configured snapshot store and event producer and loads the
// default snapshot into a fresh catalog.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	store, err := app.openStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Catalog = catalog.New(store,
		catalog.WithStateName(cfg.Storage.StateName),
		catalog.WithDefaultName(cfg.Storage.DefaultName),
	)

	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		app.closers = append(app.closers, producer)
		app.Events = kafka.NewEmitter(producer, cfg.Kafka.TicketTopic,
			kafka.WithNotificationsTopic(cfg.Kafka.NotificationsTopic))
	}

	ok, err := app.Catalog.LoadDefault(ctx)
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "load default catalog")
	}
	if !ok {
		log.WithField("snapshot", cfg.Storage.DefaultName).Warn("default snapshot not found, starting empty")
	}
	return app, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (catalog.Store, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, errors.Wrap(err, "connect postgres")
		}
		a.closers = append(a.closers, closerFunc(func() error { pool.Close(); return nil }))
		repo := repository.NewSnapshotRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.StorageRedis:
		store := cache.NewRedisSnapshotStore(cfg.Redis)
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return repository.NewFileSnapshotStore(cfg.Storage.Dir), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.WithError(err).Warn("close resource")
		}
	}
	a.closers = nil
}
