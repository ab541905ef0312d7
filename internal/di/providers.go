package di

import (
	"context"
	"fmt"
	"time"

	drepo "CandleCache/internal/domain/repository"
	"CandleCache/internal/handler/api"
	internalrepo "CandleCache/internal/repository"
	"CandleCache/internal/service/stooq"
	"CandleCache/internal/usecase"
	pkgch "CandleCache/pkg/clickhouse"
	"CandleCache/pkg/config"
	xhttp "CandleCache/pkg/http"
	pkgkafka "CandleCache/pkg/kafka"
	applogger "CandleCache/pkg/logger"
	"CandleCache/pkg/metrics"
	"CandleCache/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideStore creates the configured cache store backend.
func ProvideStore(cfg *config.Config) (drepo.CandleStore, error) {
	switch cfg.Cache.Backend {
	case "file":
		return internalrepo.NewFileStore(cfg.Cache.Dir)
	case "redis":
		return internalrepo.NewRedisStore(internalrepo.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			TTL:      cfg.Cache.Redis.TTL,
		})
	case "memory":
		return internalrepo.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// ProvideUpstream creates the Stooq client.
func ProvideUpstream(cfg *config.Config) drepo.Upstream {
	return stooq.New(cfg.Stooq.BaseURL, cfg.Stooq.Timeout)
}

// ProvideClickHouseClient creates the archive's ClickHouse client, or nil
// when the archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Archive.Host),
		pkgch.WithPort(cfg.Archive.Port),
		pkgch.WithDatabase(cfg.Archive.Database),
		pkgch.WithCredentials(cfg.Archive.User, cfg.Archive.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.Archive.DialTimeout, cfg.Archive.ReadTimeout, cfg.Archive.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.Archive.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	table := cfg.Archive.Database + ".candle_history"
	if err := client.InitSchema(ctx, internalrepo.ArchiveSchema(cfg.Archive.Database, table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideArchive creates the candle archive, or nil when disabled.
func ProvideArchive(chClient *pkgch.Client, cfg *config.Config) drepo.Archive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseArchive(chClient.DB(), cfg.Archive.Database+".candle_history")
}

// ProvidePublisher creates the refresh-event publisher, or nil when disabled.
func ProvidePublisher(cfg *config.Config) (drepo.Publisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	topic := cfg.Events.Topic
	if topic == "" {
		topic = "candle.refresh"
	}
	return internalrepo.NewKafkaPublisher(producer, topic), nil
}

// ProvideCandleService assembles the core service with its optional
// collaborators.
func ProvideCandleService(
	store drepo.CandleStore,
	upstream drepo.Upstream,
	m drepo.Metrics,
	logger *applogger.Logger,
	publisher drepo.Publisher,
	archive drepo.Archive,
	cfg *config.Config,
) *usecase.CandleService {
	opts := []usecase.CandleServiceOption{}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	if archive != nil {
		opts = append(opts, usecase.WithArchive(archive))
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, usecase.WithUpstreamLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec))
	}
	return usecase.NewCandleService(store, upstream, m, logger, opts...)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(logger *applogger.Logger, svc *usecase.CandleService, store drepo.CandleStore) xhttp.Handler {
	return api.NewCandlesHandler(logger, svc, store)
}

// ProvideJanitor creates the file-store janitor, or nil when it does not
// apply (disabled, or a non-file backend).
func ProvideJanitor(cfg *config.Config, store drepo.CandleStore, logger *applogger.Logger) *usecase.Janitor {
	if !cfg.Janitor.Enabled {
		return nil
	}
	fs, ok := store.(*internalrepo.FileStore)
	if !ok {
		return nil
	}
	return usecase.NewJanitor(fs.Dir(), cfg.Janitor.Schedule, cfg.Janitor.RetentionDays, logger)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	store drepo.CandleStore,
	janitor *usecase.Janitor,
	publisher drepo.Publisher,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, logger, handler, store, janitor, publisher, chClient)
}
