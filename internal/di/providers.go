package di

import (
	"context"
	"fmt"
	"time"

	"PredVal/internal/domain/repository"
	"PredVal/internal/handler/api"
	internalrepo "PredVal/internal/repository"
	"PredVal/internal/usecase"
	pkgcache "PredVal/pkg/cache"
	pkgch "PredVal/pkg/clickhouse"
	"PredVal/pkg/config"
	xhttp "PredVal/pkg/http"
	pkgkafka "PredVal/pkg/kafka"
	applogger "PredVal/pkg/logger"
	"PredVal/pkg/metrics"
	"PredVal/pkg/server"
	"PredVal/pkg/util"
)

const schemaTimeout = 10 * time.Second

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the clickhouse backend is selected.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}
	// Connect to the server default database: the report database may not
	// exist yet and every report table name is qualified.
	client, err := pkgch.NewClient(
		pkgch.WithAddr(cfg.ClickHouse.Host, cfg.ClickHouse.Port),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithPool(4, 2, 5*time.Minute),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideReportStore creates the ClickHouse report store and ensures its table exists.
func ProvideReportStore(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) (repository.ReportStore, error) {
	if client == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	store := internalrepo.NewClickHouseReportStore(client.DB(), cfg.ClickHouse.Database+"."+cfg.ClickHouse.Table)
	store.SetLogger(l)
	if err := store.Init(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer when the kafka backend is selected.
func ProvideKafkaProducer(cfg *config.Config, recorder *metrics.Recorder) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers...),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithDelivery(cfg.Kafka.RequiredAcks, cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithClientID("predval-"+cfg.Environment),
		pkgkafka.WithRegisterer(recorder.Registry()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideReportPublisher creates the Kafka report publisher.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCacheService connects to Redis when the report cache is enabled.
func ProvideCacheService(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddrs(util.SplitList(cfg.Cache.Addr)...),
		pkgcache.WithRedisAuth(cfg.Cache.Password, cfg.Cache.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideReportCache creates the report cache on top of the cache service.
func ProvideReportCache(svc pkgcache.Service) repository.ReportCache {
	if svc == nil {
		return nil
	}
	return internalrepo.NewReportCache(svc)
}

// ProvideValidationPipeline creates the core validation pipeline.
func ProvideValidationPipeline(l *applogger.Logger, m repository.Metrics) *usecase.ValidationPipeline {
	return usecase.NewValidationPipeline(l, m)
}

// ProvideReportUseCase creates the report use case with its optional backends.
func ProvideReportUseCase(
	cfg *config.Config,
	source repository.LineSource,
	writer repository.ReportWriter,
	pipeline *usecase.ValidationPipeline,
	store repository.ReportStore,
	publisher repository.ReportPublisher,
	cache repository.ReportCache,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ReportUseCase {
	uc := usecase.NewReportUseCase(source, writer, pipeline, m, l)
	if store != nil {
		uc.WithStore(store)
	}
	if publisher != nil {
		uc.WithPublisher(publisher)
	}
	if cache != nil {
		uc.WithCache(cache, cfg.Cache.TTL)
	}
	return uc
}

// ProvideHTTPHandler creates the Echo handler for serve mode.
func ProvideHTTPHandler(l *applogger.Logger, uc *usecase.ReportUseCase) xhttp.Handler {
	return api.NewReportEchoHandler(l, uc)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	recorder *metrics.Recorder,
	uc *usecase.ReportUseCase,
	h xhttp.Handler,
	chClient *pkgch.Client,
	cacheSvc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, recorder, uc, h, chClient, cacheSvc)
}
