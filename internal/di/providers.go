package di

import (
	"context"
	"fmt"
	"time"

	"EvalPull/internal/domain/repository"
	"EvalPull/internal/handler/api"
	internalrepo "EvalPull/internal/repository"
	icache "EvalPull/internal/service/cache"
	"EvalPull/internal/usecase"
	pkgch "EvalPull/pkg/clickhouse"
	"EvalPull/pkg/config"
	pkgkafka "EvalPull/pkg/kafka"
	applogger "EvalPull/pkg/logger"
	"EvalPull/pkg/metrics"
	"EvalPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s
            (id Int64, asset String, price Float64, scraped_timestamp DateTime, scraped_date Date)
            ENGINE=MergeTree ORDER BY (asset, scraped_timestamp)`, cfg.ClickHouse.ObservationTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s
            (raw_data_id Int64, asset String, model_type String, score Float64,
             predicted_timestamp DateTime, predicted_date Date)
            ENGINE=MergeTree ORDER BY (asset, model_type, predicted_timestamp)`, cfg.ClickHouse.PredictionTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s
            (model_type String, asset String, corrected_prediction Int32, total_predicted Int32,
             accuracy Float32, weight Float32, computed_at DateTime)
            ENGINE=MergeTree ORDER BY (asset, model_type, computed_at)`, cfg.ClickHouse.WeightTable),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer; nil when kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideObservationStore creates the ClickHouse observation store.
func ProvideObservationStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.ObservationStore {
	store := internalrepo.NewCHObservationStore(chClient, cfg.ClickHouse.ObservationTable)
	store.SetLogger(l)
	return store
}

// ProvidePredictionStore creates the ClickHouse prediction store.
func ProvidePredictionStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.PredictionStore {
	store := internalrepo.NewCHPredictionStore(chClient, cfg.ClickHouse.PredictionTable)
	store.SetLogger(l)
	return store
}

// ProvideWeightStore creates the ClickHouse weight store.
func ProvideWeightStore(chClient *pkgch.Client, cfg *config.Config) repository.WeightStore {
	return internalrepo.NewCHWeightStore(chClient, cfg.ClickHouse.WeightTable)
}

// ProvideWeightPublisher creates the Kafka weight publisher; nil when kafka is disabled.
func ProvideWeightPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.WeightPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaWeightPublisher(producer, cfg.Kafka.Topic)
}

// ProvidePipeline creates the evaluation pipeline use case.
func ProvidePipeline(
	obs repository.ObservationStore,
	preds repository.PredictionStore,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.EvaluationPipeline {
	p := usecase.NewEvaluationPipeline(obs, preds, m)
	p.SetLogger(l)
	return p
}

// ProvideCache creates the weights result cache: Redis when configured,
// otherwise in-process TTL.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideHandler creates the weights HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	pipeline *usecase.EvaluationPipeline,
	obs repository.ObservationStore,
	store repository.WeightStore,
	pub repository.WeightPublisher,
	c icache.BytesCache,
	chClient *pkgch.Client,
) *api.WeightsEchoHandler {
	return api.NewWeightsEchoHandler(
		l,
		pipeline,
		obs,
		store,
		pub,
		c,
		cfg.Evaluation.CacheTTL,
		cfg.Evaluation.RateLimitRPS,
		chClient.Health,
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.WeightsEchoHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	c icache.BytesCache,
) *server.App {
	return server.New(cfg, l, handler, chClient, producer, c)
}
