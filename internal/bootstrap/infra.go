package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/config"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	greetingConsumer "github.com/davicafu/hexagreet/internal/greeting/infra/inbound/events"
	"github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/memory"
	greetingMongo "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/mongodb"
	greetingPostgres "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/postgre"
	greetingSQLite "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/sqlite"
	infraEvents "github.com/davicafu/hexagreet/internal/shared/infra/events"
	sharedBus "github.com/davicafu/hexagreet/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexagreet/internal/shared/infra/platform/cache"

	_ "modernc.org/sqlite"
)

const (
	connectTimeout  = 5 * time.Second
	consumerGroupID = "hexagreet-greeting-projection"
	busBufferSize   = 10
)

// ---------------- DB ----------------

// openGreetingStore abre el almacén elegido en GREETING_STORE.
func openGreetingStore(ctx context.Context, cfg *config.Config, res *resources, log *zap.Logger) (domain.GreetingRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.GreetingStore {
	case config.StoreMemory:
		log.Info("Using in-memory greeting store")
		return memory.NewGreetingRepoMemory(), nil

	case config.StoreSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite: %w", err)
		}
		res.onClose("sqlite", db.Close)
		if err := greetingSQLite.InitSQLite(db); err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		log.Info("Using SQLite greeting store", zap.String("path", cfg.SQLitePath))
		return greetingSQLite.NewGreetingRepoSQLite(db), nil

	case config.StorePostgres:
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres: %w", err)
		}
		res.onClose("postgres", db.Close)
		if err := greetingPostgres.InitPostgres(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("Using Postgres greeting store")
		return greetingPostgres.NewGreetingRepoPostgres(db), nil

	case config.StoreMongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		res.onClose("mongodb", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			return client.Disconnect(ctx)
		})
		repo, err := greetingMongo.NewGreetingRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		log.Info("Using MongoDB greeting store", zap.String("database", cfg.MongoDB))
		return repo, nil
	}
	return nil, fmt.Errorf("unknown greeting store %q", cfg.GreetingStore)
}

// ---------------- Cache ----------------

// openCache usa Redis si REDIS_ADDR responde; si no, cae a la caché en memoria.
func openCache(ctx context.Context, cfg *config.Config, res *resources, log *zap.Logger) sharedCache.Cache {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis not available, falling back to in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rdb.Close()
		} else {
			log.Info("Redis connected, cache enabled", zap.String("addr", cfg.RedisAddr))
			res.onClose("redis", rdb.Close)
			return sharedCache.NewRedisCache(rdb, "hexagreet", cfg.CacheTTL)
		}
	}

	mem := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	res.onClose("memory-cache", func() error { mem.Stop(); return nil })
	return mem
}

// ---------------- Events ---------------

// openEventBus crea el bus de integración (Kafka o canales en memoria) y registra
// el consumidor que proyecta los saludos en la caché.
func openEventBus(cfg *config.Config, consumer *greetingConsumer.GreetingConsumer, res *resources, log *zap.Logger) sharedBus.EventBus {
	if cfg.UseKafka {
		log.Info("Using Kafka as event bus", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))

		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		res.onClose("kafka-writer", writer.Close)

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  consumerGroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		res.onClose("kafka-reader", reader.Close)

		adapter := infraEvents.NewConsumerAdapter(reader, consumer, log)
		res.addConsumer("kafka:"+cfg.KafkaTopic, adapter.Start)
		return infraEvents.NewKafkaPublisher(writer, log)
	}

	log.Info("Using in-memory event bus (Go channels)", zap.String("topic", cfg.KafkaTopic))
	bus := infraEvents.NewInMemoryEventBus(cfg.KafkaTopic)
	ch := bus.Subscribe(busBufferSize)
	res.onClose("memory-bus", func() error { bus.Close(); return nil })
	res.addConsumer("memory:"+cfg.KafkaTopic, func(ctx context.Context) <-chan struct{} {
		return infraEvents.BackgroundConsumerChan(ctx, ch, consumer, log)
	})
	return bus
}
