package integration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	v1 "github.com/davicafu/hexagreet/internal/greeting/application/v1"
	v2 "github.com/davicafu/hexagreet/internal/greeting/application/v2"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	greetingConsumer "github.com/davicafu/hexagreet/internal/greeting/infra/inbound/events"
	greetingCache "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/cache"
	greetingMongo "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/mongodb"
	greetingPostgres "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/postgre"
	greetingSQLite "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/db/sqlite"
	greetingEvents "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/events"
	infraEvents "github.com/davicafu/hexagreet/internal/shared/infra/events"
	"github.com/davicafu/hexagreet/tests/mocks"

	_ "modernc.org/sqlite"
)

// Saludo guardado en SQLite, GreetingCreated reenviado al bus y proyectado por el
// consumidor en su propia caché; v1 y v2 ven el mismo mensaje.
func TestGreetingSQLiteIntegration_CreateProjectRead(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()
	require.NoError(t, greetingSQLite.InitSQLite(db))

	log := zap.NewNop()
	cache := mocks.NewDummyCache()
	repo := greetingCache.NewCachedGreetingRepo(greetingSQLite.NewGreetingRepoSQLite(db), cache, time.Minute, log)

	bus := infraEvents.NewInMemoryEventBus(domain.GreetingTopic)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	projection := mocks.NewDummyCache()
	done := infraEvents.BackgroundConsumerChan(ctx, bus.Subscribe(10), greetingConsumer.NewGreetingConsumer(projection, time.Minute, log), log)

	publisher := infraEvents.NewInMemoryPublisher(log, nil)
	publisher.Subscribe(greetingEvents.NewGreetingForwarder(bus, log))

	res := v2.NewCreateGreetingUseCase(repo, publisher, log).Execute(ctx, "Integrado")
	require.True(t, res.IsSuccess())

	require.Eventually(t, func() bool { return projection.Has(domain.CacheKeyLatest) }, 2*time.Second, 10*time.Millisecond)
	var projected greetingCache.Snapshot
	_, err = projection.Get(ctx, domain.CacheKeyLatest, &projected)
	require.NoError(t, err)
	assert.Equal(t, "Integrado", projected.Message)

	one := v1.NewGetGreetingUseCase(repo, log).Execute(ctx)
	two := v2.NewGetGreetingUseCase(repo, log).Execute(ctx)
	require.True(t, one.IsSuccess())
	require.True(t, two.IsSuccess())
	assert.Equal(t, "Integrado", one.Value().Message)
	assert.Equal(t, one.Value().Message, two.Value().Message)

	cancel()
	<-done
}

// setupPostgresTestDB se conecta a Postgres y crea el esquema.
func setupPostgresTestDB(t *testing.T) *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL no está configurada, saltando test de integración con Postgres")
	}

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, greetingPostgres.InitPostgres(context.Background(), db))

	_, err = db.Exec(`TRUNCATE TABLE greetings`)
	require.NoError(t, err)
	return db
}

func TestGreetingPostgresIntegration_SaveGet(t *testing.T) {
	db := setupPostgresTestDB(t)
	defer db.Close()
	repo := greetingPostgres.NewGreetingRepoPostgres(db)
	ctx := context.Background()

	// Vacío: saludo por defecto
	g, err := repo.GetGreeting(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGreeting, g.Message())

	first, err := domain.NewGreeting("Primero")
	require.NoError(t, err)
	second, err := domain.NewGreeting("Segundo")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	g, err = repo.GetGreeting(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID(), g.ID())
	assert.Equal(t, "Segundo", g.Message())
	assert.NoError(t, repo.Ping(ctx))
}

func TestGreetingMongoIntegration_SaveGet(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI no está configurada, saltando test de integración con MongoDB")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	dbName := "hexagreet_test"
	require.NoError(t, client.Database(dbName).Collection("greetings").Drop(ctx))
	repo, err := greetingMongo.NewGreetingRepoMongoDB(ctx, client, dbName)
	require.NoError(t, err)

	g, err := domain.NewGreeting("Desde Mongo")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, g))

	got, err := repo.GetGreeting(ctx)
	require.NoError(t, err)
	assert.Equal(t, g.ID(), got.ID())
	assert.Equal(t, "Desde Mongo", got.Message())
}
