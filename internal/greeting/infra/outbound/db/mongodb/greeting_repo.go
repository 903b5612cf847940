package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// GreetingRepoMongoDB implementa GreetingRepository para MongoDB.
type GreetingRepoMongoDB struct {
	client    *mongo.Client
	greetings *mongo.Collection
}

// Verificación estática
var (
	_ domain.GreetingRepository = (*GreetingRepoMongoDB)(nil)
	_ domain.Pinger             = (*GreetingRepoMongoDB)(nil)
)

// NewGreetingRepoMongoDB comprueba la conexión y crea el índice por fecha.
func NewGreetingRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*GreetingRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	coll := client.Database(dbName).Collection("greetings")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create greetings index: %w", err)
	}

	return &GreetingRepoMongoDB{client: client, greetings: coll}, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen aquí para no contaminar el dominio con tags de BSON.

type mongoGreeting struct {
	ID        string    `bson:"_id"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"createdAt"`
}

func toMongo(g *domain.Greeting) mongoGreeting {
	return mongoGreeting{ID: g.ID().String(), Message: g.Message(), CreatedAt: g.CreatedAt()}
}

func (m mongoGreeting) toDomain() (*domain.Greeting, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in mongo document: %w", err)
	}
	return domain.Reconstitute(id, m.Message, m.CreatedAt.UTC())
}

func (r *GreetingRepoMongoDB) Save(ctx context.Context, g *domain.Greeting) error {
	if _, err := r.greetings.InsertOne(ctx, toMongo(g)); err != nil {
		return fmt.Errorf("failed to insert greeting: %w", err)
	}
	return nil
}

func (r *GreetingRepoMongoDB) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc mongoGreeting
	err := r.greetings.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.NewGreeting(domain.DefaultGreeting)
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *GreetingRepoMongoDB) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
