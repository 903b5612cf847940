package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// GreetingRepoPostgres implementa GreetingRepository para PostgreSQL.
type GreetingRepoPostgres struct {
	db *sql.DB
}

// Verificación estática
var (
	_ domain.GreetingRepository = (*GreetingRepoPostgres)(nil)
	_ domain.Pinger             = (*GreetingRepoPostgres)(nil)
)

func NewGreetingRepoPostgres(db *sql.DB) *GreetingRepoPostgres {
	return &GreetingRepoPostgres{db: db}
}

// InitPostgres crea la tabla greetings si no existe.
func InitPostgres(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS greetings (
			id UUID PRIMARY KEY,
			message VARCHAR(200) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_greetings_created_at ON greetings (created_at DESC)`)
	return err
}

func (r *GreetingRepoPostgres) Save(ctx context.Context, g *domain.Greeting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO greetings (id, message, created_at) VALUES ($1, $2, $3)`,
		g.ID(), g.Message(), g.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert greeting: %w", err)
	}
	return nil
}

func (r *GreetingRepoPostgres) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, message, created_at FROM greetings ORDER BY created_at DESC LIMIT 1`)

	var (
		id        uuid.UUID
		message   string
		createdAt time.Time
	)
	if err := row.Scan(&id, &message, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewGreeting(domain.DefaultGreeting)
		}
		return nil, err
	}
	return domain.Reconstitute(id, message, createdAt.UTC())
}

func (r *GreetingRepoPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
