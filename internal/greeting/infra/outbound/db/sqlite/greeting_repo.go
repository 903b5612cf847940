package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	// _ "github.com/mattn/go-sqlite3" // better performance but requires gcc
	_ "modernc.org/sqlite"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
)

// timeLayout tiene ancho fijo para que ORDER BY sobre el texto sea cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// GreetingRepoSQLite persiste saludos en SQLite (driver puro Go de modernc).
type GreetingRepoSQLite struct {
	db *sql.DB
}

// Verificación estática
var (
	_ domain.GreetingRepository = (*GreetingRepoSQLite)(nil)
	_ domain.Pinger             = (*GreetingRepoSQLite)(nil)
)

func NewGreetingRepoSQLite(db *sql.DB) *GreetingRepoSQLite {
	return &GreetingRepoSQLite{db: db}
}

// InitSQLite crea la tabla greetings si no existe.
func InitSQLite(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS greetings (
            id TEXT PRIMARY KEY,
            message TEXT NOT NULL,
            created_at TEXT NOT NULL
        )
    `)
	return err
}

// ------------------ Métodos ------------------

func (r *GreetingRepoSQLite) Save(ctx context.Context, g *domain.Greeting) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO greetings (id, message, created_at) VALUES (?, ?, ?)`,
		g.ID().String(), g.Message(), g.CreatedAt().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert greeting: %w", err)
	}
	return nil
}

// GetGreeting devuelve el saludo más reciente; sin filas devuelve DefaultGreeting.
func (r *GreetingRepoSQLite) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, message, created_at FROM greetings ORDER BY created_at DESC, rowid DESC LIMIT 1`)

	var idStr, message, createdAtStr string
	if err := row.Scan(&idStr, &message, &createdAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewGreeting(domain.DefaultGreeting)
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in DB: %w", err)
	}
	createdAt, err := time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at in DB: %w", err)
	}
	return domain.Reconstitute(id, message, createdAt)
}

func (r *GreetingRepoSQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
