package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// GreetingAnalyticsHandler registra cada GreetingCreated en la tabla greetings_log de ClickHouse.
type GreetingAnalyticsHandler struct {
	db  *sql.DB
	now func() time.Time
}

// Verificación estática
var _ sharedEvents.Handler = (*GreetingAnalyticsHandler)(nil)

// OpenClickHouse abre la conexión y comprueba que responde.
func OpenClickHouse(ctx context.Context, addr, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

// InitClickHouse crea la tabla de log si no existe.
func InitClickHouse(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS greetings_log (
			event_id String,
			greeting_id String,
			message String,
			created_at DateTime64(3),
			event_time DateTime64(3)
		) ENGINE = MergeTree() ORDER BY (created_at, greeting_id)`)
	return err
}

func NewGreetingAnalyticsHandler(db *sql.DB) *GreetingAnalyticsHandler {
	return &GreetingAnalyticsHandler{db: db, now: time.Now}
}

func (h *GreetingAnalyticsHandler) EventName() string { return domain.GreetingCreatedEvent }

// Handle inserta una fila. ClickHouse trabaja mejor en lotes, así que se usa la misma
// ruta transaccional que LogBatch aunque el lote sea de uno.
func (h *GreetingAnalyticsHandler) Handle(ctx context.Context, event *sharedEvents.DomainEvent) error {
	return h.LogBatch(ctx, []*sharedEvents.DomainEvent{event})
}

// LogBatch inserta un lote de eventos GreetingCreated.
func (h *GreetingAnalyticsHandler) LogBatch(ctx context.Context, events []*sharedEvents.DomainEvent) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Se ignora si el Commit() es exitoso

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO greetings_log (event_id, greeting_id, message, created_at, event_time) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	eventTime := h.now().UTC()
	for _, evt := range events {
		if _, err := stmt.ExecContext(ctx,
			evt.EventID(),
			evt.AggregateID(),
			domain.GreetingCreatedMessage(evt),
			domain.GreetingCreatedAt(evt),
			eventTime,
		); err != nil {
			return fmt.Errorf("failed to exec statement for event %s: %w", evt.EventID(), err)
		}
	}

	return tx.Commit()
}
