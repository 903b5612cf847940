package clickhouse

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedEvents "github.com/davicafu/hexagreet/internal/shared/domain/events"
)

// La sentencia de inserción es SQL estándar, así que se prueba contra SQLite en memoria.
func newLogDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	_, err = db.Exec(`CREATE TABLE greetings_log (
		event_id TEXT, greeting_id TEXT, message TEXT, created_at TIMESTAMP, event_time TIMESTAMP)`)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGreetingAnalyticsHandler_InsertsOneRowPerEvent(t *testing.T) {
	db := newLogDB(t)
	h := NewGreetingAnalyticsHandler(db)
	g, _ := domain.NewGreeting("Hi")
	evt := domain.NewGreetingCreated(g)

	require.NoError(t, h.Handle(context.Background(), evt))

	var eventID, greetingID, message string
	require.NoError(t, db.QueryRow(`SELECT event_id, greeting_id, message FROM greetings_log`).
		Scan(&eventID, &greetingID, &message))
	assert.Equal(t, evt.EventID(), eventID)
	assert.Equal(t, g.ID().String(), greetingID)
	assert.Equal(t, "Hi", message)
	assert.Equal(t, domain.GreetingCreatedEvent, h.EventName())
}

func TestGreetingAnalyticsHandler_LogBatch(t *testing.T) {
	db := newLogDB(t)
	h := NewGreetingAnalyticsHandler(db)

	var batch []*sharedEvents.DomainEvent
	for _, m := range []string{"a", "b", "c"} {
		g, _ := domain.NewGreeting(m)
		batch = append(batch, domain.NewGreetingCreated(g))
	}

	require.NoError(t, h.LogBatch(context.Background(), batch))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM greetings_log`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestGreetingAnalyticsHandler_FailsWithoutTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	g, _ := domain.NewGreeting("Hi")
	assert.Error(t, NewGreetingAnalyticsHandler(db).Handle(context.Background(), domain.NewGreetingCreated(g)))
}
