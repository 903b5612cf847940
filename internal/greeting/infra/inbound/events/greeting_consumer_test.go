package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	greetingCache "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/cache"
	integration "github.com/davicafu/hexagreet/internal/shared/events"
	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
	"github.com/davicafu/hexagreet/tests/mocks"
)

func encode(t *testing.T, evt integration.GreetingCreated) []byte {
	t.Helper()
	msg, err := integration.NewIntegrationEvent(domain.GreetingCreatedIntegration, evt.ID.String(), evt)
	require.NoError(t, err)
	data, err := sharedUtils.JSON.Marshal(msg)
	require.NoError(t, err)
	return data
}

func latest(t *testing.T, c *mocks.DummyCache) (greetingCache.Snapshot, bool) {
	t.Helper()
	var snap greetingCache.Snapshot
	hit, err := c.Get(context.Background(), domain.CacheKeyLatest, &snap)
	require.NoError(t, err)
	return snap, hit
}

func TestGreetingConsumer_ProjectsIntoCache(t *testing.T) {
	c := mocks.NewDummyCache()
	consumer := NewGreetingConsumer(c, time.Minute, zap.NewNop())
	evt := integration.GreetingCreated{ID: uuid.New(), Message: "Hi", CreatedAt: time.Now().UTC()}

	consumer.HandleMessage(context.Background(), evt.ID.String(), encode(t, evt))

	snap, hit := latest(t, c)
	require.True(t, hit)
	assert.Equal(t, evt.ID, snap.ID)
	assert.Equal(t, "Hi", snap.Message)
}

func TestGreetingConsumer_IgnoresStaleAndDuplicateEvents(t *testing.T) {
	c := mocks.NewDummyCache()
	consumer := NewGreetingConsumer(c, time.Minute, zap.NewNop())
	now := time.Now().UTC()
	newer := integration.GreetingCreated{ID: uuid.New(), Message: "new", CreatedAt: now}
	older := integration.GreetingCreated{ID: uuid.New(), Message: "old", CreatedAt: now.Add(-time.Hour)}

	consumer.HandleMessage(context.Background(), "", encode(t, newer))
	consumer.HandleMessage(context.Background(), "", encode(t, older))
	consumer.HandleMessage(context.Background(), "", encode(t, newer))

	snap, _ := latest(t, c)
	assert.Equal(t, "new", snap.Message)
	assert.Equal(t, 1, c.Sets())
}

func TestGreetingConsumer_InvalidMessages(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := mocks.NewDummyCache()
	consumer := NewGreetingConsumer(c, time.Minute, zap.New(core))

	consumer.HandleMessage(context.Background(), "k", []byte("not json"))
	consumer.HandleMessage(context.Background(), "k", []byte(`{"type":"greeting.deleted","data":{}}`))
	tooLong := integration.GreetingCreated{ID: uuid.New(), Message: strings.Repeat("a", 201), CreatedAt: time.Now()}
	consumer.HandleMessage(context.Background(), "k", encode(t, tooLong))

	_, hit := latest(t, c)
	assert.False(t, hit)
	assert.Equal(t, 1, logs.FilterMessage("Failed to unmarshal integration event").Len())
	assert.Equal(t, 1, logs.FilterMessage("Unknown event type").Len())
	assert.Equal(t, 1, logs.FilterMessage("Failed to process greeting event").Len())
}
