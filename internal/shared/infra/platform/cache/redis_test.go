package cache

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestRedisCache_Namespace(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.Equal(t, "hexagreet:greeting:latest", NewRedisCache(client, "hexagreet", time.Minute).key("greeting:latest"))
	assert.Equal(t, "greeting:latest", NewRedisCache(client, "", time.Minute).key("greeting:latest"))
}
