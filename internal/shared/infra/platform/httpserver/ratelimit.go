package httpserver

import (
	"container/list"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// maxTrackedClients es el tope duro de clientes seguidos a la vez.
const maxTrackedClients = 10000

// RateLimitResponse es el cuerpo de una respuesta 429.
type RateLimitResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Limit      int    `json:"limit"`
	Remaining  int    `json:"remaining"`
	RetryAfter int    `json:"retryAfter"`
}

type client struct {
	key      string
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter aplica un token bucket por IP: max peticiones por ventana, con ráfaga de max.
//
// Los clientes se guardan en orden de último acceso (frente = más reciente). Al llegar
// a maxClients se olvida al menos reciente; si vuelve, empieza con el bucket lleno.
type RateLimiter struct {
	max        int
	window     time.Duration
	every      rate.Limit
	maxClients int

	mu      sync.Mutex
	clients map[string]*list.Element
	order   *list.List
	now     func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:        max,
		window:     window,
		every:      rate.Every(window / time.Duration(max)),
		maxClients: maxTrackedClients,
		clients:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

func (l *RateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if el, ok := l.clients[key]; ok {
		cl := el.Value.(*client)
		cl.lastSeen = now
		l.order.MoveToFront(el)
		return cl.limiter
	}

	l.evictIdle(now)
	for l.order.Len() >= l.maxClients {
		l.remove(l.order.Back())
	}

	cl := &client{key: key, limiter: rate.NewLimiter(l.every, l.max), lastSeen: now}
	l.clients[key] = l.order.PushFront(cl)
	return cl.limiter
}

// evictIdle quita desde el final los clientes que llevan más de una ventana sin peticiones:
// su bucket ya estaría lleno, así que olvidarlos no cambia nada.
func (l *RateLimiter) evictIdle(now time.Time) {
	for el := l.order.Back(); el != nil; el = l.order.Back() {
		if now.Sub(el.Value.(*client).lastSeen) <= l.window {
			return
		}
		l.remove(el)
	}
}

func (l *RateLimiter) remove(el *list.Element) {
	cl := l.order.Remove(el).(*client)
	delete(l.clients, cl.key)
}

// Middleware devuelve el gin.HandlerFunc. Añade las cabeceras X-RateLimit-* siempre
// y Retry-After al rechazar.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := l.now()
		lim := l.limiterFor(c.ClientIP(), now)
		allowed := lim.AllowN(now, 1)
		tokens := lim.TokensAt(now)

		remaining := int(math.Max(0, math.Floor(tokens)))
		resetSecs := secondsUntil(float64(l.max)-tokens, l.every)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSecs))

		if allowed {
			c.Next()
			return
		}

		retryAfter := secondsUntil(1-tokens, l.every)
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitResponse{
			Error:      "Too Many Requests",
			Message:    fmt.Sprintf("Rate limit exceeded. Please try again in %d seconds.", retryAfter),
			StatusCode: http.StatusTooManyRequests,
			Limit:      l.max,
			Remaining:  0,
			RetryAfter: retryAfter,
		})
	}
}

// secondsUntil devuelve cuántos segundos (redondeando hacia arriba) tardan en reponerse n tokens.
func secondsUntil(n float64, r rate.Limit) int {
	if n <= 0 || r <= 0 {
		return 0
	}
	return int(math.Ceil(n / float64(r)))
}
