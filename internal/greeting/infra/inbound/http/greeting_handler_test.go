package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	v1 "github.com/davicafu/hexagreet/internal/greeting/application/v1"
	v2 "github.com/davicafu/hexagreet/internal/greeting/application/v2"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	"github.com/davicafu/hexagreet/internal/shared/infra/observability"
	"github.com/davicafu/hexagreet/internal/shared/infra/platform/httpserver"
	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
	"github.com/davicafu/hexagreet/pkg/utils"
	"github.com/davicafu/hexagreet/tests/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGreetingRouter(repo domain.GreetingRepository, pub *mocks.DummyPublisher) *gin.Engine {
	log := zap.NewNop()
	handler := NewGreetingHandler(
		v1.NewGetGreetingUseCase(repo, log),
		v2.NewGetGreetingUseCase(repo, log),
		v2.NewCreateGreetingUseCase(repo, pub, log),
	)
	return httpserver.NewRouter(httpserver.Options{
		Log:        log,
		Metrics:    observability.NewMetrics(),
		Production: true,
		Routes:     []httpserver.RouteRegistrar{RegisterGreetingRoutes(handler)},
	})
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, sharedUtils.JSON.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestGetGreetingV1_HTTPContract(t *testing.T) {
	r := newGreetingRouter(mocks.NewInMemoryGreetingRepo(), &mocks.DummyPublisher{})

	rec := serve(r, http.MethodGet, "/api/v1/greetings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello World!"}`, rec.Body.String())
	assert.Equal(t, "v1", rec.Header().Get(httpserver.VersionHeader))
}

func TestGetGreetingV2_HTTPContract(t *testing.T) {
	r := newGreetingRouter(mocks.NewInMemoryGreetingRepo(), &mocks.DummyPublisher{})

	rec := serve(r, http.MethodGet, "/api/v2/greetings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[v2.GreetingResponseDto](t, rec)
	assert.Equal(t, "Hello World!", body.Message)
	assert.Equal(t, "2.0", body.Version)
	_, err := time.Parse(time.RFC3339Nano, body.Timestamp)
	assert.NoError(t, err)
	assert.Equal(t, "v2", rec.Header().Get(httpserver.VersionHeader))
}

// Todo campo de v1 existe en v2 con el mismo valor.
func TestVersionCompatibility_V1IsSubsetOfV2(t *testing.T) {
	r := newGreetingRouter(mocks.NewInMemoryGreetingRepo(), &mocks.DummyPublisher{})

	one := decode[map[string]any](t, serve(r, http.MethodGet, "/api/v1/greetings", ""))
	two := decode[map[string]any](t, serve(r, http.MethodGet, "/api/v2/greetings", ""))

	for k, v := range one {
		assert.Contains(t, two, k)
		assert.Equal(t, v, two[k])
	}
}

func TestCreateGreetingV2_HTTPContract(t *testing.T) {
	repo := mocks.NewInMemoryGreetingRepo()
	pub := &mocks.DummyPublisher{}
	r := newGreetingRouter(repo, pub)

	rec := serve(r, http.MethodPost, "/api/v2/greetings", `{"message":"Hola"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode[v2.GreetingResponseDto](t, rec)
	assert.Equal(t, "Hola", body.Message)
	assert.Equal(t, "2.0", body.Version)

	require.Len(t, pub.Published(), 1)
	assert.Equal(t, domain.GreetingCreatedEvent, pub.Published()[0].EventName())

	// Las dos versiones ven el saludo nuevo.
	assert.JSONEq(t, `{"message":"Hola"}`, serve(r, http.MethodGet, "/api/v1/greetings", "").Body.String())
}

func TestCreateGreetingV2_InvalidMessage(t *testing.T) {
	cases := map[string]string{
		"empty":       `{"message":""}`,
		"no_field":    `{}`,
		"blank":       `{"message":"   "}`,
		"too_long":    `{"message":"` + strings.Repeat("a", domain.MessageMaxLength+1) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			pub := &mocks.DummyPublisher{}
			r := newGreetingRouter(mocks.NewInMemoryGreetingRepo(), pub)

			rec := serve(r, http.MethodPost, "/api/v2/greetings", body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decode[utils.ErrorResponse](t, rec)
			assert.Equal(t, "InvalidGreetingException", resp.Error)
			assert.Equal(t, string(domain.ErrCodeInvalidGreeting), resp.Code)
			assert.NotEmpty(t, resp.RequestID)
			assert.Empty(t, pub.Published())
		})
	}
}

func TestCreateGreetingV2_MalformedBody(t *testing.T) {
	r := newGreetingRouter(mocks.NewInMemoryGreetingRepo(), &mocks.DummyPublisher{})

	rec := serve(r, http.MethodPost, "/api/v2/greetings", `{"message":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[utils.ErrorResponse](t, rec)
	assert.Equal(t, "ValidationError", resp.Error)
}

func TestGetGreeting_RepositoryFailureIs500(t *testing.T) {
	repo := new(mocks.MockGreetingRepository)
	repo.On("GetGreeting", mock.Anything).Return(nil, errors.New("connection reset"))
	r := newGreetingRouter(repo, &mocks.DummyPublisher{})

	for _, path := range []string{"/api/v1/greetings", "/api/v2/greetings"} {
		rec := serve(r, http.MethodGet, path, "")

		require.Equal(t, http.StatusInternalServerError, rec.Code, path)
		resp := decode[utils.ErrorResponse](t, rec)
		assert.Equal(t, "GreetingFetchException", resp.Error)
		assert.Equal(t, string(domain.ErrCodeGreetingFetch), resp.Code)
		assert.NotContains(t, resp.Message, "connection reset")
	}
}
