package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEnsureRequestID(t *testing.T) {
	ctx, rid := EnsureRequestID(context.Background())
	require.NotEmpty(t, rid)
	assert.Equal(t, rid, RequestID(ctx))

	same, again := EnsureRequestID(ctx)
	assert.Equal(t, rid, again)
	assert.Equal(t, ctx, same)
}

func TestInject(t *testing.T) {
	headers := map[string]string{}
	Inject(context.Background(), headers)
	assert.Empty(t, headers)

	Inject(WithRequestID(context.Background(), "abc"), headers)
	assert.Equal(t, "abc", headers[HeaderRequestID])
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(zap.NewNop()))

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("mints an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		rid := w.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(rid)
		require.NoError(t, err)
		assert.Equal(t, rid, seen)
	})

	t.Run("reuses a valid inbound id", func(t *testing.T) {
		in := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, in)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, in, w.Header().Get(HeaderRequestID))
		assert.Equal(t, in, seen)
	})

	t.Run("replaces a malformed inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(HeaderRequestID))
	})
}
