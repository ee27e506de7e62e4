package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu_ledger_server/pkg/util/jwt"
)

func newProtectedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	jwt.Init("test-secret-0123456789abcdef0123456789", 15, 168)
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/whoami", JWTAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return engine
}

func get(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsAccessToken(t *testing.T) {
	engine := newProtectedRouter(t)

	token, err := jwt.GenerateAccessToken("Utest00000000")
	require.NoError(t, err)

	w := get(engine, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Utest00000000", w.Body.String())
}

func TestJWTAuthRejections(t *testing.T) {
	engine := newProtectedRouter(t)

	// no header
	assert.Equal(t, http.StatusUnauthorized, get(engine, "").Code)

	// not a bearer scheme
	assert.Equal(t, http.StatusUnauthorized, get(engine, "Basic abc").Code)

	// garbage token
	assert.Equal(t, http.StatusUnauthorized, get(engine, "Bearer not-a-token").Code)

	// refresh tokens are not valid API credentials
	refresh, _, err := jwt.GenerateRefreshToken("Utest00000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(engine, "Bearer "+refresh).Code)
}
