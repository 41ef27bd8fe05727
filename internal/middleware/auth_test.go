package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"youthhub_backend/internal/model"
	"youthhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func signToken(t *testing.T, secret string, userID uint, role model.UserRole) string {
	t.Helper()
	claims := util.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api", AuthMiddleware(testSecret))
	group.GET("/me", func(c *gin.Context) {
		id, _ := LearnerID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	group.POST("/winners", RoleMiddleware(model.Teacher), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func request(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(router, http.MethodGet, "/api/me", "not-a-jwt").Code)
	assert.Equal(t, http.StatusUnauthorized,
		request(router, http.MethodGet, "/api/me", signToken(t, "other-secret", 7, model.Student)).Code)

	w := request(router, http.MethodGet, "/api/me", signToken(t, testSecret, 7, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusForbidden,
		request(router, http.MethodPost, "/api/winners", signToken(t, testSecret, 1, model.Student)).Code)
	assert.Equal(t, http.StatusOK,
		request(router, http.MethodPost, "/api/winners", signToken(t, testSecret, 2, model.Teacher)).Code)
	assert.Equal(t, http.StatusOK,
		request(router, http.MethodPost, "/api/winners", signToken(t, testSecret, 3, model.Admin)).Code)
}
