package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nishantd01/grud/clients"
	"github.com/nishantd01/grud/config"
	"github.com/nishantd01/grud/db"
	"github.com/nishantd01/grud/service"
)

func testRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewUserService(&clients.MockUsersAPI{}, db.NewUserStore(), service.NewToaster(time.Second, 5), nil)
	return newRouter(&config.AppConfig{CORSAllowedOrigins: origins}, svc)
}

func TestRouter_Healthz(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter([]string{"*"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_PageAndAPIMounted(t *testing.T) {
	r := testRouter([]string{"*"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_CORS(t *testing.T) {
	r := testRouter([]string{"http://localhost:9000"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Origin", "http://localhost:9000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:9000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	some := corsConfig([]string{"https://example.com"})
	assert.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"https://example.com"}, some.AllowOrigins)
}
