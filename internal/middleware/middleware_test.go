package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/marketplace/internal/models"
	"github.com/BruksfildServices01/marketplace/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// as fakes a resolved session.
func as(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != 0 {
			c.Set(ContextUserID, id)
			c.Set(ContextUserRole, role)
		}
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusNoContent) }

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		id     uint
		role   string
		status int
	}{
		{"anonymous", 0, "", http.StatusUnauthorized},
		{"buyer", 1, models.RoleBuyer, http.StatusUnauthorized},
		{"seller", 2, models.RoleSeller, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/products", as(tc.id, tc.role), RequireRole(models.RoleSeller), ok)
			assert.Equal(t, tc.status, serve(r, http.MethodPost, "/products").Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name   string
		id     uint
		role   string
		status int
	}{
		{"anonymous", 0, "", http.StatusUnauthorized},
		{"seller", 2, models.RoleSeller, http.StatusForbidden},
		{"admin", 3, models.RoleAdmin, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin/sellers", as(tc.id, tc.role), RequireAdmin(), ok)
			assert.Equal(t, tc.status, serve(r, http.MethodGet, "/admin/sellers").Code)
		})
	}
}

func TestRequireSession(t *testing.T) {
	r := gin.New()
	r.GET("/me", RequireSession(), ok)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me").Code)

	r = gin.New()
	r.GET("/me", as(9, models.RoleBuyer), RequireSession(), func(c *gin.Context) {
		id, found := UserID(c)
		assert.True(t, found)
		assert.Equal(t, uint(9), id)
		assert.Equal(t, models.RoleBuyer, Role(c))
		c.Status(http.StatusNoContent)
	})
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/me").Code)
}

func TestSessionMiddleware(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, "secret", time.Hour, session.CookieOptions{Name: "sess"})

	r := gin.New()
	r.Use(Session(mgr, nil))
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, mgr.Start(c, session.Data{UserID: 4, Role: models.RoleSeller}))
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": Role(c)})
	})

	login := serve(r, http.MethodPost, "/login")
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)

	assert.JSONEq(t, `{"id":4,"role":"Vendedor"}`, w.Body.String())

	anon := serve(r, http.MethodGet, "/whoami")
	assert.JSONEq(t, `{"id":0,"role":""}`, anon.Body.String())
}

type fakeUsers map[uint]*models.User

func (f fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestSessionMiddlewareChecksUser(t *testing.T) {
	store := session.NewMemoryStore()
	mgr := session.NewManager(store, "secret", time.Hour, session.CookieOptions{Name: "sess"})
	users := fakeUsers{4: {ID: 4, Role: models.RoleSeller}}

	r := gin.New()
	r.Use(Session(mgr, users))
	r.POST("/login/:id", func(c *gin.Context) {
		id := uint(4)
		if c.Param("id") != "4" {
			id = 5
		}
		require.NoError(t, mgr.Start(c, session.Data{UserID: id, Role: models.RoleSeller}))
		c.Status(http.StatusNoContent)
	})
	r.POST("/products", RequireRole(models.RoleSeller), ok)

	call := func(login string) *httptest.ResponseRecorder {
		cookies := serve(r, http.MethodPost, login).Result().Cookies()
		require.Len(t, cookies, 1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req.AddCookie(cookies[0])
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, call("/login/4").Code)

	w := call("/login/5")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	expired := w.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Equal(t, "sess", expired[0].Name)
	assert.Negative(t, expired[0].MaxAge)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2)

	r := gin.New()
	r.POST("/login", rl.Handler(), ok)

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/login").Code)

	rl.Reset()
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/login").Code)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5)
	rl.now = func() time.Time { return now }

	rl.limiter("10.0.0.1")
	now = now.Add(20 * time.Minute)
	rl.limiter("10.0.0.2")

	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")

	now = now.Add(time.Hour)
	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	assert.Empty(t, rl.visitors)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://shop.example.com"}))
	r.GET("/api/products", ok)

	preflight := func(origin string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
		req.Header.Set("Origin", origin)
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://shop.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
