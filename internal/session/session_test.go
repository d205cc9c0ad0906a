package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "a", Data{UserID: 1, Role: "Cliente"}, time.Hour))
	require.NoError(t, s.Save(ctx, "b", Data{UserID: 2, Role: "Vendedor"}, 3*time.Hour))

	d, err := s.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, Data{UserID: 1, Role: "Cliente"}, d)

	now = now.Add(2 * time.Hour)

	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, s.Sweep())

	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, "a", Data{UserID: 1}, time.Hour))
	require.NoError(t, s.Delete(ctx, "a"))

	_, err := s.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestSigner(t *testing.T) {
	now := time.Now()
	signer := NewSigner("secret-a", time.Hour)

	token, err := signer.Sign("sid-1", now)
	require.NoError(t, err)

	sid, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewSigner("secret-b", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		forged := parts[0] + "." + parts[1] + "x." + parts[2]
		_, err := signer.Parse(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := signer.Sign("sid-2", now.Add(-2*time.Hour))
		require.NoError(t, err)
		_, err = signer.Parse(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := signer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestManagerRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	mgr := NewManager(store, "secret", time.Hour, CookieOptions{Name: "sess"})

	// login
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, mgr.Start(c, Data{UserID: 7, Role: "Vendedor"}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sess", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	current := func(cookie *http.Cookie) (Data, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if cookie != nil {
			c.Request.AddCookie(cookie)
		}
		d, ok, err := mgr.Current(c)
		require.NoError(t, err)
		return d, ok
	}

	d, ok := current(cookies[0])
	require.True(t, ok)
	assert.Equal(t, Data{UserID: 7, Role: "Vendedor"}, d)

	_, ok = current(nil)
	assert.False(t, ok, "anonymous")

	_, ok = current(&http.Cookie{Name: "sess", Value: cookies[0].Value + "x"})
	assert.False(t, ok, "tampered")

	// logout
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logout", nil)
	c.Request.AddCookie(cookies[0])
	require.NoError(t, mgr.Destroy(c))

	_, ok = current(cookies[0])
	assert.False(t, ok, "destroyed sessions are gone even with a valid cookie")
}
