package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CookieOptions struct {
	Name   string
	Secure bool
}

// Manager ties the store, the signer and the cookie together.
type Manager struct {
	store  Store
	signer Signer
	ttl    time.Duration
	cookie CookieOptions
}

func NewManager(store Store, secret string, ttl time.Duration, cookie CookieOptions) *Manager {
	if cookie.Name == "" {
		cookie.Name = "market_session"
	}
	return &Manager{
		store:  store,
		signer: NewSigner(secret, ttl),
		ttl:    ttl,
		cookie: cookie,
	}
}

// Start opens a new session for d and sets the cookie.
func (m *Manager) Start(c *gin.Context, d Data) error {
	sid := uuid.NewString()

	if err := m.store.Save(c.Request.Context(), sid, d, m.ttl); err != nil {
		return err
	}

	token, err := m.signer.Sign(sid, time.Now())
	if err != nil {
		_ = m.store.Delete(c.Request.Context(), sid)
		return err
	}

	m.setCookie(c, token, int(m.ttl.Seconds()))
	return nil
}

// Current resolves the caller's session. ok is false for anonymous callers,
// tampered or expired cookies and sessions the store no longer has.
func (m *Manager) Current(c *gin.Context) (Data, bool, error) {
	sid, ok := m.sessionID(c)
	if !ok {
		return Data{}, false, nil
	}

	d, err := m.store.Load(c.Request.Context(), sid)
	if errors.Is(err, ErrNotFound) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, err
	}
	return d, true, nil
}

// Destroy removes the server-side record and expires the cookie.
func (m *Manager) Destroy(c *gin.Context) error {
	defer m.setCookie(c, "", -1)

	sid, ok := m.sessionID(c)
	if !ok {
		return nil
	}
	return m.store.Delete(c.Request.Context(), sid)
}

func (m *Manager) CookieName() string {
	return m.cookie.Name
}

func (m *Manager) sessionID(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.cookie.Name)
	if err != nil || token == "" {
		return "", false
	}

	sid, err := m.signer.Parse(token)
	if err != nil {
		return "", false
	}
	return sid, true
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookie.Name, value, maxAge, "/", "", m.cookie.Secure, true)
}
