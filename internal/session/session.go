// Package session keeps the admin login on the server: the browser only holds
// an opaque id cookie, the token and user live in the cache store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"portfolio-bff/internal/cache"
	"portfolio-bff/internal/models"
)

const (
	CookieName = "portfolio_session"
	keyPrefix  = "session:"
)

// ErrNoSession is returned by Load when the request carries no live session.
var ErrNoSession = errors.New("no session")

type Session struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Manager struct {
	store  cache.Store
	ttl    time.Duration
	secure bool
}

func NewManager(store cache.Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure}
}

// Load returns the session referenced by the request cookie.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" {
		return nil, ErrNoSession
	}
	return m.get(c.Request.Context(), id)
}

func (m *Manager) get(ctx context.Context, id string) (*Session, error) {
	data, err := m.store.Get(ctx, keyPrefix+id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load session")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, pkgerrors.Wrap(err, "decode session")
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Create starts a new session for a successful login and sets the cookie.
func (m *Manager) Create(c *gin.Context, token string, user models.User) (*Session, error) {
	s := &Session{ID: uuid.NewString(), Token: token, User: user}
	if err := m.Save(c, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save stores s and refreshes the cookie.
func (m *Manager) Save(c *gin.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return pkgerrors.Wrap(err, "encode session")
	}
	if err := m.store.Set(c.Request.Context(), keyPrefix+s.ID, data, m.ttl); err != nil {
		return pkgerrors.Wrap(err, "store session")
	}
	m.setCookie(c, s.ID, int(m.ttl.Seconds()))
	return nil
}

// Destroy removes the stored session and expires the cookie. It is safe to
// call without a session.
func (m *Manager) Destroy(c *gin.Context) error {
	id, _ := c.Cookie(CookieName)
	m.setCookie(c, "", -1)
	if id == "" {
		return nil
	}
	return m.store.Delete(c.Request.Context(), keyPrefix+id)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", m.secure, true)
}
