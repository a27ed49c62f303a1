// Package web serves the public portfolio pages and the admin console. Pages
// are rendered on the server from backend data; the browser never talks to
// the backend directly.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"portfolio-bff/internal/cache"
	"portfolio-bff/internal/config"
	"portfolio-bff/internal/models"
	"portfolio-bff/internal/services"
	"portfolio-bff/internal/session"
	"portfolio-bff/internal/telemetry"
)

const pageCachePrefix = "page:"

type Handler struct {
	cfg      *config.Config
	api      *services.API
	cache    cache.Store
	sessions *session.Manager
}

func NewHandler(cfg *config.Config, api *services.API, store cache.Store) *Handler {
	return &Handler{
		cfg:      cfg,
		api:      api,
		cache:    store,
		sessions: session.NewManager(store, cfg.SessionTTL, cfg.SessionSecure),
	}
}

// Router wires every route onto a new gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.HTMLRender = mustParseViews()
	r.MaxMultipartMemory = 4 * h.cfg.MaxImageBytes

	r.Use(gin.Recovery(), telemetry.RequestID(), telemetry.Logger(), telemetry.Middleware())

	static, _ := fs.Sub(assets, "static")
	r.StaticFS("/static", http.FS(static))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/", h.home)
	r.GET("/activities", h.activities)
	r.GET("/publications", h.publications)
	r.GET("/gallery", h.gallery)
	r.POST("/contact", h.contact)

	admin := r.Group("/admin")
	admin.GET("/login", h.loginPage)
	admin.POST("/login", h.login)
	admin.POST("/logout", h.logout)

	guarded := admin.Group("", h.requireAdmin)
	guarded.GET("", h.dashboard)
	guarded.POST("/sections/:name/toggle", h.toggleSection)
	guarded.GET("/sections/:name", h.manager)
	guarded.POST("/sections/:name", h.createEntry)
	guarded.POST("/sections/:name/items/:id", h.updateEntry)
	guarded.POST("/sections/:name/items/:id/delete", h.deleteEntry)
	guarded.GET("/activities-publications", h.activitiesAdmin)

	guarded.GET("/slider", h.sliderPage)
	guarded.POST("/slider/toggle", h.toggleSlider)
	guarded.POST("/slider/images", h.addSliderImage)
	guarded.POST("/slider/images/:id", h.updateSliderImage)
	guarded.POST("/slider/images/:id/delete", h.deleteSliderImage)
	guarded.POST("/slider/images/:id/move", h.moveSliderImage)

	guarded.GET("/messages", h.messages)
	guarded.POST("/messages/:id/read", h.markMessageRead)
	guarded.POST("/messages/:id/delete", h.deleteMessage)

	guarded.GET("/password", h.passwordPage)
	guarded.POST("/password", h.changePassword)

	r.NoRoute(func(c *gin.Context) {
		h.render(c, http.StatusNotFound, "error.html", "Not found", gin.H{"Message": "The page you are looking for does not exist."})
	})

	return r
}

// page is the data passed to the layout.
type page struct {
	Title string
	Flash *session.Flash
	User  *models.User
	Nav   []navGroup
	Data  any
}

func (h *Handler) render(c *gin.Context, status int, name, title string, data any) {
	p := page{Title: title, Flash: session.TakeFlash(c), Data: data}
	if u, ok := c.Get(userKey); ok {
		p.User = u.(*models.User)
	}
	if nav, ok := c.Get(navKey); ok {
		p.Nav = nav.([]navGroup)
	}
	c.HTML(status, name, p)
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func flashError(c *gin.Context, message string) {
	session.SetFlash(c, session.LevelError, message)
}

func flashSuccess(c *gin.Context, message string) {
	session.SetFlash(c, session.LevelSuccess, message)
}

// cached serves key from the page cache or fills it with load. Results that
// load marks as partial are served but not stored.
func cached[T any](ctx context.Context, h *Handler, key string, load func(context.Context) (T, bool)) T {
	var out T
	if h.cfg.PageCacheTTL > 0 {
		if data, err := h.cache.Get(ctx, pageCachePrefix+key); err == nil {
			if json.Unmarshal(data, &out) == nil {
				slog.Debug("Cache HIT", "key", key)
				return out
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("Page cache read failed", "key", key, "error", err)
		}
	}

	out, complete := load(ctx)
	if !complete || h.cfg.PageCacheTTL <= 0 {
		return out
	}

	data, err := json.Marshal(out)
	if err != nil {
		slog.Error("JSON marshal error", "key", key, "error", err)
		return out
	}
	if err := h.cache.Set(ctx, pageCachePrefix+key, data, h.cfg.PageCacheTTL); err != nil {
		slog.Warn("Page cache write failed", "key", key, "error", err)
	}
	return out
}

// invalidate drops every cached public page after content changed.
func (h *Handler) invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := h.cache.DeletePrefix(ctx, pageCachePrefix); err != nil {
		slog.Warn("Page cache invalidation failed", "error", err)
	}
}
