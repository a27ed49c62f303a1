package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-bff/internal/cache"
	"portfolio-bff/internal/config"
	"portfolio-bff/internal/devbackend"
	"portfolio-bff/internal/models"
	"portfolio-bff/internal/services"
)

type harness struct {
	t       *testing.T
	backend *devbackend.Server
	store   *cache.Memory
	site    *httptest.Server
	client  *http.Client
	// rejectTokens makes the backend answer /auth/me with 401.
	rejectTokens atomic.Bool
	// rejectMutations makes the backend answer every write with 401.
	rejectMutations atomic.Bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := devbackend.New(devbackend.Options{
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret1",
		JWTSecret:     "test-secret",
		Cost:          bcrypt.MinCost,
	})
	require.NoError(t, err)

	h := &harness{t: t, backend: backend, store: cache.NewMemory()}

	upstream := backend.Handler()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.rejectTokens.Load() && r.URL.Path == "/api/auth/me" {
			http.Error(w, `{"message":"Token is not valid"}`, http.StatusUnauthorized)
			return
		}
		if h.rejectMutations.Load() && r.Method != http.MethodGet && r.URL.Path != "/api/auth/login" {
			http.Error(w, `{"message":"Token is not valid"}`, http.StatusUnauthorized)
			return
		}
		upstream.ServeHTTP(w, r)
	}))
	t.Cleanup(api.Close)

	cfg := &config.Config{
		APIBaseURL:        api.URL + "/api",
		SessionTTL:        time.Hour,
		PageCacheTTL:      time.Minute,
		RequestTimeout:    2 * time.Second,
		RetryAttempts:     1,
		RetryDelay:        time.Millisecond,
		BreakerThreshold:  100,
		BreakerTimeout:    time.Second,
		ContactRateLimit:  2,
		ContactRateWindow: time.Minute,
		MaxImageBytes:     1 << 20,
	}
	handler := NewHandler(cfg, services.NewAPI(services.NewServiceClient(cfg)), h.store)
	h.site = httptest.NewServer(handler.Router())
	t.Cleanup(h.site.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	h.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return h
}

type response struct {
	Status   int
	Body     string
	Location string
}

func (h *harness) do(req *http.Request) response {
	h.t.Helper()
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	return response{Status: resp.StatusCode, Body: string(body), Location: resp.Header.Get("Location")}
}

func (h *harness) get(path string) response {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodGet, h.site.URL+path, nil)
	require.NoError(h.t, err)
	return h.do(req)
}

func (h *harness) post(path string, form url.Values) response {
	h.t.Helper()
	req, err := http.NewRequest(http.MethodPost, h.site.URL+path, strings.NewReader(form.Encode()))
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func (h *harness) login() {
	h.t.Helper()
	resp := h.post("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"secret1"}})
	require.Equal(h.t, http.StatusSeeOther, resp.Status)
	require.Equal(h.t, "/admin", resp.Location)
}

func TestAdmin_RedirectsWithoutSession(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/admin", "/admin/slider", "/admin/sections/skills", "/admin/messages"} {
		resp := h.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.Status, path)
		assert.Equal(t, loginPath, resp.Location, path)
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	resp := h.post("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Contains(t, resp.Body, "Invalid credentials")
	assert.Contains(t, resp.Body, `value="admin@example.com"`)

	resp = h.post("/admin/login", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	assert.Equal(t, http.StatusBadRequest, resp.Status)

	h.login()

	resp = h.get("/admin")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "Dashboard")
	assert.Contains(t, resp.Body, "Login successful")

	resp = h.get("/admin/login")
	assert.Equal(t, http.StatusSeeOther, resp.Status, "logged in users skip the login form")

	resp = h.post("/admin/logout", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, loginPath, h.get("/admin").Location)
}

func TestAdmin_RejectedTokenEndsSession(t *testing.T) {
	h := newHarness(t)
	h.login()
	require.Equal(t, http.StatusOK, h.get("/admin").Status)

	h.rejectTokens.Store(true)
	resp := h.get("/admin")
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, loginPath, resp.Location)

	h.rejectTokens.Store(false)
	resp = h.get("/admin")
	assert.Equal(t, http.StatusSeeOther, resp.Status, "the session was destroyed")

	page := h.get("/admin/login")
	assert.Contains(t, page.Body, "Your session has expired")
}

func TestManager_RejectedMutationEndsSession(t *testing.T) {
	h := newHarness(t)
	existing := h.backend.Store().Create("experience", models.Record{"company": "Acme", "position": "Engineer", "startDate": "2020-01-15"})
	h.login()

	h.rejectMutations.Store(true)
	resp := h.post("/admin/sections/experience", url.Values{
		"company":   {"Initech"},
		"position":  {"Analyst"},
		"startDate": {"2021-03-01"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, loginPath, resp.Location)

	h.rejectMutations.Store(false)
	resp = h.get("/admin")
	assert.Equal(t, http.StatusSeeOther, resp.Status, "the session was destroyed")
	assert.Equal(t, loginPath, resp.Location)
	assert.Contains(t, h.get("/admin/login").Body, "Your session has expired")
	assert.Len(t, h.backend.Store().List("experience", nil), 1)

	h.login()
	h.rejectMutations.Store(true)
	resp = h.post("/admin/sections/experience/items/"+existing.ID()+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, loginPath, resp.Location)

	h.rejectMutations.Store(false)
	assert.Equal(t, loginPath, h.get("/admin").Location)
	_, ok := h.backend.Store().Item("experience", existing.ID())
	assert.True(t, ok)
}

func TestManager_CollectionLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp := h.post("/admin/sections/experience", url.Values{
		"company":      {"Acme"},
		"position":     {"Engineer"},
		"startDate":    {"2020-01-15"},
		"current":      {"on"},
		"technologies": {"Go, SQL"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/admin/sections/experience", resp.Location)

	items := h.backend.Store().List("experience", nil)
	require.Len(t, items, 1)
	id := items[0].ID()
	assert.Equal(t, "Acme", items[0]["company"])
	assert.Equal(t, true, items[0]["current"])

	page := h.get("/admin/sections/experience")
	require.Equal(t, http.StatusOK, page.Status)
	assert.Contains(t, page.Body, "Experience created successfully")
	assert.Contains(t, page.Body, "Engineer")

	page = h.get("/admin/sections/experience?edit=" + id)
	require.Equal(t, http.StatusOK, page.Status)
	assert.Contains(t, page.Body, `value="Go, SQL"`)
	assert.Contains(t, page.Body, "/admin/sections/experience/items/"+id)

	resp = h.post("/admin/sections/experience/items/"+id, url.Values{
		"company":   {"Acme Corp"},
		"position":  {"Lead"},
		"startDate": {"2020-01-15"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	rec, ok := h.backend.Store().Item("experience", id)
	require.True(t, ok)
	assert.Equal(t, "Lead", rec["position"])
	assert.Equal(t, false, rec["current"])

	resp = h.post("/admin/sections/experience/items/"+id+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Empty(t, h.backend.Store().List("experience", nil))
}

func TestManager_InvalidFormIsRedisplayed(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp := h.post("/admin/sections/experience", url.Values{
		"company":   {"Acme"},
		"startDate": {"15/01/2020"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body, "Position is required")
	assert.Contains(t, resp.Body, "Start Date must be a date (YYYY-MM-DD)")
	assert.Contains(t, resp.Body, `value="Acme"`)
	assert.Empty(t, h.backend.Store().List("experience", nil))
}

func TestManager_UnknownSection(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp := h.get("/admin/sections/nope")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, resp.Body, "Unknown section nope.")
}

func TestManager_SingletonRequiresFields(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().ReplaceSingleton("hero", models.Record{"name": "Ada Lovelace", "tagline": "Analyst"})
	h.login()

	resp := h.post("/admin/sections/hero", url.Values{"name": {""}, "tagline": {""}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Contains(t, resp.Body, "Name is required")
	assert.Contains(t, resp.Body, "Tagline is required")

	hero := h.backend.Store().Singleton("hero")
	assert.Equal(t, "Ada Lovelace", hero["name"])
	assert.Equal(t, "Analyst", hero["tagline"])
}

func TestHome_InvalidatedAfterEdit(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().ReplaceSingleton("hero", models.Record{"name": "Ada Lovelace", "tagline": "Analyst"})

	resp := h.get("/")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "Ada Lovelace")

	// Changed behind the site's back: the cached page is still served.
	h.backend.Store().ReplaceSingleton("hero", models.Record{"name": "Grace Hopper", "tagline": "Admiral"})
	assert.Contains(t, h.get("/").Body, "Ada Lovelace")

	h.login()
	resp = h.post("/admin/sections/hero", url.Values{
		"name":             {"Katherine Johnson"},
		"tagline":          {"Mathematician"},
		"socials.linkedin": {"https://linkedin.com/in/kj"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)

	hero := h.backend.Store().Singleton("hero")
	assert.Equal(t, "Katherine Johnson", hero["name"])
	socials, ok := hero["socials"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://linkedin.com/in/kj", socials["linkedin"])

	body := h.get("/").Body
	assert.Contains(t, body, "Katherine Johnson")
	assert.Contains(t, body, "https://linkedin.com/in/kj")
}

func TestHome_HiddenSectionsAreSkipped(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().Create("skills", models.Record{"name": "Go", "category": "Languages"})
	h.backend.Store().Create("projects", models.Record{"title": "Portfolio Engine", "description": "d"})
	h.backend.Store().SetSection("projects", false)

	body := h.get("/").Body
	assert.Contains(t, body, `id="skills"`)
	assert.Contains(t, body, "Languages")
	assert.NotContains(t, body, "Portfolio Engine")
	assert.Contains(t, body, `id="contact"`)
}

func TestToggleSection_InvalidatesCache(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().Create("awards", models.Record{"title": "Best Paper"})
	assert.Contains(t, h.get("/").Body, "Best Paper")

	h.login()
	resp := h.post("/admin/sections/awards/toggle", nil)
	require.Equal(t, http.StatusSeeOther, resp.Status)

	assert.Contains(t, h.get("/admin").Body, "is now hidden")
	assert.NotContains(t, h.get("/").Body, "Best Paper")
}

func TestContact_RateLimited(t *testing.T) {
	h := newHarness(t)
	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"subject": {"Hello"},
		"message": {"Nice site"},
	}

	for i := 0; i < 2; i++ {
		resp := h.post("/contact", form)
		require.Equal(t, http.StatusSeeOther, resp.Status)
		assert.Equal(t, "/#contact", resp.Location)
	}
	h.post("/contact", form)

	assert.Len(t, h.backend.Store().Messages(), 2)
	assert.Contains(t, h.get("/").Body, "Too many messages")
}

func TestContact_Invalid(t *testing.T) {
	h := newHarness(t)

	resp := h.post("/contact", url.Values{"name": {"Visitor"}, "email": {"nope"}})
	assert.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Empty(t, h.backend.Store().Messages())
	assert.Contains(t, h.get("/").Body, "Please fill in your name")
}

func TestContact_InvalidPostsDoNotCountTowardsLimit(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 2; i++ {
		resp := h.post("/contact", url.Values{"name": {"Visitor"}, "email": {"nope"}})
		require.Equal(t, http.StatusSeeOther, resp.Status)
	}

	resp := h.post("/contact", url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"subject": {"Hello"},
		"message": {"Nice site"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)

	assert.Len(t, h.backend.Store().Messages(), 1)
	assert.Contains(t, h.get("/").Body, "Message sent successfully!")
}

func TestGallery_Filters(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().Create("gallery", models.Record{"title": "Keynote", "image": "/img/a.png", "category": "Events", "featured": true})
	h.backend.Store().Create("gallery", models.Record{"title": "Lab", "image": "/img/b.png", "category": "Research", "featured": false})

	body := h.get("/gallery").Body
	assert.Contains(t, body, "Keynote")
	assert.Contains(t, body, "Lab")
	assert.Contains(t, body, "category=Research")

	body = h.get("/gallery?category=Events").Body
	assert.Contains(t, body, "Keynote")
	assert.NotContains(t, body, "Lab</strong>")

	body = h.get("/gallery?featured=1").Body
	assert.Contains(t, body, "Keynote")
	assert.NotContains(t, body, "Lab</strong>")
}

func TestActivitiesAndPublications(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().Create("talks", models.Record{"title": "Scaling Go", "event": "GopherCon"})
	h.backend.Store().Create("workshops", models.Record{"title": "Intro to Fuzzing", "type": "conducted"})
	h.backend.Store().Create("book-chapters", models.Record{"title": "On Caches", "bookTitle": "Systems"})

	body := h.get("/activities").Body
	assert.Contains(t, body, "Scaling Go")
	assert.NotContains(t, body, "Intro to Fuzzing")

	body = h.get("/activities?tab=workshops").Body
	assert.Contains(t, body, "Intro to Fuzzing")

	body = h.get("/activities?tab=bogus").Body
	assert.Contains(t, body, "Scaling Go", "unknown tabs fall back to talks")

	body = h.get("/publications?tab=book").Body
	assert.Contains(t, body, "On Caches")
	assert.Contains(t, h.get("/publications").Body, "Nothing published here yet.")
}

func TestSlider_Admin(t *testing.T) {
	h := newHarness(t)
	h.login()

	for _, title := range []string{"First", "Second"} {
		resp := h.post("/admin/slider/images", url.Values{"url": {"https://example.com/" + title + ".jpg"}, "title": {title}})
		require.Equal(t, http.StatusSeeOther, resp.Status)
	}
	images := h.backend.Store().Slider().Images
	require.Len(t, images, 2)

	resp := h.post("/admin/slider/images/"+images[1].ID+"/move?dir=up", nil)
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "Second", h.backend.Store().Slider().Images[0].Title)

	resp = h.post("/admin/slider/images", url.Values{"title": {"No image"}})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Len(t, h.backend.Store().Slider().Images, 2)
	assert.Contains(t, h.get("/admin/slider").Body, "Image is required")

	enabled := h.backend.Store().Slider().IsEnabled
	h.post("/admin/slider/toggle", nil)
	assert.Equal(t, !enabled, h.backend.Store().Slider().IsEnabled)

	h.post("/admin/slider/images/"+images[0].ID+"/delete", nil)
	assert.Len(t, h.backend.Store().Slider().Images, 1)
}

func TestMessages_Admin(t *testing.T) {
	h := newHarness(t)
	msg := h.backend.Store().AddMessage(models.ContactMessage{Name: "Vis", Email: "v@example.com", Subject: "Hi there", Message: "Hello"})
	h.login()

	body := h.get("/admin/messages").Body
	assert.Contains(t, body, "Hi there")
	assert.Contains(t, body, "1 unread")

	h.post("/admin/messages/"+msg.ID+"/read", nil)
	assert.Contains(t, h.get("/admin/messages").Body, "0 unread")

	resp := h.post("/admin/messages/"+msg.ID+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Empty(t, h.backend.Store().Messages())

	body = h.get("/admin/messages").Body
	assert.NotContains(t, body, "Hi there")
	assert.Contains(t, body, "No messages yet.")
}

func TestChangePassword(t *testing.T) {
	h := newHarness(t)
	h.login()

	resp := h.post("/admin/password", url.Values{
		"currentPassword": {"secret1"},
		"newPassword":     {"secret2"},
		"confirmPassword": {"different"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)

	resp = h.post("/admin/password", url.Values{
		"currentPassword": {"secret1"},
		"newPassword":     {"secret2"},
		"confirmPassword": {"secret2"},
	})
	require.Equal(t, http.StatusSeeOther, resp.Status)
	assert.Equal(t, "/admin", resp.Location)

	h.post("/admin/logout", nil)
	resp = h.post("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"secret2"}})
	assert.Equal(t, http.StatusSeeOther, resp.Status)
}

func TestNotFound(t *testing.T) {
	h := newHarness(t)

	resp := h.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Contains(t, resp.Body, "does not exist")
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)

	resp := h.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body)
}

func TestCached_SkipsPartialLoads(t *testing.T) {
	h := &Handler{cfg: &config.Config{PageCacheTTL: time.Minute}, cache: cache.NewMemory()}
	ctx := context.Background()
	calls := 0
	load := func(complete bool) func(context.Context) (int, bool) {
		return func(context.Context) (int, bool) {
			calls++
			return calls, complete
		}
	}

	assert.Equal(t, 1, cached(ctx, h, "k", load(false)))
	assert.Equal(t, 2, cached(ctx, h, "k", load(true)))
	assert.Equal(t, 2, cached(ctx, h, "k", load(true)), "served from cache")
	assert.Equal(t, 2, calls)

	h.invalidate(ctx)
	assert.Equal(t, 3, cached(ctx, h, "k", load(true)))
}

func TestBuildNav(t *testing.T) {
	nav := buildNav([]string{"hero", "about", "skills", "projects", "contact"})

	require.Len(t, nav, 4)
	assert.Equal(t, "About", nav[0].Label)
	assert.Equal(t, []navLink{{Label: "About", Href: "/#about"}, {Label: "Skills", Href: "/#skills"}}, nav[0].Links)
	assert.Equal(t, "Work", nav[1].Label)
	assert.Equal(t, "More", nav[2].Label)
	assert.Equal(t, "Contact", nav[3].Label)

	nav = buildNav(nil)
	require.Len(t, nav, 1)
	assert.Equal(t, "More", nav[0].Label)
}

func TestGroupSkills(t *testing.T) {
	groups := groupSkills([]models.Skill{
		{Name: "Go", Category: "Languages"},
		{Name: "Docker"},
		{Name: "Python", Category: "Languages"},
	})

	require.Len(t, groups, 2)
	assert.Equal(t, "Languages", groups[0].Category)
	assert.Len(t, groups[0].Skills, 2)
	assert.Equal(t, "Other", groups[1].Category)
	assert.Equal(t, "Docker", groups[1].Skills[0].Name)
}

func TestMoveID(t *testing.T) {
	images := []models.SliderImage{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	tests := []struct {
		name  string
		id    string
		dir   string
		want  []string
		moved bool
	}{
		{"down", "a", "down", []string{"b", "a", "c"}, true},
		{"up", "c", "up", []string{"a", "c", "b"}, true},
		{"first cannot go up", "a", "up", []string{"a", "b", "c"}, false},
		{"last cannot go down", "c", "down", []string{"a", "b", "c"}, false},
		{"unknown id", "x", "up", []string{"a", "b", "c"}, false},
		{"unknown direction", "b", "left", []string{"a", "b", "c"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := moveID(images, tt.id, tt.dir)
			assert.Equal(t, tt.moved, moved)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageSource(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AA==", string(imageSource("data:image/png;base64,AA==")))
	assert.Equal(t, "/static/a.png", string(imageSource("/static/a.png")))
	assert.Empty(t, string(imageSource("javascript:alert(1)")))
	assert.Equal(t, "Apr 2021", displayDate("2021-04-01T00:00:00.000Z"))
	assert.Equal(t, "soon", displayDate("soon"))
}

func TestActivitiesOverview(t *testing.T) {
	h := newHarness(t)
	h.backend.Store().Create("talks", models.Record{"title": "One"})
	h.backend.Store().Create("talks", models.Record{"title": "Two"})
	h.backend.Store().SetSection("gallery", false)
	h.login()

	resp := h.get("/admin/activities-publications")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Contains(t, resp.Body, "/admin/sections/talks")
	assert.Contains(t, resp.Body, "<td>2</td>")
	assert.Contains(t, resp.Body, "/admin/sections/bookchapters")
}
