package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-bff/internal/config"
	"portfolio-bff/internal/devbackend"
	"portfolio-bff/internal/models"
	"portfolio-bff/internal/resilience"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		APIBaseURL:       baseURL,
		RequestTimeout:   time.Second,
		RetryAttempts:    3,
		RetryDelay:       time.Millisecond,
		BreakerThreshold: 10,
		BreakerTimeout:   time.Second,
	}
}

func TestSend_AttachesBearerToken(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL)))

	_, err := api.Sections.GetAll(WithToken(context.Background(), "tok-1"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", got)

	_, err = api.Sections.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid or expired token"}`, ErrUnauthorized, "Invalid or expired token"},
		{"not found", http.StatusNotFound, `{"error":"gone"}`, ErrNotFound, "gone"},
		{"bad request text", http.StatusBadRequest, "plain failure\n", nil, "plain failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			api := NewAPI(NewServiceClient(testConfig(ts.URL)))
			_, err := api.Resource("projects").GetAll(context.Background())
			require.Error(t, err)

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.Status)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.Equal(t, tt.message, Message(err))
			assert.Equal(t, int32(1), hits.Load(), "client errors are not retried")
		})
	}
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"_id":"1","title":"P"}]`))
	}))
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL)))
	projects, err := FetchList[models.Project](context.Background(), api.Resource("projects"), "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "P", projects[0].Title)
	assert.Equal(t, int32(3), hits.Load())
}

func TestMutate_SentOnce(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL)))
	_, err := api.Resource("projects").Create(context.Background(), models.Record{"title": "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBreakerOpensOnRepeatedFailures(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.RetryAttempts = 1
	cfg.BreakerThreshold = 2
	api := NewAPI(NewServiceClient(cfg))

	for i := 0; i < 2; i++ {
		_, err := api.Sections.GetEnabled(context.Background())
		require.Error(t, err)
	}
	_, err := api.Sections.GetEnabled(context.Background())
	assert.ErrorIs(t, err, resilience.ErrOpen)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGet_NullSingleton(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL)))
	hero, err := FetchOne[models.Hero](context.Background(), api.Hero)
	require.NoError(t, err)
	assert.Nil(t, hero)

	rec, err := api.About.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestEndpointPaths(t *testing.T) {
	type hit struct{ method, path string }
	var hits []hit
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, hit{r.Method, r.URL.Path})
		body = nil
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL + "/api/")))
	ctx := context.Background()

	require.NoError(t, api.Slider.Reorder(ctx, []string{"b", "a"}))
	assert.Equal(t, []any{"b", "a"}, body["imageIds"])

	require.NoError(t, api.Slider.Toggle(ctx))
	require.NoError(t, api.Slider.DeleteImage(ctx, "i1"))
	require.NoError(t, api.Slider.UpdateImage(ctx, "i1", models.SliderImage{URL: "u"}))
	require.NoError(t, api.Contact.MarkAsRead(ctx, "m1"))
	require.NoError(t, api.Contact.Delete(ctx, "m1"))
	_, err := api.Sections.Toggle(ctx, "skills")
	require.NoError(t, err)
	require.NoError(t, api.Auth.ChangePassword(ctx, models.PasswordChange{}))
	_, err = api.Resource("workshops").Variant(ctx, "attended")
	require.NoError(t, err)
	require.NoError(t, api.Resource("book-chapters").Delete(ctx, "c 1"))
	require.NoError(t, api.Singleton("hero").Update(ctx, models.Record{"name": "n"}))

	assert.Equal(t, []hit{
		{http.MethodPost, "/api/slider/reorder"},
		{http.MethodPost, "/api/slider/toggle"},
		{http.MethodDelete, "/api/slider/delete-image/i1"},
		{http.MethodPut, "/api/slider/update-image/i1"},
		{http.MethodPatch, "/api/contact/m1/read"},
		{http.MethodDelete, "/api/contact/m1"},
		{http.MethodPatch, "/api/sections/skills/toggle"},
		{http.MethodPut, "/api/auth/change-password"},
		{http.MethodGet, "/api/workshops/attended"},
		{http.MethodDelete, "/api/book-chapters/c 1"},
		{http.MethodPost, "/api/hero"},
	}, hits)
}

func TestAgainstDevBackend(t *testing.T) {
	srv, err := devbackend.New(devbackend.Options{AdminEmail: "admin@example.com", AdminPassword: "pw1234", JWTSecret: "s", Cost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	api := NewAPI(NewServiceClient(testConfig(ts.URL + "/api")))
	ctx := context.Background()

	_, err = api.Auth.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "bad"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", Message(err))

	resp, err := api.Auth.Login(ctx, models.Credentials{Email: "admin@example.com", Password: "pw1234"})
	require.NoError(t, err)

	_, err = api.Auth.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	authed := WithToken(ctx, resp.Token)
	me, err := api.Auth.Me(authed)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", me.Email)

	_, err = api.Resource("gallery").Create(authed, models.Record{"title": "G", "image": "data:image/png;base64,AA==", "featured": true})
	require.NoError(t, err)
	featured, err := FetchList[models.GalleryImage](ctx, api.Resource("gallery"), "featured")
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].Featured)

	require.NoError(t, api.Contact.Submit(ctx, models.ContactMessage{Name: "n", Email: "e@x.io", Message: "m"}))
	inbox, err := api.Contact.GetAll(authed)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
}
