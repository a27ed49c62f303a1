// Package devbackend is an in-memory implementation of the portfolio REST API.
// It backs local development and the web package's tests; production runs
// against the real content backend.
package devbackend

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"portfolio-bff/internal/auth"
	"portfolio-bff/internal/models"
)

const (
	adminID    = "admin"
	tokenTTL   = 24 * time.Hour
	maxBodyLen = 16 << 20
)

type Options struct {
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	// Cost is the bcrypt cost for password hashes; zero means bcrypt.DefaultCost.
	Cost int
}

type Server struct {
	store  *Store
	auth   *auth.Middleware
	secret string
	cost   int

	mu        sync.RWMutex
	email     string
	adminHash []byte
}

func New(opts Options) (*Server, error) {
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), cost)
	if err != nil {
		return nil, errors.Wrap(err, "hash admin password")
	}
	return &Server{
		store:     NewStore(),
		auth:      auth.NewMiddleware(opts.JWTSecret),
		secret:    opts.JWTSecret,
		cost:      cost,
		email:     strings.ToLower(opts.AdminEmail),
		adminHash: hash,
	}, nil
}

func (s *Server) Store() *Store { return s.store }

// Handler serves the API under /api.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	protect := s.auth.ValidateToken

	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("GET /api/auth/me", protect(s.me))
	mux.HandleFunc("PUT /api/auth/change-password", protect(s.changePassword))

	mux.HandleFunc("GET /api/sections", s.listSections)
	mux.HandleFunc("GET /api/sections/enabled", s.listSections)
	mux.HandleFunc("PUT /api/sections/{name}", protect(s.updateSection))
	mux.HandleFunc("PATCH /api/sections/{name}/toggle", protect(s.toggleSection))

	mux.HandleFunc("GET /api/slider", s.getSlider)
	mux.HandleFunc("POST /api/slider/add-image", protect(s.addSliderImage))
	mux.HandleFunc("PUT /api/slider/update-image/{id}", protect(s.updateSliderImage))
	mux.HandleFunc("DELETE /api/slider/delete-image/{id}", protect(s.deleteSliderImage))
	mux.HandleFunc("POST /api/slider/toggle", protect(s.toggleSlider))
	mux.HandleFunc("POST /api/slider/reorder", protect(s.reorderSlider))

	mux.HandleFunc("POST /api/contact", s.submitContact)
	mux.HandleFunc("GET /api/contact", protect(s.listMessages))
	mux.HandleFunc("PATCH /api/contact/{id}/read", protect(s.markRead))
	mux.HandleFunc("DELETE /api/contact/{id}", protect(s.deleteMessage))

	mux.HandleFunc("GET /api/{resource}", s.getResource)
	mux.HandleFunc("POST /api/{resource}", protect(s.postResource))
	mux.HandleFunc("GET /api/{resource}/{id}", s.getItem)
	mux.HandleFunc("PUT /api/{resource}/{id}", protect(s.updateItem))
	mux.HandleFunc("DELETE /api/{resource}/{id}", protect(s.deleteItem))

	return http.MaxBytesHandler(mux, maxBodyLen)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decode(w, r, &creds) {
		return
	}

	s.mu.RLock()
	email, hash := s.email, s.adminHash
	s.mu.RUnlock()

	if strings.ToLower(strings.TrimSpace(creds.Email)) != email ||
		bcrypt.CompareHashAndPassword(hash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.IssueToken(s.secret, adminID, tokenTTL)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: s.admin()})
}

func (s *Server) register(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusForbidden, "Registration is disabled")
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	if auth.Subject(r.Context()) != adminID {
		writeError(w, http.StatusUnauthorized, "Unknown user")
		return
	}
	writeJSON(w, http.StatusOK, s.admin())
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var change models.PasswordChange
	if !decode(w, r, &change) {
		return
	}
	if len(change.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bcrypt.CompareHashAndPassword(s.adminHash, []byte(change.CurrentPassword)) != nil {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), s.cost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Could not update password")
		return
	}
	s.adminHash = hash
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (s *Server) admin() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.User{ID: adminID, Name: "Administrator", Email: s.email, Role: "admin"}
}

func (s *Server) listSections(w http.ResponseWriter, r *http.Request) {
	enabledOnly := strings.HasSuffix(r.URL.Path, "/enabled")
	writeJSON(w, http.StatusOK, s.store.Sections(enabledOnly))
}

func (s *Server) updateSection(w http.ResponseWriter, r *http.Request) {
	var body models.Section
	if !decode(w, r, &body) {
		return
	}
	sec, ok := s.store.SetSection(r.PathValue("name"), body.IsEnabled)
	if !ok {
		writeError(w, http.StatusNotFound, "Section not found")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (s *Server) toggleSection(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.store.ToggleSection(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "Section not found")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

func (s *Server) getSlider(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Slider())
}

func (s *Server) addSliderImage(w http.ResponseWriter, r *http.Request) {
	var img models.SliderImage
	if !decode(w, r, &img) {
		return
	}
	if img.URL == "" {
		writeError(w, http.StatusBadRequest, "Image url is required")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddSliderImage(img))
}

func (s *Server) updateSliderImage(w http.ResponseWriter, r *http.Request) {
	var img models.SliderImage
	if !decode(w, r, &img) {
		return
	}
	if !s.store.UpdateSliderImage(r.PathValue("id"), img) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Slider())
}

func (s *Server) deleteSliderImage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteSliderImage(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Image not found")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Slider())
}

func (s *Server) toggleSlider(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ToggleSlider())
}

func (s *Server) reorderSlider(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ImageIDs []string `json:"imageIds"`
	}
	if !decode(w, r, &body) {
		return
	}
	s.store.ReorderSlider(body.ImageIDs)
	writeJSON(w, http.StatusOK, s.store.Slider())
}

func (s *Server) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if !decode(w, r, &msg) {
		return
	}
	if strings.TrimSpace(msg.Name) == "" || strings.TrimSpace(msg.Email) == "" || strings.TrimSpace(msg.Message) == "" {
		writeError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddMessage(msg))
}

func (s *Server) listMessages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Messages())
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	if !s.store.MarkRead(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Marked as read"})
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteMessage(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getResource(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("resource")
	switch {
	case singletons[name]:
		// A singleton never written yet is served as JSON null.
		writeJSON(w, http.StatusOK, s.store.Singleton(name))
	case collections[name]:
		writeJSON(w, http.StatusOK, s.store.List(name, nil))
	default:
		writeError(w, http.StatusNotFound, "Unknown resource")
	}
}

func (s *Server) postResource(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("resource")
	if !singletons[name] && !collections[name] {
		writeError(w, http.StatusNotFound, "Unknown resource")
		return
	}
	var rec models.Record
	if !decode(w, r, &rec) {
		return
	}
	if rec == nil {
		rec = models.Record{}
	}
	if singletons[name] {
		s.store.ReplaceSingleton(name, rec)
		writeJSON(w, http.StatusOK, rec)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.Create(name, rec))
}

// getItem also answers the list variants, which share the path shape of an
// item lookup.
func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	name, id := r.PathValue("resource"), r.PathValue("id")
	if !collections[name] {
		writeError(w, http.StatusNotFound, "Unknown resource")
		return
	}
	if keep := variant(name, id); keep != nil {
		writeJSON(w, http.StatusOK, s.store.List(name, keep))
		return
	}
	rec, ok := s.store.Item(name, id)
	if !ok {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("resource")
	if !collections[name] {
		writeError(w, http.StatusNotFound, "Unknown resource")
		return
	}
	var rec models.Record
	if !decode(w, r, &rec) {
		return
	}
	if rec == nil {
		rec = models.Record{}
	}
	updated, ok := s.store.Update(name, r.PathValue("id"), rec)
	if !ok {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("resource")
	if !collections[name] || !s.store.Delete(name, r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func variant(resource, name string) func(models.Record) bool {
	switch {
	case name == "featured" && (resource == "projects" || resource == "gallery"):
		return func(rec models.Record) bool {
			featured, _ := rec["featured"].(bool)
			return featured
		}
	case resource == "workshops" && (name == "attended" || name == "conducted"):
		return func(rec models.Record) bool {
			kind, _ := rec["type"].(string)
			return kind == name
		}
	}
	return nil
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
