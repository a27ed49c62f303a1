package web

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-bff/internal/auth"
	"portfolio-bff/internal/models"
	"portfolio-bff/internal/sections"
	"portfolio-bff/internal/services"
	"portfolio-bff/internal/session"
)

const (
	userKey   = "user"
	loginPath = "/admin/login"
)

// requireAdmin lets a request through only with a live session whose token
// the backend still accepts. The backend context of the request carries the
// token from here on.
func (h *Handler) requireAdmin(c *gin.Context) {
	s, err := h.sessions.Load(c)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			slog.Error("Session load error", "error", err)
		}
		h.redirect(c, loginPath)
		c.Abort()
		return
	}

	if auth.Expired(s.Token, time.Now()) {
		h.expire(c)
		c.Abort()
		return
	}

	ctx := services.WithToken(c.Request.Context(), s.Token)
	user, err := h.api.Auth.Me(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrUnauthorized) {
			slog.Error("Session check failed", "error", err)
		}
		h.expire(c)
		c.Abort()
		return
	}

	c.Request = c.Request.WithContext(ctx)
	c.Set(userKey, user)
	c.Next()
}

// expire drops the session and sends the browser to the login page.
func (h *Handler) expire(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		slog.Warn("Session destroy failed", "error", err)
	}
	flashError(c, "Your session has expired. Please log in again.")
	h.redirect(c, loginPath)
}

// fail reports a failed admin action. Rejected credentials end the session;
// anything else is flashed and the browser goes back to location.
func (h *Handler) fail(c *gin.Context, err error, action, location string) {
	if errors.Is(err, services.ErrUnauthorized) {
		h.expire(c)
		return
	}
	slog.Error("Admin action failed", "action", action, "error", err)
	flashError(c, "Failed to "+action+": "+services.Message(err))
	h.redirect(c, location)
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) loginPage(c *gin.Context) {
	if _, err := h.sessions.Load(c); err == nil {
		h.redirect(c, "/admin")
		return
	}
	h.render(c, http.StatusOK, "login.html", "Admin Login", gin.H{"Email": "", "Error": ""})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", "Admin Login", gin.H{
			"Email": form.Email,
			"Error": "Please enter a valid email and your password.",
		})
		return
	}

	resp, err := h.api.Auth.Login(c.Request.Context(), models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, services.ErrUnauthorized) {
			slog.Error("Login failed", "error", err)
			status = http.StatusBadGateway
		}
		h.render(c, status, "login.html", "Admin Login", gin.H{
			"Email": form.Email,
			"Error": "Login failed: " + services.Message(err),
		})
		return
	}

	if _, err := h.sessions.Create(c, resp.Token, resp.User); err != nil {
		slog.Error("Session create error", "error", err)
		h.render(c, http.StatusInternalServerError, "login.html", "Admin Login", gin.H{
			"Email": form.Email,
			"Error": "Could not start a session. Please try again.",
		})
		return
	}

	slog.Info("Admin logged in", "email", resp.User.Email)
	flashSuccess(c, "Login successful")
	h.redirect(c, "/admin")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		slog.Warn("Session destroy failed", "error", err)
	}
	flashSuccess(c, "Logged out successfully")
	h.redirect(c, loginPath)
}

type sectionRow struct {
	Name    string
	Label   string
	Enabled bool
	Managed bool
}

type groupRow struct {
	Label string
	Items []sectionRow
}

func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg          sync.WaitGroup
		all         []models.Section
		messages    []models.ContactMessage
		sectionsErr error
		messagesErr error
		problem     string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		all, sectionsErr = h.api.Sections.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		messages, messagesErr = h.api.Contact.GetAll(ctx)
	}()
	wg.Wait()

	if sectionsErr != nil {
		if errors.Is(sectionsErr, services.ErrUnauthorized) {
			h.expire(c)
			return
		}
		slog.Error("Sections fetch error", "error", sectionsErr)
		problem = "Failed to load sections: " + services.Message(sectionsErr)
	}
	if messagesErr != nil {
		if errors.Is(messagesErr, services.ErrUnauthorized) {
			h.expire(c)
			return
		}
		slog.Warn("Messages fetch error", "error", messagesErr)
	}

	rows := make([]sectionRow, 0, len(all))
	enabled := make(map[string]bool, len(all))
	enabledCount := 0
	for _, s := range all {
		_, managed := sections.Lookup(s.Name)
		rows = append(rows, sectionRow{Name: s.Name, Label: sections.Label(s.Name), Enabled: s.IsEnabled, Managed: managed})
		enabled[s.Name] = s.IsEnabled
		if s.IsEnabled {
			enabledCount++
		}
	}

	var groups []groupRow
	for _, g := range sections.Groups {
		row := groupRow{Label: g.Label}
		for _, d := range sections.InGroup(g.Group) {
			if enabled[d.Name] {
				row.Items = append(row.Items, sectionRow{Name: d.Name, Label: d.Label, Enabled: true, Managed: true})
			}
		}
		if len(row.Items) > 0 {
			groups = append(groups, row)
		}
	}

	unread := 0
	for _, m := range messages {
		if !m.Read {
			unread++
		}
	}

	h.render(c, http.StatusOK, "dashboard.html", "Dashboard", gin.H{
		"Sections":     rows,
		"Groups":       groups,
		"Total":        len(all),
		"EnabledCount": enabledCount,
		"Unread":       unread,
		"Updated":      time.Now().Format("Jan 2, 2006 15:04"),
		"Error":        problem,
	})
}

func (h *Handler) toggleSection(c *gin.Context) {
	name := c.Param("name")
	sec, err := h.api.Sections.Toggle(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err, "update section", "/admin")
		return
	}
	h.invalidate(c.Request.Context())

	state := "hidden"
	if sec.IsEnabled {
		state = "visible"
	}
	flashSuccess(c, sections.Label(name)+" is now "+state)
	h.redirect(c, "/admin")
}

type passwordForm struct {
	Current string `form:"currentPassword" binding:"required"`
	New     string `form:"newPassword" binding:"required,min=6"`
	Confirm string `form:"confirmPassword" binding:"required,eqfield=New"`
}

func (h *Handler) passwordPage(c *gin.Context) {
	h.render(c, http.StatusOK, "password.html", "Change Password", gin.H{"Error": ""})
}

func (h *Handler) changePassword(c *gin.Context) {
	var form passwordForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "password.html", "Change Password", gin.H{
			"Error": "Enter your current password and a new password of at least 6 characters, twice.",
		})
		return
	}

	err := h.api.Auth.ChangePassword(c.Request.Context(), models.PasswordChange{
		CurrentPassword: form.Current,
		NewPassword:     form.New,
	})
	if err != nil {
		h.fail(c, err, "change password", "/admin/password")
		return
	}

	flashSuccess(c, "Password changed successfully")
	h.redirect(c, "/admin")
}
