package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-bff/internal/models"
	"portfolio-bff/internal/services"
)

const messagesPath = "/admin/messages"

func (h *Handler) messages(c *gin.Context) {
	list, err := h.api.Contact.GetAll(c.Request.Context())
	problem := ""
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.expire(c)
			return
		}
		slog.Error("Messages fetch error", "error", err)
		problem = "Failed to load messages: " + services.Message(err)
		list = []models.ContactMessage{}
	}

	unread := 0
	for _, m := range list {
		if !m.Read {
			unread++
		}
	}

	h.render(c, http.StatusOK, "messages.html", "Contact Messages", gin.H{
		"Messages": list,
		"Unread":   unread,
		"Error":    problem,
	})
}

func (h *Handler) markMessageRead(c *gin.Context) {
	if err := h.api.Contact.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "mark message as read", messagesPath)
		return
	}
	flashSuccess(c, "Message marked as read")
	h.redirect(c, messagesPath)
}

func (h *Handler) deleteMessage(c *gin.Context) {
	if err := h.api.Contact.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "delete message", messagesPath)
		return
	}
	flashSuccess(c, "Message deleted successfully")
	h.redirect(c, messagesPath)
}
