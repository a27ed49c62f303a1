package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const FlashCookie = "portfolio_flash"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func SetFlash(c *gin.Context, level Level, message string) {
	data, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", false, true)
}

// TakeFlash returns the pending notification, if any, and clears it.
func TakeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(FlashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(FlashCookie, "", -1, "/", "", false, true)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if json.Unmarshal(data, &f) != nil || f.Message == "" {
		return nil
	}
	return &f
}
