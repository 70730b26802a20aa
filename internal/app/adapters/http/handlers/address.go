package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	domain "github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"net/http"
)

type textRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

func (h *Handlers) DetectHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	script, mixed := h.address.Detect(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"script":       script,
		"mixed_script": mixed,
	})
}

func (h *Handlers) TransliterateHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":   req.Text,
		"result": h.address.Transliterate(req.Text),
	})
}

// ParseHandler parses the text and opens an edit session holding the result.
func (h *Handlers) ParseHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		badRequest(c, err)
		return
	}

	set := h.address.Parse(req.Text, strategy)
	sess, err := h.sessions.Create(req.Text, strategy, set)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.SessionsActive.Set(float64(h.sessions.Len()))

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"strategy":   h.address.Resolve(req.Text, strategy).String(),
		"expires_at": sess.ExpiresAt,
		"set":        sess.Set,
	})
}
