package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/opfobo/taxmate-sub000/internal/app/adapters/metrics"
	domain "github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
	"net/http"
)

func sessionResponse(sess storage.Session) gin.H {
	return gin.H{
		"session_id": sess.ID,
		"text":       sess.Text,
		"strategy":   sess.Strategy,
		"undo_depth": len(sess.History),
		"expires_at": sess.ExpiresAt,
		"set":        sess.Set,
	}
}

func (h *Handlers) GetSessionHandler(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (h *Handlers) EditSessionHandler(c *gin.Context) {
	var edit domain.Edit
	if err := c.ShouldBindJSON(&edit); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.sessions.Apply(c.Param("id"), edit)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.EditsApplied.WithLabelValues(string(edit.Op)).Inc()

	h.log.Debug("Edit applied", "session", sess.ID, "op", edit.Op, "index", edit.Index)
	c.JSON(http.StatusOK, sessionResponse(sess))
}

func (h *Handlers) UndoSessionHandler(c *gin.Context) {
	sess, err := h.sessions.Undo(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// CommitSessionHandler stores the current set of the session as an address
// record and closes the session.
func (h *Handlers) CommitSessionHandler(c *gin.Context) {
	id := c.Param("id")
	sess, err := h.sessions.Get(id)
	if err != nil {
		h.fail(c, err)
		return
	}

	rec := domain.NewRecord(sess.ID, sess.Text, sess.Set, h.now())
	if err := h.store.Save(c.Request.Context(), rec); err != nil {
		h.fail(c, err)
		return
	}

	if _, err := h.sessions.Delete(id); err != nil {
		h.log.Warn("Session vanished before commit finished", "session", id, "error", err.Error())
	}
	metrics.SessionsActive.Set(float64(h.sessions.Len()))
	metrics.AddressesCommitted.Inc()

	h.log.Info("Address committed", "id", rec.ID, "script", rec.Script, "fields", len(rec.Fields))
	c.JSON(http.StatusCreated, gin.H{"id": rec.ID})
}
