package handlers

import (
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	domain "github.com/opfobo/taxmate-sub000/internal/app/domain/address"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/config"
	"github.com/opfobo/taxmate-sub000/internal/app/infrastructure/storage"
	"github.com/opfobo/taxmate-sub000/internal/app/ports"
	"github.com/opfobo/taxmate-sub000/pkg/logger"
	"net/http"
	"slices"
	"time"
)

type Handlers struct {
	log      logger.Logger
	manager  *config.Manager
	address  ports.AddressPort
	sessions ports.SessionsPort
	store    ports.AddressStorePort

	upgrader websocket.Upgrader
	started  time.Time
	now      func() time.Time
}

func New(log logger.Logger, manager *config.Manager, address ports.AddressPort, sessions ports.SessionsPort, store ports.AddressStorePort) *Handlers {
	origins := manager.Get().Cors.AllowOrigins

	return &Handlers{
		log:      log,
		manager:  manager,
		address:  address,
		sessions: sessions,
		store:    store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
		started: time.Now(),
		now:     time.Now,
	}
}

var editErrors = []error{
	domain.ErrIndexOutOfRange,
	domain.ErrKeyInUse,
	domain.ErrNoFreeKey,
	domain.ErrUnknownEdit,
	domain.ErrMissingKey,
	domain.ErrUnknownFieldKey,
}

// fail maps known errors to their status codes and logs the rest.
func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrSessionNotFound), errors.Is(err, storage.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrNothingToUndo):
		status = http.StatusConflict
	case slices.ContainsFunc(editErrors, func(target error) bool { return errors.Is(err, target) }):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownStrategy):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.log.Error("Request failed", err, "path", c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
