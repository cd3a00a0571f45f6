package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tau-lavender/graffity-report/store"
)

// StoragePinger is the storage-gateway slice the probes need.
type StoragePinger interface {
	Configured() bool
	Ping(ctx context.Context) error
}

type Handler struct {
	store   store.ReportStore
	storage StoragePinger
}

func NewHandler(st store.ReportStore, storage StoragePinger) *Handler {
	return &Handler{store: st, storage: storage}
}

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Database health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/db/health [get]
func (h *Handler) Database(c *gin.Context) {
	if err := h.store.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary Object-storage health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/storage/health [get]
func (h *Handler) Storage(c *gin.Context) {
	if !h.storage.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "object storage is not configured"})
		return
	}
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
