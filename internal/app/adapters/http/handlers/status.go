package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"net/http"
	"runtime"
	"time"
)

func (h *Handlers) StatusHandler(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	percent, _ := cpu.Percent(0, false)
	if len(percent) == 0 {
		percent = append(percent, 0)
	}

	c.JSON(http.StatusOK, gin.H{
		"uptime":      time.Since(h.started).Truncate(time.Second).String(),
		"cpu_percent": percent[0],
		"memory_mb":   m.Sys / 1024 / 1024,
		"goroutines":  runtime.NumGoroutine(),
		"sessions":    h.sessions.Len(),
		"log_level":   h.log.GetLogLevel(),
	})
}
