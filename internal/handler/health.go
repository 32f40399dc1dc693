package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ceordev/pos-ventas/internal/supabase"
)

// Health returns a JSON health check response.
// Probes PostgREST connectivity with a minimal query and reports the storage
// circuit breaker state; never exposes credentials or internals.
func Health(db *supabase.Client, connectTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), connectTimeout)
		defer cancel()

		backendStatus := "connected"
		var filas []struct {
			ID int64 `json:"id"`
		}
		if _, err := db.From("productos").Select("id").Limit(1).Execute(ctx, &filas); err != nil {
			backendStatus = "error"
		}

		status := http.StatusOK
		if backendStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"backend": backendStatus,
			"storage": db.Storage().EstadoBreaker(),
		})
	}
}
