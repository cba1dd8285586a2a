package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/pairline/internal/turn"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func turnHandlers(r gin.IRoutes, issuer *turn.Issuer) {
	r.GET("/turn-config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"urls": issuer.URLs()})
	})

	r.GET("/turn-credentials", func(c *gin.Context) {
		cred, err := issuer.Issue()
		if errors.Is(err, turn.ErrNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("issue turn credential")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "credential_unavailable"})
			return
		}
		c.JSON(http.StatusOK, cred)
	})

	r.GET("/ice-servers", func(c *gin.Context) {
		servers, err := issuer.ICEServers()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("ice servers")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "credential_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	})
}
