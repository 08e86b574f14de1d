package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/clique77/job-portal-sub001/internal/domain/errs"
	"github.com/clique77/job-portal-sub001/internal/domain/models"
	"github.com/clique77/job-portal-sub001/internal/logger"
	"github.com/clique77/job-portal-sub001/internal/metrics"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const actorKey = "actor"

type tokenParser interface {
	Parse(token string) (models.Actor, error)
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request handled")
	}
}

// authenticate turns a bearer token into the request's actor.
func authenticate(tokens tokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			respondError(c, errs.Unauthorized("missing or invalid authorization header"))
			return
		}

		actor, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAuth).Debugf("rejected token: %v", err)
			respondError(c, errs.Unauthorized("invalid token"))
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) models.Actor {
	actor, _ := c.Get(actorKey)
	return actor.(models.Actor)
}
