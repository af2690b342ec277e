package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"secret-santa-backend/internal/common/config"
	"secret-santa-backend/internal/common/middleware"
	assignmenthttp "secret-santa-backend/internal/features/assignment/delivery/http"
	codeshttp "secret-santa-backend/internal/features/codes/delivery/http"
	participanthttp "secret-santa-backend/internal/features/participant/delivery/http"
	teamhttp "secret-santa-backend/internal/features/team/delivery/http"

	_ "secret-santa-backend/docs"
)

const serviceName = "secret-santa-backend"

type Handlers struct {
	Team        *teamhttp.TeamHandler
	Codes       *codeshttp.CodeHandler
	Participant *participanthttp.ParticipantHandler
	Assignment  *assignmenthttp.AssignmentHandler
}

// ReadinessCheck is a dependency probed by /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// NewRouter builds the gin engine with middleware, the action gateway, the
// REST API under /api/v1 and the probes.
func NewRouter(cfg *config.Config, h Handlers, checks ...ReadinessCheck) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) == 0 || (len(cfg.Server.AllowOrigins) == 1 && cfg.Server.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Telegram-Init-Data"}
	corsConfig.MaxAge = 24 * time.Hour
	corsConfig.OptionsResponseStatusCode = http.StatusOK
	router.Use(cors.New(corsConfig))
	router.Use(preflight())

	NewActionGateway(h).RegisterRoutes(router)

	v1 := router.Group("/api/v1")
	h.Team.RegisterRoutes(v1)
	h.Codes.RegisterRoutes(v1)
	h.Participant.RegisterRoutes(v1)
	h.Assignment.RegisterRoutes(v1, middleware.TelegramInitData(cfg.Telegram.BotToken, cfg.Telegram.InitDataTTL))

	registerProbes(router, checks)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(middleware.NotFound())
	return router
}

// preflight answers any OPTIONS request with an empty 200, including ones
// without an Origin header that the cors middleware lets through.
func preflight() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func registerProbes(router *gin.Engine, checks []ReadinessCheck) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   check.Name + " unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}
