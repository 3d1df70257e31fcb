package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

// RouterOptions carries what the router needs beyond the handlers.
type RouterOptions struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Production     bool
}

// NewRouter builds the gin engine: CORS, request metrics, health probe and
// the authenticated story routes under /api/story.
func NewRouter(stories *StoryHandler, opts RouterOptions) *gin.Engine {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	api := router.Group("/api/story")
	api.Use(AuthMiddleware(opts.JWTSecret))
	stories.RegisterRoutes(api)

	return router
}
